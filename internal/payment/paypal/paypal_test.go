package paypal

import (
	"errors"
	"testing"
)

func TestNewClientNormalizesConfig(t *testing.T) {
	client, err := NewClient(Config{
		ClientID:     " cid ",
		ClientSecret: " secret ",
		BaseURL:      "https://api-m.sandbox.paypal.com/",
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.cfg.ClientID != "cid" {
		t.Fatalf("client id not normalized, got: %s", client.cfg.ClientID)
	}
	if client.cfg.BaseURL != "https://api-m.sandbox.paypal.com" {
		t.Fatalf("base url not normalized, got: %s", client.cfg.BaseURL)
	}
	if client.cfg.Timeout != defaultTimeout {
		t.Fatalf("timeout should default, got: %v", client.cfg.Timeout)
	}
}

func TestNewClientRejectsMissingCredentials(t *testing.T) {
	_, err := NewClient(Config{ClientSecret: "secret"})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("missing client_id should fail, got: %v", err)
	}
	_, err = NewClient(Config{ClientID: "cid"})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("missing client_secret should fail, got: %v", err)
	}
}

func TestReadStringNestedPaths(t *testing.T) {
	raw := map[string]interface{}{
		"purchase_units": []interface{}{
			map[string]interface{}{
				"payments": map[string]interface{}{
					"captures": []interface{}{
						map[string]interface{}{
							"id":     "CAP-1",
							"status": "COMPLETED",
							"amount": map[string]interface{}{
								"value":         "138.00",
								"currency_code": "USD",
							},
						},
					},
				},
			},
		},
	}
	if got := readString(raw, "purchase_units", "0", "payments", "captures", "0", "status"); got != "COMPLETED" {
		t.Fatalf("unexpected status: %s", got)
	}
	if got := readString(raw, "purchase_units", "0", "payments", "captures", "0", "amount", "value"); got != "138.00" {
		t.Fatalf("unexpected amount: %s", got)
	}
	captures := readArray(raw, "purchase_units", "0", "payments", "captures")
	if len(captures) != 1 {
		t.Fatalf("unexpected captures len: %d", len(captures))
	}
	if got := readString(raw, "missing", "path"); got != "" {
		t.Fatalf("missing path should be empty, got: %s", got)
	}
}
