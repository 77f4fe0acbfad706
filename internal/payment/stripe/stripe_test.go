package stripe

import (
	"errors"
	"testing"
)

func TestNewClientNormalizesConfig(t *testing.T) {
	client, err := NewClient(Config{
		SecretKey:  " sk_test_123 ",
		APIBaseURL: "https://api.stripe.com/",
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	if client.cfg.SecretKey != "sk_test_123" {
		t.Fatalf("secret key not normalized, got: %s", client.cfg.SecretKey)
	}
	if client.cfg.APIBaseURL != "https://api.stripe.com" {
		t.Fatalf("api base not normalized, got: %s", client.cfg.APIBaseURL)
	}
}

func TestNewClientRejectsMissingSecret(t *testing.T) {
	_, err := NewClient(Config{})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("missing secret_key should fail, got: %v", err)
	}
}

func TestMinorAmountConversion(t *testing.T) {
	minor, err := toMinorAmount("138.00", "USD")
	if err != nil {
		t.Fatalf("toMinorAmount error: %v", err)
	}
	if minor != 13800 {
		t.Fatalf("minor amount want 13800 got %d", minor)
	}

	minor, err = toMinorAmount("500", "JPY")
	if err != nil {
		t.Fatalf("toMinorAmount error: %v", err)
	}
	if minor != 500 {
		t.Fatalf("zero-decimal minor amount want 500 got %d", minor)
	}

	if got := fromMinorAmount(13800, "USD"); got != "138.00" {
		t.Fatalf("fromMinorAmount want 138.00 got %s", got)
	}
	if got := fromMinorAmount(500, "JPY"); got != "500" {
		t.Fatalf("fromMinorAmount want 500 got %s", got)
	}

	if _, err := toMinorAmount("0", "USD"); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("zero amount should be rejected, got: %v", err)
	}
	if _, err := toMinorAmount("bad", "USD"); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("invalid amount should be rejected, got: %v", err)
	}
}

func TestParseIntentReadsMetadataOrderID(t *testing.T) {
	body := []byte(`{
		"id": "pi_123",
		"client_secret": "pi_123_secret_abc",
		"status": "succeeded",
		"amount": 13800,
		"amount_received": 13800,
		"currency": "usd",
		"receipt_email": "buyer@example.com",
		"metadata": {"order_id": "42"}
	}`)
	result, err := parseIntent(body)
	if err != nil {
		t.Fatalf("parseIntent error: %v", err)
	}
	if result.PaymentIntentID != "pi_123" {
		t.Fatalf("unexpected intent id: %s", result.PaymentIntentID)
	}
	if result.Status != StatusSucceeded {
		t.Fatalf("unexpected status: %s", result.Status)
	}
	if result.OrderID != 42 {
		t.Fatalf("metadata order id want 42 got %d", result.OrderID)
	}
	if result.Amount != "138.00" || result.Currency != "USD" {
		t.Fatalf("unexpected amount info: %s %s", result.Amount, result.Currency)
	}
	if result.PayerEmail != "buyer@example.com" {
		t.Fatalf("unexpected payer email: %s", result.PayerEmail)
	}
}

func TestParseIntentMissingIDFails(t *testing.T) {
	if _, err := parseIntent([]byte(`{"status":"succeeded"}`)); !errors.Is(err, ErrResponseInvalid) {
		t.Fatalf("missing id should fail, got: %v", err)
	}
}
