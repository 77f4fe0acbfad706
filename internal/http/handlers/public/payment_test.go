package public

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response failed: %v", err)
	}
	return resp
}

func TestRespondStripeConfirmErrorPendingRedirectsToOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondStripeConfirmError(c, service.ErrPaymentNotSucceeded, 42)

	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code = %d, want %d", resp.StatusCode, response.CodeBadRequest)
	}
	data, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("expected data object with redirect target, got %T", resp.Data)
	}
	if got := data["redirect_to"]; got != "/order/42" {
		t.Fatalf("redirect_to = %v, want /order/42", got)
	}
}

func TestRespondStripeConfirmErrorMismatchHasNoRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondStripeConfirmError(c, service.ErrPaymentMismatch, 42)

	resp := decodeEnvelope(t, w)
	if resp.StatusCode != response.CodeBadRequest {
		t.Fatalf("status_code = %d, want %d", resp.StatusCode, response.CodeBadRequest)
	}
	if data, ok := resp.Data.(map[string]interface{}); ok {
		if _, has := data["redirect_to"]; has {
			t.Fatalf("unexpected redirect_to for mismatch: %v", data)
		}
	}
}
