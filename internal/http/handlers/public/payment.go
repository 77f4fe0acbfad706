package public

import (
	"errors"
	"strconv"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ApprovePayPalOrderRequest PayPal 支付确认请求
type ApprovePayPalOrderRequest struct {
	PayPalOrderID string `json:"paypal_order_id" binding:"required"`
}

// ConfirmStripePaymentRequest Stripe 支付确认请求
type ConfirmStripePaymentRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
}

func orderIDParam(c *gin.Context) (uint, bool) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return 0, false
	}
	return uint(orderID), true
}

// CreatePayPalOrder 在 PayPal 侧创建支付单并记录网关单号
func (h *Handler) CreatePayPalOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	paypalOrderID, err := h.PaymentService.CreatePayPalOrder(c.Request.Context(), orderID, uid)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, gin.H{"paypal_order_id": paypalOrderID})
}

// ApprovePayPalOrder 捕获 PayPal 支付并核对后标记订单已支付
func (h *Handler) ApprovePayPalOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req ApprovePayPalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.PaymentService.ApprovePayPalOrder(c.Request.Context(), orderID, uid, req.PayPalOrderID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.SuccessWithMsg(c, "order paid", order)
}

// CreateStripePaymentIntent 创建 Stripe 支付意向
func (h *Handler) CreateStripePaymentIntent(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	intent, err := h.PaymentService.CreateStripePaymentIntent(c.Request.Context(), orderID, uid)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, gin.H{
		"payment_intent_id": intent.PaymentIntentID,
		"client_secret":     intent.ClientSecret,
	})
}

// ConfirmStripePayment 核对 Stripe 支付结果并标记订单已支付
func (h *Handler) ConfirmStripePayment(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req ConfirmStripePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	order, err := h.PaymentService.ConfirmStripePayment(c.Request.Context(), orderID, uid, req.PaymentIntentID)
	if err != nil {
		respondStripeConfirmError(c, err, orderID)
		return
	}

	response.SuccessWithMsg(c, "order paid", order)
}

// respondStripeConfirmError 处理 Stripe 核对失败。
// 支付未完成属于待定状态而非终局失败，带上回订单页的跳转目标。
func respondStripeConfirmError(c *gin.Context, err error, orderID uint) {
	if errors.Is(err, service.ErrPaymentNotSucceeded) {
		orderPath := "/order/" + strconv.FormatUint(uint64(orderID), 10)
		handlershared.RespondErrorWithRedirect(c, response.CodeBadRequest, "payment is not completed yet", orderPath)
		return
	}
	respondPaymentError(c, err)
}
