package public

import (
	"errors"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
// redirectTo 非空时在错误数据中返回前端跳转目标。
type mappedHandlerError struct {
	target     error
	code       int
	msg        string
	redirectTo string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackMsg string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			if rule.redirectTo != "" {
				handlershared.RespondErrorWithRedirect(c, rule.code, rule.msg, rule.redirectTo)
				return
			}
			respondError(c, rule.code, rule.msg, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackMsg, err)
}

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "not enough stock"},
	{target: service.ErrCartNotFound, code: response.CodeNotFound, msg: "cart not found"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, msg: "item not found in cart"},
}

var orderCreateErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, msg: "your cart is empty", redirectTo: "/cart"},
	{target: service.ErrNoShippingAddress, code: response.CodeBadRequest, msg: "no shipping address", redirectTo: "/shipping-address"},
	{target: service.ErrNoPaymentMethod, code: response.CodeBadRequest, msg: "no payment method", redirectTo: "/payment-method"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "invalid payment method", redirectTo: "/payment-method"},
	{target: service.ErrInsufficientStock, code: response.CodeBadRequest, msg: "not enough stock", redirectTo: "/cart"},
	{target: service.ErrUserNotFound, code: response.CodeUnauthorized, msg: "user not found"},
}

var paymentErrorRules = []mappedHandlerError{
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, msg: "order not found"},
	{target: service.ErrOrderAlreadyPaid, code: response.CodeBadRequest, msg: "order is already paid"},
	{target: service.ErrOrderNotPaid, code: response.CodeBadRequest, msg: "order is not paid"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, msg: "invalid payment method"},
	{target: service.ErrPaymentMismatch, code: response.CodeBadRequest, msg: "payment does not match order"},
}

var reviewErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthenticated, code: response.CodeUnauthorized, msg: "sign in to leave a review"},
	{target: service.ErrProductNotFound, code: response.CodeNotFound, msg: "product not found"},
	{target: service.ErrReviewInvalid, code: response.CodeBadRequest, msg: "invalid review"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "cart operation failed")
}

func respondOrderCreateError(c *gin.Context, err error) {
	respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "order create failed")
}

func respondPaymentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, paymentErrorRules, response.CodeInternal, "payment failed")
}

func respondReviewError(c *gin.Context, err error) {
	respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "review failed")
}
