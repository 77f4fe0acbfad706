package service

import "errors"

// 业务预期失败统一使用哨兵错误，由 handler 层映射为响应码与跳转目标。
var (
	ErrUnauthenticated      = errors.New("user not authenticated")
	ErrCartNotFound         = errors.New("cart not found")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("not enough stock")
	ErrNoShippingAddress    = errors.New("no shipping address")
	ErrNoPaymentMethod      = errors.New("no payment method")
	ErrPaymentMethodInvalid = errors.New("invalid payment method")
	ErrOrderNotFound        = errors.New("order not found")
	ErrOrderCreateFailed    = errors.New("order create failed")
	ErrOrderAlreadyPaid     = errors.New("order is already paid")
	ErrOrderNotPaid         = errors.New("order is not paid")
	ErrPaymentMismatch      = errors.New("payment does not match order")
	ErrPaymentNotSucceeded  = errors.New("payment not succeeded")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrSlugTaken            = errors.New("slug already exists")
	ErrReviewInvalid        = errors.New("invalid review")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrEmailDisabled        = errors.New("email service disabled")
	ErrEmailNotConfigured   = errors.New("email service not configured")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrUploadInvalid        = errors.New("invalid upload file")
)
