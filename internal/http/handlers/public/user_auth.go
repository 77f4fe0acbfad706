package public

import (
	"errors"
	"strings"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateAddressRequest 更新收货地址请求
type UpdateAddressRequest struct {
	FullName      string `json:"full_name" binding:"required"`
	StreetAddress string `json:"street_address" binding:"required"`
	City          string `json:"city" binding:"required"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required"`
}

// UpdatePaymentMethodRequest 更新支付方式请求
type UpdatePaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

type userProfileResponse struct {
	ID            uint                    `json:"id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Role          string                  `json:"role"`
	Address       *models.ShippingAddress `json:"address"`
	PaymentMethod string                  `json:"payment_method"`
}

func newUserProfileResponse(user *models.User) userProfileResponse {
	return userProfileResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		Address:       user.Address,
		PaymentMethod: user.PaymentMethod,
	}
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	if h.CaptchaService != nil && h.CaptchaService.Enabled() {
		if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
			respondError(c, response.CodeBadRequest, "captcha invalid", nil)
			return
		}
	}

	user, err := h.UserService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			respondError(c, response.CodeBadRequest, "email already registered", nil)
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "invalid email address", nil)
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeBadRequest, "password does not meet the password policy", nil)
		default:
			respondError(c, response.CodeInternal, "register failed", err)
		}
		return
	}

	response.SuccessWithMsg(c, "registered", newUserProfileResponse(user))
}

// Login 用户登录，登录成功后合并匿名购物车
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, token, expiresAt, err := h.UserService.Login(req.Email, req.Password, req.RememberMe)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeBadRequest, "invalid email or password", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	// 匿名购物车并入用户购物车，失败不阻断登录
	sessionCartID := strings.TrimSpace(c.GetHeader(constants.SessionCartHeader))
	if sessionCartID != "" {
		if err := h.CartService.MergeGuestCart(user.ID, sessionCartID); err != nil {
			logger.Warnw("guest_cart_merge_failed",
				"user_id", user.ID,
				"session_cart_id", sessionCartID,
				"error", err,
			)
		}
	}

	response.SuccessWithMsg(c, "login success", gin.H{
		"token":      token,
		"expires_at": expiresAt.Unix(),
		"user":       newUserProfileResponse(user),
	})
}

// Me 当前登录用户信息
func (h *Handler) Me(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.UserService.GetProfile(uid)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Unauthorized(c, "user not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to get profile", err)
		return
	}

	response.Success(c, newUserProfileResponse(user))
}

// UpdateProfile 更新用户昵称
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserService.UpdateProfile(uid, req.Name)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to update profile", err)
		return
	}

	response.SuccessWithMsg(c, "profile updated", newUserProfileResponse(user))
}

// UpdateAddress 更新收货地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserService.UpdateAddress(uid, models.ShippingAddress{
		FullName:      req.FullName,
		StreetAddress: req.StreetAddress,
		City:          req.City,
		PostalCode:    req.PostalCode,
		Country:       req.Country,
	})
	if err != nil {
		if errors.Is(err, service.ErrNoShippingAddress) {
			respondError(c, response.CodeBadRequest, "incomplete shipping address", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update address", err)
		return
	}

	response.SuccessWithMsg(c, "address updated", newUserProfileResponse(user))
}

// UpdatePaymentMethod 更新首选支付方式
func (h *Handler) UpdatePaymentMethod(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	user, err := h.UserService.UpdatePaymentMethod(uid, req.PaymentMethod)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodInvalid) {
			respondError(c, response.CodeBadRequest, "invalid payment method", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to update payment method", err)
		return
	}

	response.SuccessWithMsg(c, "payment method updated", newUserProfileResponse(user))
}
