package admin

import (
	"errors"
	"strconv"
	"time"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders 管理端订单列表，支持支付/发货状态与时间范围筛选
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, 10)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
	}
	if userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil && userID > 0 {
		filter.UserID = uint(userID)
	}
	filter.UserName = c.Query("user_name")
	if raw := c.Query("is_paid"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			filter.IsPaid = &value
		}
	}
	if raw := c.Query("is_delivered"); raw != "" {
		if value, err := strconv.ParseBool(raw); err == nil {
			filter.IsDelivered = &value
		}
	}
	if raw := c.Query("created_from"); raw != "" {
		if value, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedFrom = &value
		}
	}
	if raw := c.Query("created_to"); raw != "" {
		if value, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.CreatedTo = &value
		}
	}

	orders, total, err := h.OrderService.ListOrders(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 管理端订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getAdminID(c)
	if !ok {
		return
	}
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrder(id, uid, true)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to get order", err)
		return
	}

	response.Success(c, order)
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.OrderService.DeleteOrder(id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to delete order", err)
		return
	}

	response.SuccessWithMsg(c, "order deleted", nil)
}

// MarkOrderAsPaid 线下收款（货到付款）订单标记已支付
func (h *Handler) MarkOrderAsPaid(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.PaymentService.MarkOrderAsPaidByCOD(id)
	if err != nil {
		respondAdminOrderError(c, err)
		return
	}

	response.SuccessWithMsg(c, "order marked as paid", order)
}

// DeliverOrder 已支付订单标记已发货
func (h *Handler) DeliverOrder(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	order, err := h.PaymentService.DeliverOrder(id)
	if err != nil {
		respondAdminOrderError(c, err)
		return
	}

	response.SuccessWithMsg(c, "order marked as delivered", order)
}

func respondAdminOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrOrderNotFound):
		response.NotFound(c, "order not found")
	case errors.Is(err, service.ErrOrderAlreadyPaid):
		respondError(c, response.CodeBadRequest, "order is already paid", nil)
	case errors.Is(err, service.ErrOrderNotPaid):
		respondError(c, response.CodeBadRequest, "order is not paid", nil)
	case errors.Is(err, service.ErrPaymentMethodInvalid):
		respondError(c, response.CodeBadRequest, "invalid payment method for this operation", nil)
	default:
		respondError(c, response.CodeInternal, "order operation failed", err)
	}
}
