package public

import (
	"strconv"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreateOrder 从当前购物车生成订单
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.CreateOrder(uid)
	if err != nil {
		respondOrderCreateError(c, err)
		return
	}

	response.SuccessWithMsg(c, "order created", order)
}

// ListMyOrders 当前用户订单列表
func (h *Handler) ListMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, h.Config.Order.PageSize)

	orders, total, err := h.OrderService.ListMyOrders(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list orders", err)
		return
	}

	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 订单详情，仅本人可见
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		respondError(c, response.CodeBadRequest, "invalid order id", nil)
		return
	}

	order, err := h.OrderService.GetOrder(uint(orderID), uid, false)
	if err != nil {
		respondPaymentError(c, err)
		return
	}

	response.Success(c, order)
}
