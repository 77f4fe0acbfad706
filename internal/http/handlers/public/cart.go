package public

import (
	"github.com/prostore-go/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

// RemoveCartItemRequest 减购请求
type RemoveCartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetCart 获取当前主体的购物车
func (h *Handler) GetCart(c *gin.Context) {
	cart, err := h.CartService.GetCart(currentIdentity(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, cart)
}

// AddCartItem 向购物车添加商品，数量默认 1
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	cart, err := h.CartService.AddItem(currentIdentity(c), req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, "item added to cart", cart)
}

// RemoveCartItem 购物车内商品数量减一，减到零移除
func (h *Handler) RemoveCartItem(c *gin.Context) {
	var req RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	cart, err := h.CartService.RemoveItem(currentIdentity(c), req.ProductID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, "item removed from cart", cart)
}
