package public

import (
	"strconv"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// UpsertReviewRequest 提交评价请求
type UpsertReviewRequest struct {
	Rating      int    `json:"rating" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func productIDParam(c *gin.Context) (uint, bool) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "invalid product id", nil)
		return 0, false
	}
	return uint(productID), true
}

// UpsertReview 提交或覆盖当前用户对商品的评价
func (h *Handler) UpsertReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	var req UpsertReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	review, err := h.ReviewService.UpsertReview(service.UpsertReviewInput{
		UserID:      uid,
		ProductID:   productID,
		Rating:      req.Rating,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondReviewError(c, err)
		return
	}

	response.SuccessWithMsg(c, "review submitted", review)
}

// ListProductReviews 商品评价列表
func (h *Handler) ListProductReviews(c *gin.Context) {
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, h.Config.Order.PageSize)

	reviews, total, err := h.ReviewService.ListByProduct(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		ProductID: productID,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list reviews", err)
		return
	}

	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// GetMyReview 当前用户对商品的评价，未评价返回空数据
func (h *Handler) GetMyReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := productIDParam(c)
	if !ok {
		return
	}

	review, err := h.ReviewService.GetMyReview(uid, productID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to get review", err)
		return
	}

	response.Success(c, review)
}
