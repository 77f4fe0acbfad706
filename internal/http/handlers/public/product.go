package public

import (
	"strconv"
	"strings"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListProducts 商品搜索与筛选列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, h.Config.Order.PageSize)

	filter := repository.ProductListFilter{
		Page:      page,
		PageSize:  pageSize,
		Query:     strings.TrimSpace(c.Query("q")),
		Category:  strings.TrimSpace(c.Query("category")),
		PriceMin:  strings.TrimSpace(c.Query("price_min")),
		PriceMax:  strings.TrimSpace(c.Query("price_max")),
		RatingMin: strings.TrimSpace(c.Query("rating")),
		Sort:      strings.TrimSpace(c.Query("sort")),
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProductBySlug 按 slug 查询商品详情
func (h *Handler) GetProductBySlug(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "slug required", nil)
		return
	}

	product, err := h.ProductService.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to get product", err)
		return
	}
	if product == nil {
		response.NotFound(c, "product not found")
		return
	}

	response.Success(c, product)
}

// LatestProducts 最新上架商品
func (h *Handler) LatestProducts(c *gin.Context) {
	products, err := h.ProductService.Latest()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}
	response.Success(c, products)
}

// FeaturedProducts 推荐位商品
func (h *Handler) FeaturedProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "4"))
	products, err := h.ProductService.Featured(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}
	response.Success(c, products)
}

// ProductCategories 商品分类及数量
func (h *Handler) ProductCategories(c *gin.Context) {
	categories, err := h.ProductService.Categories()
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list categories", err)
		return
	}
	response.Success(c, categories)
}
