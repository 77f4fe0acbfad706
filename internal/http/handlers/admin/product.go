package admin

import (
	"errors"
	"strconv"
	"strings"

	handlershared "github.com/prostore-go/internal/http/handlers/shared"
	"github.com/prostore-go/internal/http/response"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"
	"github.com/prostore-go/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Slug        string   `json:"slug" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Price       string   `json:"price" binding:"required"`
	Stock       int      `json:"stock"`
	IsFeatured  bool     `json:"is_featured"`
	Banner      string   `json:"banner"`
}

func (r ProductRequest) toModel() (*models.Product, error) {
	price, err := models.NewMoneyFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return nil, err
	}
	if r.Stock < 0 {
		return nil, errors.New("stock cannot be negative")
	}
	return &models.Product{
		Name:        strings.TrimSpace(r.Name),
		Slug:        strings.TrimSpace(r.Slug),
		Category:    strings.TrimSpace(r.Category),
		Brand:       strings.TrimSpace(r.Brand),
		Description: r.Description,
		Images:      models.StringArray(r.Images),
		Price:       price,
		Stock:       r.Stock,
		IsFeatured:  r.IsFeatured,
		Banner:      strings.TrimSpace(r.Banner),
	}, nil
}

// ListProducts 管理端商品列表
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize, 10)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Query:    strings.TrimSpace(c.Query("q")),
		Category: strings.TrimSpace(c.Query("category")),
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list products", err)
		return
	}

	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetProduct 管理端商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to get product", err)
		return
	}

	response.Success(c, product)
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := req.toModel()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid product data", err)
		return
	}

	if err := h.ProductService.Create(product); err != nil {
		if errors.Is(err, service.ErrSlugTaken) {
			respondError(c, response.CodeBadRequest, "slug already exists", nil)
			return
		}
		respondError(c, response.CodeInternal, "failed to create product", err)
		return
	}

	response.SuccessWithMsg(c, "product created", product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "bad request", err)
		return
	}

	product, err := req.toModel()
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid product data", err)
		return
	}
	product.ID = id

	if err := h.ProductService.Update(c.Request.Context(), product); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, service.ErrSlugTaken):
			respondError(c, response.CodeBadRequest, "slug already exists", nil)
		default:
			respondError(c, response.CodeInternal, "failed to update product", err)
		}
		return
	}

	response.SuccessWithMsg(c, "product updated", product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.ProductService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		respondError(c, response.CodeInternal, "failed to delete product", err)
		return
	}

	response.SuccessWithMsg(c, "product deleted", nil)
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}
