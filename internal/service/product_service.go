package service

import (
	"context"
	"strings"
	"time"

	"github.com/prostore-go/internal/cache"
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"
)

const productCacheTTL = 10 * time.Minute

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// GetBySlug 按 slug 获取商品详情，优先读缓存
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrProductNotFound
	}

	var cached models.Product
	hit, err := cache.GetJSON(ctx, cache.ProductKey(slug), &cached)
	if err != nil {
		logger.Warnw("product_cache_read_failed", "slug", slug, "error", err)
	}
	if hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := cache.SetJSON(ctx, cache.ProductKey(slug), product, productCacheTTL); err != nil {
		logger.Warnw("product_cache_write_failed", "slug", slug, "error", err)
	}
	return product, nil
}

// GetByID 按 ID 获取商品
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 商品分页列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = constants.DefaultPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	return s.productRepo.List(filter)
}

// Latest 最新商品
func (s *ProductService) Latest() ([]models.Product, error) {
	return s.productRepo.Latest(constants.LatestProductsLimit)
}

// Featured 推荐商品
func (s *ProductService) Featured(limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = constants.DefaultPageSize
	}
	return s.productRepo.Featured(limit)
}

// Categories 分类及商品数
func (s *ProductService) Categories() ([]repository.CategoryCount, error) {
	return s.productRepo.ListCategories()
}

// Create 创建商品，slug 必须唯一
func (s *ProductService) Create(product *models.Product) error {
	product.Slug = strings.TrimSpace(product.Slug)
	taken, err := s.productRepo.SlugExists(product.Slug, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if err := s.productRepo.Create(product); err != nil {
		return err
	}
	logger.Infow("product_created", "product_id", product.ID, "slug", product.Slug)
	return nil
}

// Update 更新商品并失效详情缓存
func (s *ProductService) Update(ctx context.Context, product *models.Product) error {
	existing, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	product.Slug = strings.TrimSpace(product.Slug)
	taken, err := s.productRepo.SlugExists(product.Slug, product.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	if err := s.productRepo.Update(product); err != nil {
		return err
	}

	s.invalidate(ctx, existing.Slug)
	if product.Slug != existing.Slug {
		s.invalidate(ctx, product.Slug)
	}
	return nil
}

// Delete 删除商品并失效详情缓存
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx, existing.Slug)
	logger.Infow("product_deleted", "product_id", id, "slug", existing.Slug)
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, slug string) {
	if err := cache.Del(ctx, cache.ProductKey(slug)); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "slug", slug, "error", err)
	}
}
