package repository

import (
	"errors"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategoryCount 分类及其商品数
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	SlugExists(slug string, excludeID uint) (bool, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	Latest(limit int) ([]models.Product, error)
	Featured(limit int) ([]models.Product, error)
	ListCategories() ([]CategoryCount, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	AdjustStock(id uint, delta int) error
	UpdateRating(id uint, rating decimal.Decimal, numReviews int) error
	WithTx(tx *gorm.DB) *GormProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) *GormProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// GetByID 根据 ID 获取商品
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// SlugExists 判断 slug 是否被其他商品占用
func (r *GormProductRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List 商品列表，支持关键字、分类、价格区间、评分与排序
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.Query != "" {
		query = query.Where("name "+likeOperator(r.db)+" ?", "%"+filter.Query+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.PriceMin != "" && filter.PriceMax != "" {
		query = query.Where("price >= ? AND price <= ?", filter.PriceMin, filter.PriceMax)
	}
	if filter.RatingMin != "" {
		query = query.Where("rating >= ?", filter.RatingMin)
	}
	if filter.InStock {
		query = query.Where("stock > 0")
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.Sort {
	case constants.ProductSortLowest:
		query = query.Order("price asc")
	case constants.ProductSortHighest:
		query = query.Order("price desc")
	case constants.ProductSortRating:
		query = query.Order("rating desc")
	default:
		query = query.Order("created_at desc")
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Latest 最新商品
func (r *GormProductRepository) Latest(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at desc").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Featured 推荐商品
func (r *GormProductRepository) Featured(limit int) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("is_featured = ?", true).
		Order("created_at desc").Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListCategories 全部分类及商品数
func (r *GormProductRepository) ListCategories() ([]CategoryCount, error) {
	var rows []CategoryCount
	if err := r.db.Model(&models.Product{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Order("category asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 更新商品
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete 删除商品
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// AdjustStock 增减库存，delta 为负表示扣减
func (r *GormProductRepository) AdjustStock(id uint, delta int) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

// UpdateRating 更新商品评分汇总
func (r *GormProductRepository) UpdateRating(id uint, rating decimal.Decimal, numReviews int) error {
	return r.db.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating":      rating,
		"num_reviews": numReviews,
	}).Error
}
