package repository

import (
	"errors"

	"github.com/prostore-go/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetByUser(userID uint) (*models.Cart, error)
	GetBySessionCart(sessionCartID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Save(cart *models.Cart) error
	UpsertItem(item *models.CartItem) error
	DeleteItem(cartID, productID uint) error
	ClearItems(cartID uint) error
	Delete(cartID uint) error
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// GetByUser 获取登录用户的购物车
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// GetBySessionCart 获取匿名会话的购物车
func (r *GormCartRepository) GetBySessionCart(sessionCartID string) (*models.Cart, error) {
	if sessionCartID == "" {
		return nil, nil
	}
	var cart models.Cart
	if err := r.db.Preload("Items").
		Where("session_cart_id = ? AND user_id = 0", sessionCartID).
		First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return r.db.Create(cart).Error
}

// Save 保存购物车聚合金额
func (r *GormCartRepository) Save(cart *models.Cart) error {
	return r.db.Omit("Items").Save(cart).Error
}

// UpsertItem 添加或更新购物车项
func (r *GormCartRepository) UpsertItem(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	var existing models.CartItem
	err := r.db.Where("cart_id = ? AND product_id = ?", item.CartID, item.ProductID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity": item.Quantity,
		"price":    item.Price,
		"name":     item.Name,
		"slug":     item.Slug,
		"image":    item.Image,
	}
	if err := r.db.Model(&existing).Updates(updates).Error; err != nil {
		return err
	}
	item.ID = existing.ID
	return nil
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(cartID, productID uint) error {
	return r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&models.CartItem{}).Error
}

// ClearItems 清空购物车项
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// Delete 删除购物车及其项
func (r *GormCartRepository) Delete(cartID uint) error {
	if err := r.ClearItems(cartID); err != nil {
		return err
	}
	return r.db.Delete(&models.Cart{}, cartID).Error
}
