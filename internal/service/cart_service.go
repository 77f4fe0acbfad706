package service

import (
	"strings"

	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/pricing"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

// Identity 请求主体标识：已登录用户或匿名会话购物车。
// UserID 非零表示登录用户；否则使用 SessionCartID 定位匿名购物车。
type Identity struct {
	UserID        uint
	SessionCartID string
}

// Anonymous 判断是否匿名主体
func (id Identity) Anonymous() bool {
	return id.UserID == 0
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	rule        pricing.Rule
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, rule pricing.Rule) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		rule:        rule,
	}
}

// GetCart 获取当前主体的购物车，不存在时返回空购物车（不落库）
func (s *CartService) GetCart(id Identity) (*models.Cart, error) {
	cart, err := s.findCart(id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return s.emptyCart(id), nil
	}
	return cart, nil
}

// AddItem 向购物车添加商品。已存在时数量累加，超过库存报错。
func (s *CartService) AddItem(id Identity, productID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		quantity = 1
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	cart, err := s.findCart(id)
	if err != nil {
		return nil, err
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if cart == nil {
			cart = s.emptyCart(id)
			if err := cartRepo.Create(cart); err != nil {
				return err
			}
		}

		newQuantity := quantity
		for _, item := range cart.Items {
			if item.ProductID == productID {
				newQuantity += item.Quantity
				break
			}
		}
		if newQuantity > product.Stock {
			return ErrInsufficientStock
		}

		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Slug:      product.Slug,
			Image:     firstImage(product.Images),
			Price:     product.Price,
			Quantity:  newQuantity,
		}
		if err := cartRepo.UpsertItem(item); err != nil {
			return err
		}
		return s.recalculate(cartRepo, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(id)
}

// RemoveItem 从购物车减少一件商品，数量为 1 时整项移除
func (s *CartService) RemoveItem(id Identity, productID uint) (*models.Cart, error) {
	cart, err := s.findCart(id)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}

	var target *models.CartItem
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			target = &cart.Items[i]
			break
		}
	}
	if target == nil {
		return nil, ErrCartItemNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if target.Quantity <= 1 {
			if err := cartRepo.DeleteItem(cart.ID, productID); err != nil {
				return err
			}
		} else {
			target.Quantity--
			if err := cartRepo.UpsertItem(target); err != nil {
				return err
			}
		}
		return s.recalculate(cartRepo, cart)
	})
	if err != nil {
		return nil, err
	}
	return s.GetCart(id)
}

// Clear 清空购物车
func (s *CartService) Clear(id Identity) error {
	cart, err := s.findCart(id)
	if err != nil {
		return err
	}
	if cart == nil {
		return nil
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}
		return s.recalculate(cartRepo, cart)
	})
}

// MergeGuestCart 登录时将匿名购物车归并到用户名下。
// 匿名购物车整体接管，用户原有购物车弃用。
func (s *CartService) MergeGuestCart(userID uint, sessionCartID string) error {
	if userID == 0 || strings.TrimSpace(sessionCartID) == "" {
		return nil
	}
	guestCart, err := s.cartRepo.GetBySessionCart(sessionCartID)
	if err != nil {
		return err
	}
	if guestCart == nil || len(guestCart.Items) == 0 {
		return nil
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		existing, err := cartRepo.GetByUser(userID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := cartRepo.Delete(existing.ID); err != nil {
				return err
			}
		}
		guestCart.UserID = userID
		return cartRepo.Save(guestCart)
	})
}

// findCart 按主体定位购物车
func (s *CartService) findCart(id Identity) (*models.Cart, error) {
	if id.UserID != 0 {
		return s.cartRepo.GetByUser(id.UserID)
	}
	return s.cartRepo.GetBySessionCart(id.SessionCartID)
}

// recalculate 重算并持久化购物车聚合金额
func (s *CartService) recalculate(cartRepo *repository.GormCartRepository, cart *models.Cart) error {
	fresh, err := s.reloadCart(cartRepo, cart)
	if err != nil {
		return err
	}
	result := pricing.ComputeCart(s.rule, fresh.Items)
	fresh.ItemsPrice = result.ItemsPrice
	fresh.ShippingPrice = result.ShippingPrice
	fresh.TaxPrice = result.TaxPrice
	fresh.TotalPrice = result.TotalPrice
	if err := cartRepo.Save(fresh); err != nil {
		return err
	}
	*cart = *fresh
	return nil
}

func (s *CartService) reloadCart(cartRepo *repository.GormCartRepository, cart *models.Cart) (*models.Cart, error) {
	var fresh *models.Cart
	var err error
	if cart.UserID != 0 {
		fresh, err = cartRepo.GetByUser(cart.UserID)
	} else {
		fresh, err = cartRepo.GetBySessionCart(cart.SessionCartID)
	}
	if err != nil {
		return nil, err
	}
	if fresh == nil {
		return nil, ErrCartNotFound
	}
	return fresh, nil
}

func (s *CartService) emptyCart(id Identity) *models.Cart {
	return &models.Cart{
		UserID:        id.UserID,
		SessionCartID: strings.TrimSpace(id.SessionCartID),
		ItemsPrice:    models.ZeroMoney(),
		ShippingPrice: models.ZeroMoney(),
		TaxPrice:      models.ZeroMoney(),
		TotalPrice:    models.ZeroMoney(),
	}
}

func firstImage(images models.StringArray) string {
	if len(images) == 0 {
		return ""
	}
	return images[0]
}
