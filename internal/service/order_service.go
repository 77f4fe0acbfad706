package service

import (
	"time"

	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/queue"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo     repository.OrderRepository
	cartRepo      repository.CartRepository
	userRepo      repository.UserRepository
	queueClient   *queue.Client
	expireMinutes int
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, userRepo repository.UserRepository, queueClient *queue.Client, expireMinutes int) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		userRepo:      userRepo,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
	}
}

// CreateOrder 从用户购物车创建订单。
// 前置校验按序：登录 → 购物车非空 → 收货地址 → 支付方式。
// 订单与订单项落库并清空购物车在同一事务内完成；创建时不扣库存。
func (s *OrderService) CreateOrder(userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	cart, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, err
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}
	if user.Address == nil || !user.Address.IsComplete() {
		return nil, ErrNoShippingAddress
	}
	if user.PaymentMethod == "" {
		return nil, ErrNoPaymentMethod
	}

	now := time.Now()
	order := &models.Order{
		UserID:          user.ID,
		ShippingAddress: *user.Address,
		PaymentMethod:   user.PaymentMethod,
		ItemsPrice:      cart.ItemsPrice,
		ShippingPrice:   cart.ShippingPrice,
		TaxPrice:        cart.TaxPrice,
		TotalPrice:      cart.TotalPrice,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, ci := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Slug:      ci.Slug,
			Image:     ci.Image,
			Price:     ci.Price,
			Quantity:  ci.Quantity,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return err
		}
		cart.ItemsPrice = models.ZeroMoney()
		cart.ShippingPrice = models.ZeroMoney()
		cart.TaxPrice = models.ZeroMoney()
		cart.TotalPrice = models.ZeroMoney()
		return cartRepo.Save(cart)
	})
	if err != nil {
		logger.Errorw("order_create_failed", "user_id", userID, "error", err)
		return nil, ErrOrderCreateFailed
	}

	if s.queueClient != nil && s.expireMinutes > 0 {
		if err := s.queueClient.EnqueueOrderExpire(queue.OrderExpirePayload{
			OrderID: order.ID,
		}, time.Duration(s.expireMinutes)*time.Minute); err != nil {
			logger.Errorw("order_enqueue_expire_failed",
				"order_id", order.ID,
				"error", err,
			)
		}
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"user_id", userID,
		"total_price", order.TotalPrice.String(),
	)
	return order, nil
}

// GetOrder 获取订单详情。管理员可见全部，普通用户仅可见自己的订单。
func (s *OrderService) GetOrder(orderID, userID uint, isAdmin bool) (*models.Order, error) {
	var order *models.Order
	var err error
	if isAdmin {
		order, err = s.orderRepo.GetByID(orderID)
	} else {
		order, err = s.orderRepo.GetByIDAndUser(orderID, userID)
	}
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListMyOrders 用户订单分页列表
func (s *OrderService) ListMyOrders(userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if userID == 0 {
		return nil, 0, ErrUnauthenticated
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListOrders 管理端订单分页列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// DeleteOrder 管理端删除订单
func (s *OrderService) DeleteOrder(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	return s.orderRepo.Delete(orderID)
}

// ExpireUnpaidOrder 超时清理未支付订单，已支付或已删除订单直接跳过
func (s *OrderService) ExpireUnpaidOrder(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil || order.IsPaid {
		return nil
	}
	if err := s.orderRepo.Delete(orderID); err != nil {
		return err
	}
	logger.Infow("order_expired_removed", "order_id", orderID)
	return nil
}

// ExpireStaleOrders 兜底清扫超过支付窗口仍未支付的订单。
// 延迟任务在队列不可用期间会丢，周期清扫按创建时间补偿。
func (s *OrderService) ExpireStaleOrders() (int, error) {
	if s.expireMinutes <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-time.Duration(s.expireMinutes) * time.Minute)
	orders, err := s.orderRepo.ListUnpaidBefore(cutoff)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, order := range orders {
		if err := s.ExpireUnpaidOrder(order.ID); err != nil {
			logger.Warnw("order_expire_sweep_failed", "order_id", order.ID, "error", err)
			continue
		}
		expired++
	}
	if expired > 0 {
		logger.Infow("order_expire_sweep_done", "expired_count", expired)
	}
	return expired, nil
}
