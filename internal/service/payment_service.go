package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/prostore-go/internal/cache"
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/payment/paypal"
	"github.com/prostore-go/internal/payment/stripe"
	"github.com/prostore-go/internal/queue"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

// PayPalGateway PayPal 网关抽象，便于测试替换
type PayPalGateway interface {
	CreateOrder(ctx context.Context, input paypal.CreateInput) (*paypal.CreateResult, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.CaptureResult, error)
}

// StripeGateway Stripe 网关抽象，便于测试替换
type StripeGateway interface {
	CreatePaymentIntent(ctx context.Context, input stripe.CreateInput) (*stripe.IntentResult, error)
	GetPaymentIntent(ctx context.Context, paymentIntentID string) (*stripe.IntentResult, error)
}

// PaymentService 支付对账服务：负责网关交互、支付结果核对与订单状态流转
type PaymentService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	paypalGateway PayPalGateway
	stripeGateway StripeGateway
	queueClient   *queue.Client
	currency      string
}

// NewPaymentService 创建支付服务
func NewPaymentService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, paypalGateway PayPalGateway, stripeGateway StripeGateway, queueClient *queue.Client, currency string) *PaymentService {
	if strings.TrimSpace(currency) == "" {
		currency = "USD"
	}
	return &PaymentService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		paypalGateway: paypalGateway,
		stripeGateway: stripeGateway,
		queueClient:   queueClient,
		currency:      currency,
	}
}

// CreatePayPalOrder 在 PayPal 侧创建订单并暂存网关单号。
// 此时仅记录网关订单 ID，金额与状态留到捕获成功后写入。
func (s *PaymentService) CreatePayPalOrder(ctx context.Context, orderID, userID uint) (string, error) {
	order, err := s.getOwnOrder(orderID, userID)
	if err != nil {
		return "", err
	}
	if order.IsPaid {
		return "", ErrOrderAlreadyPaid
	}
	if order.PaymentMethod != constants.PaymentMethodPaypal {
		return "", ErrPaymentMethodInvalid
	}
	if s.paypalGateway == nil {
		return "", ErrPaymentMethodInvalid
	}

	result, err := s.paypalGateway.CreateOrder(ctx, paypal.CreateInput{
		InvoiceID: orderNumber(order.ID),
		Amount:    order.TotalPrice.String(),
		Currency:  s.currency,
	})
	if err != nil {
		return "", err
	}

	provisional := &models.PaymentResult{
		ID:        result.OrderID,
		Status:    "",
		PricePaid: "0",
	}
	if err := s.orderRepo.UpdateFields(order.ID, map[string]interface{}{
		"payment_result": provisional,
	}); err != nil {
		return "", err
	}
	logger.Infow("paypal_order_created", "order_id", order.ID, "paypal_order_id", result.OrderID)
	return result.OrderID, nil
}

// ApprovePayPalOrder 捕获 PayPal 订单并核对结果。
// 捕获返回的网关单号必须与暂存单号一致且状态为 COMPLETED，否则拒绝入账。
func (s *PaymentService) ApprovePayPalOrder(ctx context.Context, orderID, userID uint, paypalOrderID string) (*models.Order, error) {
	order, err := s.getOwnOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if s.paypalGateway == nil {
		return nil, ErrPaymentMethodInvalid
	}

	capture, err := s.paypalGateway.CaptureOrder(ctx, paypalOrderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentResult == nil ||
		capture.OrderID != order.PaymentResult.ID ||
		!strings.EqualFold(capture.Status, paypal.StatusCompleted) {
		logger.Warnw("paypal_capture_mismatch",
			"order_id", order.ID,
			"expected_gateway_id", gatewayID(order.PaymentResult),
			"captured_gateway_id", capture.OrderID,
			"captured_status", capture.Status,
		)
		return nil, ErrPaymentMismatch
	}

	result := &models.PaymentResult{
		ID:           capture.OrderID,
		Status:       capture.Status,
		EmailAddress: capture.PayerEmail,
		PricePaid:    capture.Amount,
	}
	if err := s.MarkOrderAsPaid(order.ID, result); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// CreateStripePaymentIntent 创建 Stripe PaymentIntent，metadata 携带本地订单 ID
func (s *PaymentService) CreateStripePaymentIntent(ctx context.Context, orderID, userID uint) (*stripe.IntentResult, error) {
	order, err := s.getOwnOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if order.PaymentMethod != constants.PaymentMethodStripe {
		return nil, ErrPaymentMethodInvalid
	}
	if s.stripeGateway == nil {
		return nil, ErrPaymentMethodInvalid
	}

	intent, err := s.stripeGateway.CreatePaymentIntent(ctx, stripe.CreateInput{
		OrderID:     order.ID,
		Amount:      order.TotalPrice.String(),
		Currency:    s.currency,
		Description: "order " + orderNumber(order.ID),
	})
	if err != nil {
		return nil, err
	}
	return intent, nil
}

// ConfirmStripePayment 核对 Stripe 支付结果并入账。
// metadata 中的订单 ID 必须与本地订单一致；未成功的支付不做任何变更。
func (s *PaymentService) ConfirmStripePayment(ctx context.Context, orderID, userID uint, paymentIntentID string) (*models.Order, error) {
	order, err := s.getOwnOrder(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, ErrOrderAlreadyPaid
	}
	if s.stripeGateway == nil {
		return nil, ErrPaymentMethodInvalid
	}

	intent, err := s.stripeGateway.GetPaymentIntent(ctx, paymentIntentID)
	if err != nil {
		return nil, err
	}
	if intent.OrderID != order.ID {
		logger.Warnw("stripe_intent_mismatch",
			"order_id", order.ID,
			"intent_order_id", intent.OrderID,
			"payment_intent_id", intent.PaymentIntentID,
		)
		// 元数据归属不一致按订单不存在处理，避免泄露他单信息
		return nil, ErrOrderNotFound
	}
	if intent.Status != stripe.StatusSucceeded {
		return nil, ErrPaymentNotSucceeded
	}

	result := &models.PaymentResult{
		ID:           intent.PaymentIntentID,
		Status:       intent.Status,
		EmailAddress: intent.PayerEmail,
		PricePaid:    intent.Amount,
	}
	if err := s.MarkOrderAsPaid(order.ID, result); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(order.ID)
}

// MarkOrderAsPaid 订单入账：置已支付并按订单项扣减库存。
// 同一事务内重读订单做已支付幂等保护，重复入账返回 ErrOrderAlreadyPaid。
func (s *PaymentService) MarkOrderAsPaid(orderID uint, result *models.PaymentResult) error {
	var slugs []string
	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		order, err := orderRepo.GetByID(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		if order.IsPaid {
			return ErrOrderAlreadyPaid
		}

		for _, item := range order.Items {
			if err := productRepo.AdjustStock(item.ProductID, -item.Quantity); err != nil {
				return err
			}
			slugs = append(slugs, item.Slug)
		}

		now := time.Now()
		updates := map[string]interface{}{
			"is_paid": true,
			"paid_at": &now,
		}
		if result != nil {
			updates["payment_result"] = result
		}
		return orderRepo.UpdateFields(orderID, updates)
	})
	if err != nil {
		return err
	}

	// 库存已变动，详情缓存按商品逐个失效
	s.invalidateProductCache(slugs)

	logger.Infow("order_marked_paid", "order_id", orderID)
	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOrderPaidEmail(queue.OrderPaidEmailPayload{OrderID: orderID}); err != nil {
			logger.Errorw("order_enqueue_paid_email_failed", "order_id", orderID, "error", err)
		}
	}
	return nil
}

// MarkOrderAsPaidByCOD 货到付款订单由管理员手工入账
func (s *PaymentService) MarkOrderAsPaidByCOD(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.PaymentMethod != constants.PaymentMethodCashOnDelivery {
		return nil, ErrPaymentMethodInvalid
	}
	if err := s.MarkOrderAsPaid(orderID, nil); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// DeliverOrder 标记订单发货，仅允许已支付订单
func (s *PaymentService) DeliverOrder(orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if !order.IsPaid {
		return nil, ErrOrderNotPaid
	}

	now := time.Now()
	if err := s.orderRepo.UpdateFields(orderID, map[string]interface{}{
		"is_delivered": true,
		"delivered_at": &now,
	}); err != nil {
		return nil, err
	}
	logger.Infow("order_delivered", "order_id", orderID)
	return s.orderRepo.GetByID(orderID)
}

func (s *PaymentService) invalidateProductCache(slugs []string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for _, slug := range slugs {
		if err := cache.Del(ctx, cache.ProductKey(slug)); err != nil {
			logger.Warnw("product_cache_invalidate_failed", "slug", slug, "error", err)
		}
	}
}

func (s *PaymentService) getOwnOrder(orderID, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

func gatewayID(result *models.PaymentResult) string {
	if result == nil {
		return ""
	}
	return result.ID
}

func orderNumber(orderID uint) string {
	return "PS-" + strconv.FormatUint(uint64(orderID), 10)
}
