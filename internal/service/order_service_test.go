package service

import (
	"errors"
	"testing"
	"time"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"
)

func TestOrderServiceCreateOrderRequiresAuthentication(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(db)

	if _, err := svc.CreateOrder(0); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestOrderServiceCreateOrderPreconditionOrder(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(db)
	cartSvc := newCartService(db)
	product := seedProduct(t, db, "Boots", "boots", "80.00", 5)

	// 无地址无支付方式的用户，购物车为空：先报空购物车
	user := seedUser(t, db, "steps@example.com", false, "")
	if _, err := orderSvc.CreateOrder(user.ID); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty first, got %v", err)
	}

	// 有购物车但无地址：报缺地址
	if _, err := cartSvc.AddItem(Identity{UserID: user.ID}, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := orderSvc.CreateOrder(user.ID); !errors.Is(err, ErrNoShippingAddress) {
		t.Fatalf("expected ErrNoShippingAddress, got %v", err)
	}

	// 补地址后仍缺支付方式
	user.Address = &models.ShippingAddress{
		FullName:      "Test Buyer",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "US",
	}
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("save address failed: %v", err)
	}
	if _, err := orderSvc.CreateOrder(user.ID); !errors.Is(err, ErrNoPaymentMethod) {
		t.Fatalf("expected ErrNoPaymentMethod, got %v", err)
	}
}

func TestOrderServiceCreateOrderSnapshotsCartAndClearsIt(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(db)
	cartSvc := newCartService(db)
	user := seedUser(t, db, "buyer@example.com", true, constants.PaymentMethodPaypal)
	product := seedProduct(t, db, "Jacket", "jacket", "60.00", 10)

	if _, err := cartSvc.AddItem(Identity{UserID: user.ID}, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	order, err := orderSvc.CreateOrder(user.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if order.ID == 0 {
		t.Fatalf("order not persisted")
	}
	if got := order.TotalPrice.String(); got != "138.00" {
		t.Fatalf("order total = %s, want 138.00", got)
	}
	if order.ShippingAddress.City != "Springfield" {
		t.Fatalf("address snapshot missing: %+v", order.ShippingAddress)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 || order.Items[0].ProductID != product.ID {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}

	// 创建订单不扣库存
	var fresh models.Product
	if err := db.First(&fresh, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if fresh.Stock != 10 {
		t.Fatalf("stock = %d, want 10 (no decrement at creation)", fresh.Stock)
	}

	// 购物车被清空且金额归零
	cart, err := cartSvc.GetCart(Identity{UserID: user.ID})
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", cart.Items)
	}
	if !cart.TotalPrice.IsZero() {
		t.Fatalf("cart total = %s, want 0 after order", cart.TotalPrice.String())
	}
}

func TestOrderServiceGetOrderScoping(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(db)
	cartSvc := newCartService(db)
	owner := seedUser(t, db, "owner@example.com", true, constants.PaymentMethodPaypal)
	other := seedUser(t, db, "other@example.com", true, constants.PaymentMethodPaypal)
	product := seedProduct(t, db, "Belt", "belt", "25.00", 5)

	if _, err := cartSvc.AddItem(Identity{UserID: owner.ID}, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(owner.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if _, err := orderSvc.GetOrder(order.ID, other.ID, false); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got %v", err)
	}
	if _, err := orderSvc.GetOrder(order.ID, other.ID, true); err != nil {
		t.Fatalf("admin should see all orders, got %v", err)
	}
	if _, err := orderSvc.GetOrder(order.ID, owner.ID, false); err != nil {
		t.Fatalf("owner should see own order, got %v", err)
	}
}

func TestOrderServiceExpireUnpaidOrder(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(db)
	cartSvc := newCartService(db)
	user := seedUser(t, db, "expire@example.com", true, constants.PaymentMethodPaypal)
	product := seedProduct(t, db, "Hat", "hat", "18.00", 5)

	if _, err := cartSvc.AddItem(Identity{UserID: user.ID}, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(user.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}

	if err := orderSvc.ExpireUnpaidOrder(order.ID); err != nil {
		t.Fatalf("ExpireUnpaidOrder failed: %v", err)
	}
	if _, err := orderSvc.GetOrder(order.ID, user.ID, true); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected expired order removed, got %v", err)
	}

	// 不存在的订单直接跳过
	if err := orderSvc.ExpireUnpaidOrder(order.ID); err != nil {
		t.Fatalf("expire of missing order should be a no-op, got %v", err)
	}
}

func TestOrderServiceExpireStaleOrdersSweep(t *testing.T) {
	db := setupTestDB(t)
	cartSvc := newCartService(db)
	orderSvc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		nil,
		30,
	)
	user := seedUser(t, db, "sweep@example.com", true, constants.PaymentMethodPaypal)
	product := seedProduct(t, db, "Scarves", "scarves", "14.00", 20)

	makeOrder := func() *models.Order {
		if _, err := cartSvc.AddItem(Identity{UserID: user.ID}, product.ID, 1); err != nil {
			t.Fatalf("AddItem failed: %v", err)
		}
		order, err := orderSvc.CreateOrder(user.ID)
		if err != nil {
			t.Fatalf("CreateOrder failed: %v", err)
		}
		return order
	}
	backdate := func(orderID uint) {
		past := time.Now().Add(-time.Hour)
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).Update("created_at", past).Error; err != nil {
			t.Fatalf("backdate order failed: %v", err)
		}
	}

	staleUnpaid := makeOrder()
	backdate(staleUnpaid.ID)
	stalePaid := makeOrder()
	backdate(stalePaid.ID)
	if err := db.Model(&models.Order{}).Where("id = ?", stalePaid.ID).Update("is_paid", true).Error; err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	recentUnpaid := makeOrder()

	expired, err := orderSvc.ExpireStaleOrders()
	if err != nil {
		t.Fatalf("ExpireStaleOrders failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expired count = %d, want 1", expired)
	}
	if _, err := orderSvc.GetOrder(staleUnpaid.ID, user.ID, true); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("stale unpaid order should be removed, got %v", err)
	}
	if _, err := orderSvc.GetOrder(stalePaid.ID, user.ID, true); err != nil {
		t.Fatalf("paid order must survive the sweep, got %v", err)
	}
	if _, err := orderSvc.GetOrder(recentUnpaid.ID, user.ID, true); err != nil {
		t.Fatalf("order inside the payment window must survive, got %v", err)
	}
}

func TestOrderServiceExpireSkipsPaidOrder(t *testing.T) {
	db := setupTestDB(t)
	orderSvc := newOrderService(db)
	cartSvc := newCartService(db)
	user := seedUser(t, db, "paid@example.com", true, constants.PaymentMethodPaypal)
	product := seedProduct(t, db, "Gloves", "gloves", "22.00", 5)

	if _, err := cartSvc.AddItem(Identity{UserID: user.ID}, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	order, err := orderSvc.CreateOrder(user.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("is_paid", true).Error; err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}

	if err := orderSvc.ExpireUnpaidOrder(order.ID); err != nil {
		t.Fatalf("ExpireUnpaidOrder failed: %v", err)
	}
	if _, err := orderSvc.GetOrder(order.ID, user.ID, true); err != nil {
		t.Fatalf("paid order must survive expiry, got %v", err)
	}
}
