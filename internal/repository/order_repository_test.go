package repository

import (
	"testing"
	"time"

	"github.com/prostore-go/internal/models"
)

func createTestOrder(t *testing.T, repo *GormOrderRepository, userID uint, total string) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID: userID,
		ShippingAddress: models.ShippingAddress{
			FullName: "Jane Doe", StreetAddress: "1 Main St",
			City: "Springfield", PostalCode: "12345", Country: "US",
		},
		PaymentMethod: "PayPal",
		ItemsPrice:    money(t, total),
		TotalPrice:    money(t, total),
	}
	items := []models.OrderItem{
		{ProductID: 1, Name: "Polo", Slug: "polo", Price: money(t, total), Quantity: 1},
	}
	if err := repo.Create(order, items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	return order
}

func TestOrderCreateAndGetByID(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	order := createTestOrder(t, repo, 1, "33.00")

	got, err := repo.GetByID(order.ID)
	if err != nil || got == nil {
		t.Fatalf("get order failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("want 1 order item got %d", len(got.Items))
	}
	if got.Items[0].OrderID != order.ID {
		t.Fatalf("order item not linked to order")
	}
	if got.ShippingAddress.City != "Springfield" {
		t.Fatalf("shipping address not persisted: %+v", got.ShippingAddress)
	}
}

func TestOrderGetByIDAndUserScopesOwnership(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	order := createTestOrder(t, repo, 1, "33.00")

	got, err := repo.GetByIDAndUser(order.ID, 2)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got != nil {
		t.Fatalf("other user's order must not be visible")
	}
}

func TestOrderListByUserPagination(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	for i := 0; i < 5; i++ {
		createTestOrder(t, repo, 9, "10.00")
	}
	createTestOrder(t, repo, 10, "10.00")

	orders, total, err := repo.ListByUser(OrderListFilter{UserID: 9, Page: 2, PageSize: 4})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("total want 5 got %d", total)
	}
	if len(orders) != 1 {
		t.Fatalf("page 2 want 1 row got %d", len(orders))
	}

	orders, _, err = repo.ListByUser(OrderListFilter{UserID: 9, Page: 3, PageSize: 4})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("out-of-range page should be empty")
	}
}

func TestOrderListAdminPaidFilter(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	paid := createTestOrder(t, repo, 1, "20.00")
	createTestOrder(t, repo, 1, "30.00")

	now := time.Now()
	if err := repo.UpdateFields(paid.ID, map[string]interface{}{
		"is_paid": true, "paid_at": &now,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	isPaid := true
	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, IsPaid: &isPaid})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || orders[0].ID != paid.ID {
		t.Fatalf("paid filter mismatch: total=%d", total)
	}
}

func TestOrderListAdminUserNameFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	jane := &models.User{Name: "Jane Doe", Email: "jane@example.com", PasswordHash: "x", Role: "user"}
	john := &models.User{Name: "John Roe", Email: "john@example.com", PasswordHash: "x", Role: "user"}
	if err := db.Create(jane).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	if err := db.Create(john).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	janeOrder := createTestOrder(t, repo, jane.ID, "20.00")
	createTestOrder(t, repo, john.ID, "30.00")

	orders, total, err := repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, UserName: "jane"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != janeOrder.ID {
		t.Fatalf("user name filter mismatch: total=%d rows=%d", total, len(orders))
	}

	// 姓名过滤可与支付状态过滤叠加
	isPaid := true
	_, total, err = repo.ListAdmin(OrderListFilter{Page: 1, PageSize: 10, UserName: "jane", IsPaid: &isPaid})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 0 {
		t.Fatalf("combined filter want 0 got %d", total)
	}
}

func TestOrderListUnpaidBefore(t *testing.T) {
	repo := NewOrderRepository(setupTestDB(t))
	stale := createTestOrder(t, repo, 1, "20.00")
	fresh := createTestOrder(t, repo, 1, "30.00")

	past := time.Now().Add(-2 * time.Hour)
	if err := repo.UpdateFields(stale.ID, map[string]interface{}{"created_at": past}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	orders, err := repo.ListUnpaidBefore(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != stale.ID {
		t.Fatalf("unpaid cutoff mismatch: %d rows", len(orders))
	}
	_ = fresh
}

func TestOrderDeleteRemovesItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, repo, 1, "20.00")

	if err := repo.Delete(order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("order items should be removed, got %d", count)
	}
}
