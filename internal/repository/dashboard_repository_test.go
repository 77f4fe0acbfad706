package repository

import (
	"testing"
	"time"

	"github.com/prostore-go/internal/models"
)

func TestDashboardCountsAndTotalSales(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDashboardRepository(db)

	if err := db.Create(&models.User{Name: "u1", Email: "u1@example.com", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if err := db.Create(&models.Product{Name: "p", Slug: "p", Price: money(t, "10.00")}).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	orderRepo := NewOrderRepository(db)
	createTestOrder(t, orderRepo, 1, "33.00")
	createTestOrder(t, orderRepo, 1, "67.00")

	counts, err := repo.GetCounts()
	if err != nil {
		t.Fatalf("get counts failed: %v", err)
	}
	if counts.OrdersCount != 2 || counts.ProductsCount != 1 || counts.UsersCount != 1 {
		t.Fatalf("counts mismatch: %+v", counts)
	}

	total, err := repo.GetTotalSales()
	if err != nil {
		t.Fatalf("total sales failed: %v", err)
	}
	if total != 100 {
		t.Fatalf("total sales want 100 got %v", total)
	}
}

func TestDashboardMonthlySalesBuckets(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDashboardRepository(db)
	orderRepo := NewOrderRepository(db)

	first := createTestOrder(t, orderRepo, 1, "50.00")
	second := createTestOrder(t, orderRepo, 1, "25.00")

	jan := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	if err := orderRepo.UpdateFields(first.ID, map[string]interface{}{"created_at": jan}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := orderRepo.UpdateFields(second.ID, map[string]interface{}{"created_at": feb}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	rows, err := repo.GetMonthlySales()
	if err != nil {
		t.Fatalf("monthly sales failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 month buckets got %d", len(rows))
	}
	if rows[0].Month != "01/24" || rows[0].TotalSales != 50 {
		t.Fatalf("january bucket mismatch: %+v", rows[0])
	}
	if rows[1].Month != "02/24" || rows[1].TotalSales != 25 {
		t.Fatalf("february bucket mismatch: %+v", rows[1])
	}
}

func TestDashboardLatestOrdersLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDashboardRepository(db)
	orderRepo := NewOrderRepository(db)
	for i := 0; i < 8; i++ {
		createTestOrder(t, orderRepo, 1, "10.00")
	}

	orders, err := repo.GetLatestOrders(6)
	if err != nil {
		t.Fatalf("latest orders failed: %v", err)
	}
	if len(orders) != 6 {
		t.Fatalf("want 6 latest orders got %d", len(orders))
	}
}
