package repository

import (
	"testing"

	"github.com/prostore-go/internal/models"
)

func TestCartUpsertItemCreatesThenUpdates(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	cart := &models.Cart{SessionCartID: "sess-1"}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: 7,
		Name:      "Polo",
		Slug:      "polo",
		Price:     money(t, "25.00"),
		Quantity:  1,
	}
	if err := repo.UpsertItem(item); err != nil {
		t.Fatalf("upsert create failed: %v", err)
	}

	item.Quantity = 3
	if err := repo.UpsertItem(item); err != nil {
		t.Fatalf("upsert update failed: %v", err)
	}

	got, err := repo.GetBySessionCart("sess-1")
	if err != nil || got == nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("want 1 item got %d", len(got.Items))
	}
	if got.Items[0].Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", got.Items[0].Quantity)
	}
}

func TestCartDeleteItemAndClear(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	cart := &models.Cart{UserID: 42}
	if err := repo.Create(cart); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	for _, pid := range []uint{1, 2} {
		if err := repo.UpsertItem(&models.CartItem{
			CartID: cart.ID, ProductID: pid, Name: "p", Slug: "p",
			Price: money(t, "5.00"), Quantity: 1,
		}); err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	if err := repo.DeleteItem(cart.ID, 1); err != nil {
		t.Fatalf("delete item failed: %v", err)
	}
	got, err := repo.GetByUser(42)
	if err != nil || got == nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != 2 {
		t.Fatalf("delete item mismatch: %+v", got.Items)
	}

	if err := repo.ClearItems(cart.ID); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	got, err = repo.GetByUser(42)
	if err != nil || got == nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("cart should be empty after clear, got %d", len(got.Items))
	}
}

func TestCartGetBySessionCartMissingReturnsNil(t *testing.T) {
	repo := NewCartRepository(setupTestDB(t))
	got, err := repo.GetBySessionCart("missing")
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if got != nil {
		t.Fatalf("missing cart should be nil")
	}
}
