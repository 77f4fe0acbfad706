package service

import (
	"errors"
	"testing"
)

func TestCartServiceAddItemCreatesCartAndComputesTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	product := seedProduct(t, db, "Running Shoes", "running-shoes", "60.00", 10)

	cart, err := svc.AddItem(Identity{SessionCartID: "sess-1"}, product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart items: %+v", cart.Items)
	}
	if got := cart.ItemsPrice.String(); got != "120.00" {
		t.Fatalf("items price = %s, want 120.00", got)
	}
	if !cart.ShippingPrice.IsZero() {
		t.Fatalf("shipping = %s, want 0 above free threshold", cart.ShippingPrice.String())
	}
	if got := cart.TaxPrice.String(); got != "18.00" {
		t.Fatalf("tax = %s, want 18.00", got)
	}
	if got := cart.TotalPrice.String(); got != "138.00" {
		t.Fatalf("total = %s, want 138.00", got)
	}
}

func TestCartServiceAddItemAccumulatesQuantity(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	product := seedProduct(t, db, "Cap", "cap", "20.00", 5)
	id := Identity{SessionCartID: "sess-acc"}

	if _, err := svc.AddItem(id, product.ID, 1); err != nil {
		t.Fatalf("first AddItem failed: %v", err)
	}
	cart, err := svc.AddItem(id, product.ID, 2)
	if err != nil {
		t.Fatalf("second AddItem failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("expected accumulated quantity 3, got %+v", cart.Items)
	}
	// 20 * 3 = 60，低于免运费门槛
	if got := cart.ShippingPrice.String(); got != "10.00" {
		t.Fatalf("shipping = %s, want 10.00", got)
	}
	if got := cart.TotalPrice.String(); got != "79.00" {
		t.Fatalf("total = %s, want 79.00", got)
	}
}

func TestCartServiceAddItemRejectsOverStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	product := seedProduct(t, db, "Scarf", "scarf", "15.00", 2)
	id := Identity{SessionCartID: "sess-stock"}

	if _, err := svc.AddItem(id, product.ID, 2); err != nil {
		t.Fatalf("AddItem within stock failed: %v", err)
	}
	if _, err := svc.AddItem(id, product.ID, 1); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	// 失败的追加不应改变已存在的购物车
	cart, err := svc.GetCart(id)
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("cart mutated after rejected add: %+v", cart.Items)
	}
}

func TestCartServiceAddItemUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)

	if _, err := svc.AddItem(Identity{SessionCartID: "sess-x"}, 999, 1); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestCartServiceRemoveItemDecrementsThenDeletes(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	product := seedProduct(t, db, "Socks", "socks", "5.00", 10)
	id := Identity{SessionCartID: "sess-rm"}

	if _, err := svc.AddItem(id, product.ID, 2); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	cart, err := svc.RemoveItem(id, product.ID)
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 1 {
		t.Fatalf("expected quantity 1 after decrement, got %+v", cart.Items)
	}

	cart, err = svc.RemoveItem(id, product.ID)
	if err != nil {
		t.Fatalf("second RemoveItem failed: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Items)
	}

	if _, err := svc.RemoveItem(id, product.ID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestCartServiceReAddAfterRemoveAndClear(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	product := seedProduct(t, db, "Belt", "belt", "25.00", 10)
	id := Identity{SessionCartID: "sess-readd"}

	if _, err := svc.AddItem(id, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if _, err := svc.RemoveItem(id, product.ID); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	// 移除后同商品必须能重新加购，不得被唯一索引残留挡住
	cart, err := svc.AddItem(id, product.ID, 2)
	if err != nil {
		t.Fatalf("AddItem after remove failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after re-add: %+v", cart.Items)
	}

	if err := svc.Clear(id); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	cart, err = svc.AddItem(id, product.ID, 3)
	if err != nil {
		t.Fatalf("AddItem after clear failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("unexpected cart after clear and re-add: %+v", cart.Items)
	}
}

func TestCartServiceGetCartMissingReturnsEmpty(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)

	cart, err := svc.GetCart(Identity{SessionCartID: "nope"})
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if cart.ID != 0 || len(cart.Items) != 0 {
		t.Fatalf("expected unsaved empty cart, got %+v", cart)
	}
	if !cart.TotalPrice.IsZero() {
		t.Fatalf("empty cart total = %s, want 0", cart.TotalPrice.String())
	}
}

func TestCartServiceMergeGuestCartTakesOver(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "merge@example.com", false, "")
	oldProduct := seedProduct(t, db, "Old Item", "old-item", "9.00", 5)
	newProduct := seedProduct(t, db, "New Item", "new-item", "30.00", 5)

	// 用户已有购物车
	if _, err := svc.AddItem(Identity{UserID: user.ID}, oldProduct.ID, 1); err != nil {
		t.Fatalf("seed user cart failed: %v", err)
	}
	// 匿名购物车
	if _, err := svc.AddItem(Identity{SessionCartID: "guest-1"}, newProduct.ID, 2); err != nil {
		t.Fatalf("seed guest cart failed: %v", err)
	}

	if err := svc.MergeGuestCart(user.ID, "guest-1"); err != nil {
		t.Fatalf("MergeGuestCart failed: %v", err)
	}

	cart, err := svc.GetCart(Identity{UserID: user.ID})
	if err != nil {
		t.Fatalf("GetCart after merge failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != newProduct.ID {
		t.Fatalf("expected guest cart to take over, got %+v", cart.Items)
	}
}

func TestCartServiceMergeGuestCartNoopWithoutGuestItems(t *testing.T) {
	db := setupTestDB(t)
	svc := newCartService(db)
	user := seedUser(t, db, "noop@example.com", false, "")
	product := seedProduct(t, db, "Keeper", "keeper", "12.00", 5)

	if _, err := svc.AddItem(Identity{UserID: user.ID}, product.ID, 1); err != nil {
		t.Fatalf("seed user cart failed: %v", err)
	}
	if err := svc.MergeGuestCart(user.ID, "missing-guest"); err != nil {
		t.Fatalf("MergeGuestCart failed: %v", err)
	}

	cart, err := svc.GetCart(Identity{UserID: user.ID})
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != product.ID {
		t.Fatalf("user cart should be untouched, got %+v", cart.Items)
	}
}
