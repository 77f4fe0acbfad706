package service

import (
	"errors"
	"testing"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"gorm.io/gorm"
)

func newReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		repository.NewReviewRepository(db),
		repository.NewProductRepository(db),
	)
}

func TestReviewServiceUpsertValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	user := seedUser(t, db, "rev@example.com", false, "")
	product := seedProduct(t, db, "Kettle", "kettle", "35.00", 5)

	cases := []UpsertReviewInput{
		{UserID: 0, ProductID: product.ID, Rating: 4, Title: "ok", Description: "fine"},
		{UserID: user.ID, ProductID: product.ID, Rating: 0, Title: "ok", Description: "fine"},
		{UserID: user.ID, ProductID: product.ID, Rating: 6, Title: "ok", Description: "fine"},
		{UserID: user.ID, ProductID: product.ID, Rating: 4, Title: "", Description: "fine"},
		{UserID: user.ID, ProductID: product.ID, Rating: 4, Title: "ok", Description: "  "},
	}
	for i, input := range cases {
		_, err := svc.UpsertReview(input)
		if err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
		if input.UserID == 0 && !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("case %d: expected ErrUnauthenticated, got %v", i, err)
		}
		if input.UserID != 0 && !errors.Is(err, ErrReviewInvalid) {
			t.Fatalf("case %d: expected ErrReviewInvalid, got %v", i, err)
		}
	}

	if _, err := svc.UpsertReview(UpsertReviewInput{
		UserID: user.ID, ProductID: 999, Rating: 4, Title: "ok", Description: "fine",
	}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestReviewServiceUpsertRecomputesProductRating(t *testing.T) {
	db := setupTestDB(t)
	svc := newReviewService(db)
	alice := seedUser(t, db, "alice-r@example.com", false, "")
	bob := seedUser(t, db, "bob-r@example.com", false, "")
	product := seedProduct(t, db, "Blender", "blender", "49.00", 5)

	if _, err := svc.UpsertReview(UpsertReviewInput{
		UserID: alice.ID, ProductID: product.ID, Rating: 5, Title: "Great", Description: "Works well",
	}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := svc.UpsertReview(UpsertReviewInput{
		UserID: bob.ID, ProductID: product.ID, Rating: 2, Title: "Meh", Description: "Too loud",
	}); err != nil {
		t.Fatalf("second review failed: %v", err)
	}

	var fresh models.Product
	if err := db.First(&fresh, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if fresh.NumReviews != 2 {
		t.Fatalf("num reviews = %d, want 2", fresh.NumReviews)
	}
	if got := fresh.Rating.String(); got != "3.5" {
		t.Fatalf("rating = %s, want 3.5", got)
	}

	// 同一用户重复提交为覆盖而非新增
	if _, err := svc.UpsertReview(UpsertReviewInput{
		UserID: bob.ID, ProductID: product.ID, Rating: 4, Title: "Better", Description: "Got used to it",
	}); err != nil {
		t.Fatalf("review overwrite failed: %v", err)
	}
	if err := db.First(&fresh, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if fresh.NumReviews != 2 {
		t.Fatalf("num reviews = %d after overwrite, want 2", fresh.NumReviews)
	}
	if got := fresh.Rating.String(); got != "4.5" {
		t.Fatalf("rating = %s, want 4.5", got)
	}
}

func TestReviewServiceVerifiedPurchaseFlag(t *testing.T) {
	db := setupTestDB(t)
	reviewSvc := newReviewService(db)
	cartSvc := newCartService(db)
	product := seedProduct(t, db, "Toaster", "toaster", "28.00", 10)

	buyer := seedUser(t, db, "verified@example.com", true, constants.PaymentMethodCashOnDelivery)
	if _, err := cartSvc.AddItem(Identity{UserID: buyer.ID}, product.ID, 1); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	order, err := newOrderService(db).CreateOrder(buyer.ID)
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if err := newPaymentService(db, nil, nil).MarkOrderAsPaid(order.ID, nil); err != nil {
		t.Fatalf("MarkOrderAsPaid failed: %v", err)
	}

	review, err := reviewSvc.UpsertReview(UpsertReviewInput{
		UserID: buyer.ID, ProductID: product.ID, Rating: 5, Title: "Crispy", Description: "Even browning",
	})
	if err != nil {
		t.Fatalf("UpsertReview failed: %v", err)
	}
	if !review.IsVerifiedPurchase {
		t.Fatalf("expected verified purchase flag for paid buyer")
	}

	// 未购买用户不带已购标记
	stranger := seedUser(t, db, "stranger@example.com", false, "")
	review, err = reviewSvc.UpsertReview(UpsertReviewInput{
		UserID: stranger.ID, ProductID: product.ID, Rating: 3, Title: "Fine", Description: "Looks nice",
	})
	if err != nil {
		t.Fatalf("UpsertReview failed: %v", err)
	}
	if review.IsVerifiedPurchase {
		t.Fatalf("unexpected verified flag for non-buyer")
	}
}
