package service

import (
	"strings"
	"testing"

	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/pricing"
	"github.com/prostore-go/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB 为每个测试创建独立内存库并接管 models.DB
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
	return db
}

func money(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func seedProduct(t *testing.T, db *gorm.DB, name, slug, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Slug:     slug,
		Category: "Shoes",
		Brand:    "Acme",
		Images:   models.StringArray{"/images/" + slug + ".jpg"},
		Price:    money(t, price),
		Stock:    stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func seedUser(t *testing.T, db *gorm.DB, email string, withAddress bool, paymentMethod string) *models.User {
	t.Helper()
	user := &models.User{
		Name:          "Test Buyer",
		Email:         email,
		PasswordHash:  "x",
		Role:          "user",
		PaymentMethod: paymentMethod,
	}
	if withAddress {
		user.Address = &models.ShippingAddress{
			FullName:      "Test Buyer",
			StreetAddress: "1 Main St",
			City:          "Springfield",
			PostalCode:    "12345",
			Country:       "US",
		}
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return user
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewProductRepository(db),
		pricing.DefaultRule(),
	)
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		nil,
		0,
	)
}
