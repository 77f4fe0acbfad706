package main

import (
	"github.com/prostore-go/internal/config"
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/logger"
	"github.com/prostore-go/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			Name:        "Polo Sporting Stretch Shirt",
			Slug:        "polo-sporting-stretch-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Polo",
			Description: "Classic Polo style with modern comfort",
			Images: models.StringArray([]string{
				"/images/sample-products/p1-1.jpg",
				"/images/sample-products/p1-2.jpg",
			}),
			Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(59.99)),
			Stock:      5,
			IsFeatured: true,
			Banner:     "/images/banner-1.jpg",
		},
		{
			Name:        "Brooks Brothers Long Sleeved Shirt",
			Slug:        "brooks-brothers-long-sleeved-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Brooks Brothers",
			Description: "Timeless style and premium comfort",
			Images: models.StringArray([]string{
				"/images/sample-products/p2-1.jpg",
				"/images/sample-products/p2-2.jpg",
			}),
			Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(85.9)),
			Stock:      10,
			IsFeatured: true,
			Banner:     "/images/banner-2.jpg",
		},
		{
			Name:        "Tommy Hilfiger Classic Fit Dress Shirt",
			Slug:        "tommy-hilfiger-classic-fit-dress-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Tommy Hilfiger",
			Description: "A perfect blend of fashion and comfort",
			Images: models.StringArray([]string{
				"/images/sample-products/p3-1.jpg",
				"/images/sample-products/p3-2.jpg",
			}),
			Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(99.95)),
			Stock: 0,
		},
		{
			Name:        "Calvin Klein Slim Fit Stretch Shirt",
			Slug:        "calvin-klein-slim-fit-stretch-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Calvin Klein",
			Description: "Streamlined design with flexible stretch fabric",
			Images: models.StringArray([]string{
				"/images/sample-products/p4-1.jpg",
				"/images/sample-products/p4-2.jpg",
			}),
			Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(39.95)),
			Stock: 10,
		},
		{
			Name:        "Polo Ralph Lauren Oxford Shirt",
			Slug:        "polo-ralph-lauren-oxford-shirt",
			Category:    "Men's Dress Shirts",
			Brand:       "Polo",
			Description: "Iconic Polo design with refined oxford fabric",
			Images: models.StringArray([]string{
				"/images/sample-products/p5-1.jpg",
				"/images/sample-products/p5-2.jpg",
			}),
			Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(79.99)),
			Stock: 6,
		},
		{
			Name:        "Polo Classic Pink Hoodie",
			Slug:        "polo-classic-pink-hoodie",
			Category:    "Men's Sweatshirts",
			Brand:       "Polo",
			Description: "Soft, stylish, and perfect for laid-back days",
			Images: models.StringArray([]string{
				"/images/sample-products/p6-1.jpg",
				"/images/sample-products/p6-2.jpg",
			}),
			Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(99.99)),
			Stock: 8,
		},
	}

	for i := range products {
		product := products[i]
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", product.Slug)
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			continue
		}
		stdLog.Printf("Created product: %s", product.Slug)
	}

	users := []struct {
		Name     string
		Email    string
		Password string
		Role     string
	}{
		{Name: "John", Email: "admin@example.com", Password: "123456", Role: constants.RoleAdmin},
		{Name: "Jane", Email: "user@example.com", Password: "123456", Role: constants.RoleUser},
	}

	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", u.Email)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", u.Email, err)
			continue
		}
		user := models.User{
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: string(hash),
			Role:         u.Role,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", u.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s (%s)", u.Email, u.Role)
	}

	stdLog.Printf("Seed completed")
}
