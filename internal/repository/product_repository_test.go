package repository

import (
	"testing"

	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/models"

	"github.com/shopspring/decimal"
)

func createTestProduct(t *testing.T, repo *GormProductRepository, slug, category, price string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        slug,
		Slug:        slug,
		Category:    category,
		Brand:       "TestBrand",
		Description: "test product",
		Price:       money(t, price),
		Stock:       stock,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestProductListFiltersAndSort(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	createTestProduct(t, repo, "polo-shirt", "Shirts", "25.00", 5)
	createTestProduct(t, repo, "denim-jacket", "Jackets", "80.00", 3)
	createTestProduct(t, repo, "wool-jacket", "Jackets", "120.00", 0)

	products, total, err := repo.List(ProductListFilter{
		Page: 1, PageSize: 10, Category: "Jackets", Sort: constants.ProductSortLowest,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("want 2 jackets, got total=%d len=%d", total, len(products))
	}
	if products[0].Slug != "denim-jacket" {
		t.Fatalf("lowest price first, got %s", products[0].Slug)
	}

	products, total, err = repo.List(ProductListFilter{
		Page: 1, PageSize: 10, Query: "jacket", PriceMin: "100", PriceMax: "200",
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || products[0].Slug != "wool-jacket" {
		t.Fatalf("price band filter mismatch: total=%d", total)
	}

	products, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, InStock: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 {
		t.Fatalf("want 2 in-stock products, got %d", total)
	}
}

func TestProductListOutOfRangePageReturnsEmpty(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	createTestProduct(t, repo, "single-item", "Misc", "10.00", 1)

	products, total, err := repo.List(ProductListFilter{Page: 5, PageSize: 4})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 {
		t.Fatalf("total want 1 got %d", total)
	}
	if len(products) != 0 {
		t.Fatalf("out-of-range page should be empty, got %d rows", len(products))
	}
}

func TestProductSlugExists(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	product := createTestProduct(t, repo, "unique-slug", "Misc", "10.00", 1)

	exists, err := repo.SlugExists("unique-slug", 0)
	if err != nil {
		t.Fatalf("slug exists failed: %v", err)
	}
	if !exists {
		t.Fatalf("slug should exist")
	}

	exists, err = repo.SlugExists("unique-slug", product.ID)
	if err != nil {
		t.Fatalf("slug exists failed: %v", err)
	}
	if exists {
		t.Fatalf("slug excluded by own id should not count")
	}
}

func TestProductAdjustStock(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	product := createTestProduct(t, repo, "stocked", "Misc", "10.00", 10)

	if err := repo.AdjustStock(product.ID, -3); err != nil {
		t.Fatalf("adjust stock failed: %v", err)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil || got == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if got.Stock != 7 {
		t.Fatalf("stock want 7 got %d", got.Stock)
	}
}

func TestProductUpdateRating(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	product := createTestProduct(t, repo, "rated", "Misc", "10.00", 1)

	if err := repo.UpdateRating(product.ID, decimal.NewFromFloat(4.5), 2); err != nil {
		t.Fatalf("update rating failed: %v", err)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil || got == nil {
		t.Fatalf("get product failed: %v", err)
	}
	if !got.Rating.Equal(decimal.NewFromFloat(4.5)) || got.NumReviews != 2 {
		t.Fatalf("rating summary mismatch: %s / %d", got.Rating, got.NumReviews)
	}
}

func TestProductListCategories(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	createTestProduct(t, repo, "a-shirt", "Shirts", "10.00", 1)
	createTestProduct(t, repo, "b-shirt", "Shirts", "12.00", 1)
	createTestProduct(t, repo, "a-jacket", "Jackets", "50.00", 1)

	rows, err := repo.ListCategories()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 categories got %d", len(rows))
	}
	if rows[0].Category != "Jackets" || rows[0].Count != 1 {
		t.Fatalf("first category mismatch: %+v", rows[0])
	}
	if rows[1].Category != "Shirts" || rows[1].Count != 2 {
		t.Fatalf("second category mismatch: %+v", rows[1])
	}
}
