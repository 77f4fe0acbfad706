package service

import (
	"strings"

	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReviewService 商品评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// UpsertReviewInput 提交评价输入
type UpsertReviewInput struct {
	UserID      uint
	ProductID   uint
	Rating      int
	Title       string
	Description string
}

// UpsertReview 创建或覆盖用户对商品的评价，并在同一事务内重算商品评分汇总
func (s *ReviewService) UpsertReview(input UpsertReviewInput) (*models.Review, error) {
	if input.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrReviewInvalid
	}
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, ErrReviewInvalid
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	verified, err := s.hasPaidOrderWithProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}

	var review *models.Review
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		existing, err := reviewRepo.GetByUserAndProduct(input.UserID, input.ProductID)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Rating = input.Rating
			existing.Title = title
			existing.Description = description
			existing.IsVerifiedPurchase = verified
			if err := reviewRepo.Update(existing); err != nil {
				return err
			}
			review = existing
		} else {
			review = &models.Review{
				UserID:             input.UserID,
				ProductID:          input.ProductID,
				Rating:             input.Rating,
				Title:              title,
				Description:        description,
				IsVerifiedPurchase: verified,
			}
			if err := reviewRepo.Create(review); err != nil {
				return err
			}
		}

		summary, err := reviewRepo.Summarize(input.ProductID)
		if err != nil {
			return err
		}
		rating := decimal.NewFromFloat(summary.Average).Round(2)
		return productRepo.UpdateRating(input.ProductID, rating, int(summary.Count))
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListByProduct 商品评价分页列表
func (s *ReviewService) ListByProduct(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.ListByProduct(filter)
}

// GetMyReview 获取用户对商品的评价
func (s *ReviewService) GetMyReview(userID, productID uint) (*models.Review, error) {
	if userID == 0 {
		return nil, ErrUnauthenticated
	}
	return s.reviewRepo.GetByUserAndProduct(userID, productID)
}

// hasPaidOrderWithProduct 判断用户是否存在包含该商品的已支付订单
func (s *ReviewService) hasPaidOrderWithProduct(userID, productID uint) (bool, error) {
	var count int64
	err := models.DB.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND orders.is_paid = ? AND order_items.product_id = ?", userID, true, productID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
