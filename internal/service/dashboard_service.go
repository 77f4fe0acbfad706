package service

import (
	"github.com/prostore-go/internal/constants"
	"github.com/prostore-go/internal/models"
	"github.com/prostore-go/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardService 管理端概览统计服务
type DashboardService struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardService 创建概览统计服务
func NewDashboardService(dashboardRepo repository.DashboardRepository) *DashboardService {
	return &DashboardService{dashboardRepo: dashboardRepo}
}

// MonthlySales 月度销售额
type MonthlySales struct {
	Month      string       `json:"month"`
	TotalSales models.Money `json:"total_sales"`
}

// LatestSale 最近订单摘要
type LatestSale struct {
	OrderID    uint         `json:"order_id"`
	BuyerName  string       `json:"buyer_name"`
	TotalPrice models.Money `json:"total_price"`
	CreatedAt  string       `json:"created_at"`
}

// OrderSummary 概览数据
type OrderSummary struct {
	OrdersCount   int64          `json:"orders_count"`
	ProductsCount int64          `json:"products_count"`
	UsersCount    int64          `json:"users_count"`
	TotalSales    models.Money   `json:"total_sales"`
	SalesData     []MonthlySales `json:"sales_data"`
	LatestSales   []LatestSale   `json:"latest_sales"`
}

// GetOrderSummary 获取订单、商品、用户与销售额概览
func (s *DashboardService) GetOrderSummary() (*OrderSummary, error) {
	counts, err := s.dashboardRepo.GetCounts()
	if err != nil {
		return nil, err
	}
	totalSales, err := s.dashboardRepo.GetTotalSales()
	if err != nil {
		return nil, err
	}
	monthlyRows, err := s.dashboardRepo.GetMonthlySales()
	if err != nil {
		return nil, err
	}
	latestOrders, err := s.dashboardRepo.GetLatestOrders(constants.LatestSalesLimit)
	if err != nil {
		return nil, err
	}

	salesData := make([]MonthlySales, 0, len(monthlyRows))
	for _, row := range monthlyRows {
		salesData = append(salesData, MonthlySales{
			Month:      row.Month,
			TotalSales: models.NewMoneyFromDecimal(decimal.NewFromFloat(row.TotalSales).Round(2)),
		})
	}

	latestSales := make([]LatestSale, 0, len(latestOrders))
	for _, order := range latestOrders {
		buyerName := "Deleted User"
		if order.User != nil {
			buyerName = order.User.Name
		}
		latestSales = append(latestSales, LatestSale{
			OrderID:    order.ID,
			BuyerName:  buyerName,
			TotalPrice: order.TotalPrice,
			CreatedAt:  order.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return &OrderSummary{
		OrdersCount:   counts.OrdersCount,
		ProductsCount: counts.ProductsCount,
		UsersCount:    counts.UsersCount,
		TotalSales:    models.NewMoneyFromDecimal(decimal.NewFromFloat(totalSales).Round(2)),
		SalesData:     salesData,
		LatestSales:   latestSales,
	}, nil
}
