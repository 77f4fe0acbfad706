package repository

import (
	"github.com/prostore-go/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 仪表盘聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type DashboardRepository interface {
	GetCounts() (DashboardCountsRow, error)
	GetTotalSales() (float64, error)
	GetMonthlySales() ([]MonthlySalesRow, error)
	GetLatestOrders(limit int) ([]models.Order, error)
}

// DashboardCountsRow 仪表盘计数统计
type DashboardCountsRow struct {
	OrdersCount   int64
	ProductsCount int64
	UsersCount    int64
}

// MonthlySalesRow 月度销售额，Month 为 MM/YY 格式
type MonthlySalesRow struct {
	Month      string
	TotalSales float64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetCounts 获取订单、商品、用户总数
func (r *GormDashboardRepository) GetCounts() (DashboardCountsRow, error) {
	result := DashboardCountsRow{}
	if err := r.db.Model(&models.Order{}).Count(&result.OrdersCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.Product{}).Count(&result.ProductsCount).Error; err != nil {
		return result, err
	}
	if err := r.db.Model(&models.User{}).Count(&result.UsersCount).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetTotalSales 获取全部订单的总销售额
func (r *GormDashboardRepository) GetTotalSales() (float64, error) {
	var total float64
	if err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// GetMonthlySales 按月聚合销售额
func (r *GormDashboardRepository) GetMonthlySales() ([]MonthlySalesRow, error) {
	monthExpr := monthBucketExpr(r.db, "created_at")
	var rows []MonthlySalesRow
	if err := r.db.Model(&models.Order{}).
		Select(monthExpr + " as month, COALESCE(SUM(total_price), 0) as total_sales").
		Group(monthExpr).
		Order("month asc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetLatestOrders 获取最近订单（含下单用户）
func (r *GormDashboardRepository) GetLatestOrders(limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("User").
		Order("created_at desc").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
