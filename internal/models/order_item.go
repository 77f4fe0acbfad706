package models

import (
	"time"
)

// OrderItem 订单项表：下单时由购物车项快照生成，创建后不再变更
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	OrderID   uint      `gorm:"uniqueIndex:idx_order_product;not null" json:"order_id"`   // 订单ID
	ProductID uint      `gorm:"uniqueIndex:idx_order_product;not null" json:"product_id"` // 商品ID
	Name      string    `gorm:"not null" json:"name"`                                // 商品名称快照
	Slug      string    `gorm:"not null" json:"slug"`                                // 商品slug快照
	Image     string    `json:"image"`                                               // 商品主图快照
	Price     Money     `gorm:"type:decimal(20,2);not null" json:"price"`            // 下单单价快照
	Quantity  int       `gorm:"not null" json:"quantity"`                            // 数量
	CreatedAt time.Time `json:"created_at"`                                          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
