package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart 购物车表：每个身份（登录用户或匿名会话）至多一个活跃购物车，
// 聚合价格字段为派生值，每次条目变更后整体重算写回。
type Cart struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                         // 主键
	UserID        uint           `gorm:"index" json:"user_id,omitempty"`                               // 用户ID（匿名购物车为 0）
	SessionCartID string         `gorm:"index;not null" json:"session_cart_id"`                        // 匿名会话标识
	ItemsPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`     // 商品小计
	ShippingPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`  // 运费
	TaxPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`       // 税费
	TotalPrice    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`     // 总计
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车条目
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车条目表。
// 条目移除走物理删除：(cart_id, product_id) 是唯一索引，
// 留下软删除墓碑会挡住同商品的再次加购。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	CartID    uint      `gorm:"index;not null;uniqueIndex:idx_cart_product" json:"cart_id"`    // 购物车ID
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`       // 商品ID
	Name      string    `gorm:"not null" json:"name"`                                // 商品名称快照
	Slug      string    `gorm:"not null" json:"slug"`                                // 商品 slug 快照
	Image     string    `gorm:"default:''" json:"image"`                             // 商品主图快照
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`  // 单价快照
	Quantity  int       `gorm:"not null" json:"quantity"`                            // 数量
	CreatedAt time.Time `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                             // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
