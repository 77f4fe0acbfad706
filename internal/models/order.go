package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// PaymentResult 网关支付结果快照，仅由支付对账流程写入
type PaymentResult struct {
	ID           string `json:"id"`            // 网关交易ID
	Status       string `json:"status"`        // 网关状态
	EmailAddress string `json:"email_address"` // 付款人邮箱
	PricePaid    string `json:"price_paid"`    // 实际捕获金额
}

// Value 用于数据库写入
func (p PaymentResult) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan 用于数据库读取
func (p *PaymentResult) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, p)
}

// Order 订单表：下单时从购物车与用户档案快照而来，订单项创建后不可变。
// 不变式：total_price == items_price + shipping_price + tax_price；
// is_paid 仅允许 false→true 一次。
type Order struct {
	ID              uint            `gorm:"primarykey" json:"id"`                                         // 主键
	UserID          uint            `gorm:"index;not null" json:"user_id"`                                // 用户ID
	ShippingAddress ShippingAddress `gorm:"type:json;not null" json:"shipping_address"`                   // 收货地址快照
	PaymentMethod   string          `gorm:"not null" json:"payment_method"`                               // 支付方式
	ItemsPrice      Money           `gorm:"type:decimal(20,2);not null;default:0" json:"items_price"`     // 商品小计
	ShippingPrice   Money           `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_price"`  // 运费
	TaxPrice        Money           `gorm:"type:decimal(20,2);not null;default:0" json:"tax_price"`       // 税费
	TotalPrice      Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`     // 总计
	IsPaid          bool            `gorm:"not null;default:false;index" json:"is_paid"`                  // 是否已支付
	PaidAt          *time.Time      `gorm:"index" json:"paid_at"`                                         // 支付时间
	IsDelivered     bool            `gorm:"not null;default:false" json:"is_delivered"`                   // 是否已发货
	DeliveredAt     *time.Time      `json:"delivered_at"`                                                 // 发货时间
	PaymentResult   *PaymentResult  `gorm:"type:json" json:"payment_result,omitempty"`                    // 网关支付结果
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt       time.Time       `gorm:"index" json:"updated_at"`                                      // 更新时间
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`                                               // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`   // 下单用户
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
