package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          uint            `gorm:"primarykey" json:"id"`                                   // 主键
	Name        string          `gorm:"not null;index" json:"name"`                             // 商品名称
	Slug        string          `gorm:"uniqueIndex;not null" json:"slug"`                       // 唯一标识
	Category    string          `gorm:"not null;index" json:"category"`                         // 分类
	Brand       string          `gorm:"default:''" json:"brand"`                                // 品牌
	Description string          `gorm:"type:text" json:"description"`                           // 描述
	Images      StringArray     `gorm:"type:json" json:"images"`                                // 图片数组
	Price       Money           `gorm:"type:decimal(20,2);not null;default:0" json:"price"`     // 价格
	Stock       int             `gorm:"not null;default:0" json:"stock"`                        // 库存
	Rating      decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`     // 平均评分
	NumReviews  int             `gorm:"not null;default:0" json:"num_reviews"`                  // 评价数量
	IsFeatured  bool            `gorm:"default:false;index" json:"is_featured"`                 // 是否精选
	Banner      string          `gorm:"default:''" json:"banner,omitempty"`                     // 精选横幅图
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt   time.Time       `json:"updated_at"`                                             // 更新时间
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`                                         // 软删除时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
