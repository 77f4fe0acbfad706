package models

import (
	"time"

	"gorm.io/gorm"
)

// Review 商品评价表：每个用户对每个商品至多一条，后写覆盖
type Review struct {
	ID                 uint           `gorm:"primarykey" json:"id"`                                       // 主键
	UserID             uint           `gorm:"uniqueIndex:idx_user_product;not null" json:"user_id"`       // 用户ID
	ProductID          uint           `gorm:"uniqueIndex:idx_user_product;not null" json:"product_id"`    // 商品ID
	Rating             int            `gorm:"not null" json:"rating"`                                     // 评分 1-5
	Title              string         `gorm:"not null" json:"title"`                                      // 标题
	Description        string         `gorm:"type:text;not null" json:"description"`                      // 内容
	IsVerifiedPurchase bool           `gorm:"not null;default:false" json:"is_verified_purchase"`         // 是否已购买
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt          time.Time      `json:"updated_at"`                                                 // 更新时间
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 评价用户
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
