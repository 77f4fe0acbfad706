package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// ShippingAddress 收货地址快照
type ShippingAddress struct {
	FullName      string `json:"full_name"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Country       string `json:"country"`
}

// Value 用于数据库写入
func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan 用于数据库读取
func (a *ShippingAddress) Scan(value interface{}) error {
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
	return json.Unmarshal(bytes, a)
}

// IsComplete 判断地址是否填写完整
func (a *ShippingAddress) IsComplete() bool {
	return a != nil && a.FullName != "" && a.StreetAddress != "" && a.City != "" && a.PostalCode != "" && a.Country != ""
}

// User 用户表
type User struct {
	ID            uint             `gorm:"primarykey" json:"id"`                       // 主键
	Name          string           `gorm:"not null;default:''" json:"name"`            // 昵称
	Email         string           `gorm:"uniqueIndex;not null" json:"email"`          // 邮箱
	PasswordHash  string           `gorm:"not null" json:"-"`                          // 密码哈希（不返回给前端）
	Role          string           `gorm:"not null;default:'user';index" json:"role"`  // 角色（user/admin）
	Address       *ShippingAddress `gorm:"type:json" json:"address,omitempty"`         // 收货地址
	PaymentMethod string           `gorm:"default:''" json:"payment_method,omitempty"` // 偏好支付方式
	LastLoginAt   *time.Time       `json:"last_login_at"`                              // 最后登录时间
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`                    // 创建时间
	UpdatedAt     time.Time        `gorm:"index" json:"updated_at"`                    // 更新时间
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`                             // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
