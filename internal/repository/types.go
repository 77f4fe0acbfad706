package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Query      string // 名称关键字
	Category   string
	PriceMin   string // 价格下限（含），十进制字符串
	PriceMax   string // 价格上限（含），十进制字符串
	RatingMin  string // 最低评分（含），十进制字符串
	Sort       string // newest / lowest / highest / rating
	InStock    bool   // 仅返回有库存商品
	FeaturedOnly bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	UserName    string // 下单人姓名关键字，管理端列表用
	IsPaid      *bool
	IsDelivered *bool
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
}
