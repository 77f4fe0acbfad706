package constants

// 用户角色常量（闭集，权限判断只接受这两个值）
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 支付方式常量
const (
	PaymentMethodPaypal         = "PayPal"
	PaymentMethodStripe         = "Stripe"
	PaymentMethodCashOnDelivery = "CashOnDelivery"
)

// PaymentMethods 允许的支付方式集合
var PaymentMethods = []string{
	PaymentMethodPaypal,
	PaymentMethodStripe,
	PaymentMethodCashOnDelivery,
}

// IsValidPaymentMethod 判断支付方式是否在允许集合内
func IsValidPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}

// 分页与列表常量
const (
	DefaultPageSize     = 4
	LatestProductsLimit = 4
	LatestSalesLimit    = 6
)

// 商品排序常量
const (
	ProductSortNewest  = "newest"
	ProductSortLowest  = "lowest"
	ProductSortHighest = "highest"
	ProductSortRating  = "rating"
)

// 异步任务类型常量
const (
	TaskOrderExpire      = "order:expire"
	TaskOrderExpireSweep = "order:expire_sweep"
	TaskOrderPaidEmail   = "order:paid_email"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 会话购物车请求头
const SessionCartHeader = "X-Session-Cart-Id"
