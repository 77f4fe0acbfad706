// Package pricing 实现购物车与订单的统一计价规则。
package pricing

import (
	"github.com/prostore-go/internal/models"

	"github.com/shopspring/decimal"
)

// 默认计价规则：满 100（不含）免运费，否则固定运费 10，税率 15%
var (
	defaultFreeShippingThreshold = decimal.NewFromInt(100)
	defaultFlatShippingFee       = decimal.NewFromInt(10)
	defaultTaxRate               = decimal.NewFromFloat(0.15)
)

// Rule 计价规则
type Rule struct {
	FreeShippingThreshold decimal.Decimal // 商品小计严格大于该值时免运费
	FlatShippingFee       decimal.Decimal // 未达门槛时的固定运费
	TaxRate               decimal.Decimal // 按商品小计计税的税率
}

// DefaultRule 返回默认计价规则
func DefaultRule() Rule {
	return Rule{
		FreeShippingThreshold: defaultFreeShippingThreshold,
		FlatShippingFee:       defaultFlatShippingFee,
		TaxRate:               defaultTaxRate,
	}
}

// RuleFromStrings 从配置字符串构造计价规则，解析失败的项回退默认值
func RuleFromStrings(threshold, fee, rate string) Rule {
	r := DefaultRule()
	if d, err := decimal.NewFromString(threshold); err == nil {
		r.FreeShippingThreshold = d
	}
	if d, err := decimal.NewFromString(fee); err == nil {
		r.FlatShippingFee = d
	}
	if d, err := decimal.NewFromString(rate); err == nil {
		r.TaxRate = d
	}
	return r
}

// Line 参与计价的一行：单价与数量
type Line struct {
	Price    models.Money
	Quantity int
}

// Result 计价结果，满足 Total = Items + Shipping + Tax
type Result struct {
	ItemsPrice    models.Money
	ShippingPrice models.Money
	TaxPrice      models.Money
	TotalPrice    models.Money
}

// Compute 按规则对行集合计价。
// 商品小计为 Σ(单价×数量) 四舍五入到分；运费看小计是否严格超过门槛；
// 税费按小计乘税率再四舍五入到分；总计为三者之和。
func Compute(rule Rule, lines []Line) Result {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Price.Decimal.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	items := sum.Round(2)

	shipping := rule.FlatShippingFee
	if items.GreaterThan(rule.FreeShippingThreshold) {
		shipping = decimal.Zero
	}
	shipping = shipping.Round(2)

	tax := items.Mul(rule.TaxRate).Round(2)
	total := items.Add(shipping).Add(tax)

	return Result{
		ItemsPrice:    models.NewMoneyFromDecimal(items),
		ShippingPrice: models.NewMoneyFromDecimal(shipping),
		TaxPrice:      models.NewMoneyFromDecimal(tax),
		TotalPrice:    models.NewMoneyFromDecimal(total),
	}
}

// ComputeCart 对购物车项计价
func ComputeCart(rule Rule, items []models.CartItem) Result {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{Price: item.Price, Quantity: item.Quantity})
	}
	return Compute(rule, lines)
}
