package pricing

import (
	"testing"

	"github.com/prostore-go/internal/models"
)

func mustMoney(t *testing.T, s string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(s)
	if err != nil {
		t.Fatalf("parse money %q: %v", s, err)
	}
	return m
}

func assertResult(t *testing.T, got Result, items, shipping, tax, total string) {
	t.Helper()
	if got.ItemsPrice.String() != items {
		t.Fatalf("items price = %s, want %s", got.ItemsPrice, items)
	}
	if got.ShippingPrice.String() != shipping {
		t.Fatalf("shipping price = %s, want %s", got.ShippingPrice, shipping)
	}
	if got.TaxPrice.String() != tax {
		t.Fatalf("tax price = %s, want %s", got.TaxPrice, tax)
	}
	if got.TotalPrice.String() != total {
		t.Fatalf("total price = %s, want %s", got.TotalPrice, total)
	}
}

func TestComputeFreeShippingAboveThreshold(t *testing.T) {
	got := Compute(DefaultRule(), []Line{
		{Price: mustMoney(t, "60.00"), Quantity: 2},
	})
	assertResult(t, got, "120.00", "0.00", "18.00", "138.00")
}

func TestComputeFlatShippingBelowThreshold(t *testing.T) {
	got := Compute(DefaultRule(), []Line{
		{Price: mustMoney(t, "20.00"), Quantity: 1},
	})
	assertResult(t, got, "20.00", "10.00", "3.00", "33.00")
}

func TestComputeThresholdIsExclusive(t *testing.T) {
	// 恰好等于门槛时仍收固定运费
	got := Compute(DefaultRule(), []Line{
		{Price: mustMoney(t, "100.00"), Quantity: 1},
	})
	assertResult(t, got, "100.00", "10.00", "15.00", "125.00")

	// 超过一分钱即免运费
	got = Compute(DefaultRule(), []Line{
		{Price: mustMoney(t, "100.01"), Quantity: 1},
	})
	assertResult(t, got, "100.01", "0.00", "15.00", "115.01")
}

func TestComputeEmptyLines(t *testing.T) {
	got := Compute(DefaultRule(), nil)
	assertResult(t, got, "0.00", "10.00", "0.00", "10.00")
}

func TestComputeRoundsHalfUp(t *testing.T) {
	// 税费舍入：10.02 × 0.15 = 1.503 → 1.50
	got := Compute(DefaultRule(), []Line{
		{Price: mustMoney(t, "3.34"), Quantity: 3},
	})
	assertResult(t, got, "10.02", "10.00", "1.50", "21.52")

	// 税费舍入：33.33 × 0.15 = 4.9995 → 5.00
	got = Compute(DefaultRule(), []Line{
		{Price: mustMoney(t, "33.33"), Quantity: 1},
	})
	assertResult(t, got, "33.33", "10.00", "5.00", "48.33")
}

func TestComputeMultipleLines(t *testing.T) {
	got := Compute(DefaultRule(), []Line{
		{Price: mustMoney(t, "49.99"), Quantity: 1},
		{Price: mustMoney(t, "25.50"), Quantity: 2},
	})
	// 49.99 + 51.00 = 100.99 > 100 → 免运费；税 15.15
	assertResult(t, got, "100.99", "0.00", "15.15", "116.14")
}

func TestRuleFromStrings(t *testing.T) {
	rule := RuleFromStrings("50", "5", "0.10")
	got := Compute(rule, []Line{
		{Price: mustMoney(t, "40.00"), Quantity: 1},
	})
	assertResult(t, got, "40.00", "5.00", "4.00", "49.00")

	// 非法配置回退默认
	rule = RuleFromStrings("", "bad", "")
	got = Compute(rule, []Line{
		{Price: mustMoney(t, "20.00"), Quantity: 1},
	})
	assertResult(t, got, "20.00", "10.00", "3.00", "33.00")
}

func TestComputeCart(t *testing.T) {
	items := []models.CartItem{
		{Price: mustMoney(t, "60.00"), Quantity: 2},
	}
	got := ComputeCart(DefaultRule(), items)
	assertResult(t, got, "120.00", "0.00", "18.00", "138.00")
}
