// Package pricing holds the small amount of arithmetic the back office
// relies on: stock status thresholds, promotion discounts and order totals.
package pricing

import (
	"github.com/shopspring/decimal"
)

const (
	StatusInStock    = "in-stock"
	StatusLowStock   = "low-stock"
	StatusOutOfStock = "out-of-stock"

	DiscountFlat       = "flat"
	DiscountPercentage = "percentage"
)

// StockStatusFor derives the stock label from quantity and reorder threshold.
func StockStatusFor(quantity, reorderThreshold int) string {
	switch {
	case quantity <= 0:
		return StatusOutOfStock
	case quantity <= reorderThreshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// ApplyDiscount returns price after a flat or percentage discount, never
// below zero and rounded to cents. A nil or non-positive amount for the
// given type leaves the price untouched.
func ApplyDiscount(price float64, discountType string, value, percentage *float64) float64 {
	p := decimal.NewFromFloat(price)

	switch discountType {
	case DiscountFlat:
		if value != nil && *value > 0 {
			p = p.Sub(decimal.NewFromFloat(*value))
		}
	case DiscountPercentage:
		if percentage != nil && *percentage > 0 {
			factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(*percentage).Div(decimal.NewFromInt(100)))
			p = p.Mul(factor)
		}
	}

	if p.IsNegative() {
		p = decimal.Zero
	}
	return round(p)
}

// Line is a priced quantity, e.g. an order item.
type Line struct {
	Price    float64
	Quantity int
}

// Total sums price*quantity over lines.
func Total(lines []Line) float64 {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return round(sum)
}

// Average returns the mean of values and false when there are none.
func Average(values []int) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(decimal.NewFromInt(int64(v)))
	}
	return round(sum.Div(decimal.NewFromInt(int64(len(values))))), true
}

func round(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
