package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestStockStatusFor(t *testing.T) {
	cases := []struct {
		qty, threshold int
		want           string
	}{
		{150, 100, StatusInStock},
		{101, 100, StatusInStock},
		{100, 100, StatusLowStock},
		{1, 100, StatusLowStock},
		{0, 100, StatusOutOfStock},
		{-3, 100, StatusOutOfStock},
		{0, 0, StatusOutOfStock},
		{5, 0, StatusInStock},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StockStatusFor(c.qty, c.threshold), "qty=%d threshold=%d", c.qty, c.threshold)
	}
}

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, 40.0, ApplyDiscount(50, DiscountPercentage, nil, ptr(20)))
	assert.Equal(t, 35.0, ApplyDiscount(50, DiscountFlat, ptr(15), nil))
	assert.Equal(t, 33.33, ApplyDiscount(49.99, DiscountPercentage, nil, ptr(33.33)))
}

func TestApplyDiscountClampsAtZero(t *testing.T) {
	assert.Equal(t, 0.0, ApplyDiscount(10, DiscountFlat, ptr(25), nil))
	assert.Equal(t, 0.0, ApplyDiscount(10, DiscountPercentage, nil, ptr(150)))
	assert.Equal(t, 0.0, ApplyDiscount(10, DiscountPercentage, nil, ptr(100)))
}

func TestApplyDiscountIgnoresMismatchedAmount(t *testing.T) {
	assert.Equal(t, 50.0, ApplyDiscount(50, DiscountFlat, nil, ptr(20)))
	assert.Equal(t, 50.0, ApplyDiscount(50, DiscountPercentage, ptr(20), nil))
	assert.Equal(t, 50.0, ApplyDiscount(50, "bogus", ptr(20), ptr(20)))
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil))
	assert.Equal(t, 70.3, Total([]Line{{Price: 10.1, Quantity: 3}, {Price: 20, Quantity: 2}}))
}

func TestAverage(t *testing.T) {
	_, ok := Average(nil)
	assert.False(t, ok)

	avg, ok := Average([]int{5, 4, 4})
	assert.True(t, ok)
	assert.Equal(t, 4.33, avg)
}
