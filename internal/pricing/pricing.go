// Package pricing computes cart totals in minor currency units.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultTaxRate is the standard consumption tax rate.
var DefaultTaxRate = decimal.RequireFromString("0.10")

// Item is the pricing view of a cart line.
type Item struct {
	Price    int64
	Quantity int
}

// Totals are derived from the cart and never stored.
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Calculator applies a single fixed tax rate.
type Calculator struct {
	rate decimal.Decimal
}

// NewCalculator returns a calculator for rate, which must be in [0, 1).
func NewCalculator(rate decimal.Decimal) (*Calculator, error) {
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("tax rate %s out of range [0, 1)", rate)
	}

	return &Calculator{rate: rate}, nil
}

// ParseRate parses a tax rate such as "0.10" or "10%".
func ParseRate(s string) (decimal.Decimal, error) {
	if n := len(s); n > 0 && s[n-1] == '%' {
		d, err := decimal.NewFromString(s[:n-1])
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("parsing tax rate %q: %w", s, err)
		}

		return d.Div(decimal.NewFromInt(100)), nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing tax rate %q: %w", s, err)
	}

	return d, nil
}

// Default returns a calculator using DefaultTaxRate.
func Default() *Calculator {
	return &Calculator{rate: DefaultTaxRate}
}

func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// Compute sums the items and applies tax truncated toward zero.
func (c *Calculator) Compute(items []Item) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.Price * int64(it.Quantity)
	}

	return c.ForSubtotal(subtotal)
}

// ForSubtotal derives tax and total from a subtotal.
func (c *Calculator) ForSubtotal(subtotal int64) Totals {
	tax := decimal.NewFromInt(subtotal).Mul(c.rate).Floor().IntPart()

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}
