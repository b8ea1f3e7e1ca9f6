package file

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var priceReplacer = strings.NewReplacer(",", "", "¥", "", "￥", "", "円", "", " ", "")

// parsePrice parses a price cell such as "1,200", "¥150" or "150円" into minor units.
// Catalog prices are whole minor units; fractional values are rejected.
func parsePrice(s string) (int64, error) {
	clean := priceReplacer.Replace(strings.TrimSpace(s))

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}

	if !d.IsInteger() {
		return 0, fmt.Errorf("price %q is not a whole amount", s)
	}

	return d.IntPart(), nil
}
