// Package barcode maps scanned codes to catalog products.
package barcode

import (
	"strings"

	"github.com/MrJamesThe3rd/till/internal/catalog"
)

// Lookuper is satisfied by *catalog.Catalog.
type Lookuper interface {
	Lookup(code string) (catalog.Product, bool)
}

// Candidates returns the codes tried for raw, in resolution order:
// the code itself, the code with one leading zero stripped, and the code
// with one leading zero prepended. EAN-13 and UPC-A renderings of the same
// item differ by exactly one leading zero. raw is used as given; callers
// strip scanner line endings at the input edge.
func Candidates(raw string) []string {
	if raw == "" {
		return nil
	}

	candidates := make([]string, 0, 3)
	candidates = append(candidates, raw)

	if strings.HasPrefix(raw, "0") {
		candidates = append(candidates, raw[1:])
	}

	return append(candidates, "0"+raw)
}

// Resolve finds the product for a scanned code. Each candidate is an
// independent lookup; the first hit wins.
func Resolve(c Lookuper, raw string) (catalog.Product, bool) {
	for _, code := range Candidates(raw) {
		if p, ok := c.Lookup(code); ok {
			return p, true
		}
	}

	return catalog.Product{}, false
}
