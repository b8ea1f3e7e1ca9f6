package catalog

// Product is a sellable item. Price is in the minor currency unit.
type Product struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Catalog is an immutable, in-memory product lookup keyed by code.
type Catalog struct {
	products   []Product
	byCode     map[string]Product
	duplicates []Product
}

// New builds a catalog from products. When two products share a code the
// first one wins; the rejected ones are reported by Duplicates.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byCode:   make(map[string]Product, len(products)),
	}

	for _, p := range products {
		if _, exists := c.byCode[p.Code]; exists {
			c.duplicates = append(c.duplicates, p)
			continue
		}

		c.byCode[p.Code] = p
		c.products = append(c.products, p)
	}

	return c
}

// Lookup returns the product registered under code.
func (c *Catalog) Lookup(code string) (Product, bool) {
	p, ok := c.byCode[code]
	return p, ok
}

// Products returns the catalog in load order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)

	return out
}

// Duplicates returns the products dropped by New because their code was already taken.
func (c *Catalog) Duplicates() []Product {
	out := make([]Product, len(c.duplicates))
	copy(out, c.duplicates)

	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}
