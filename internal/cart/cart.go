// Package cart holds the live cart of a register session.
package cart

import (
	"errors"
	"slices"

	"github.com/MrJamesThe3rd/till/internal/barcode"
	"github.com/MrJamesThe3rd/till/internal/pricing"
)

const (
	MinQuantity = 1
	MaxQuantity = 99
)

// ErrProductNotFound is returned by Add when a code matches no product.
// The cart is left unchanged.
var ErrProductNotFound = errors.New("product not found")

// Line is one product in the cart. Name and Price are copied from the
// catalog when the product is first added and never refreshed.
type Line struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Amount is the line total.
func (l Line) Amount() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart is an ordered set of lines, one per product code.
// It is not safe for concurrent use.
type Cart struct {
	lines []Line
	calc  *pricing.Calculator
}

func New(calc *pricing.Calculator) *Cart {
	if calc == nil {
		calc = pricing.Default()
	}

	return &Cart{calc: calc}
}

// Add resolves code against the catalog and puts one unit of the product in
// the cart. Adding a product already at MaxQuantity leaves the cart unchanged.
func (c *Cart) Add(products barcode.Lookuper, code string) (Line, error) {
	p, ok := barcode.Resolve(products, code)
	if !ok {
		return Line{}, ErrProductNotFound
	}

	if i := c.index(p.Code); i >= 0 {
		if c.lines[i].Quantity < MaxQuantity {
			c.lines[i].Quantity++
		}

		return c.lines[i], nil
	}

	line := Line{Code: p.Code, Name: p.Name, Price: p.Price, Quantity: 1}
	c.lines = append(c.lines, line)

	return line, nil
}

// Increase adds one unit to the line for code, up to MaxQuantity.
func (c *Cart) Increase(code string) {
	if i := c.index(code); i >= 0 && c.lines[i].Quantity < MaxQuantity {
		c.lines[i].Quantity++
	}
}

// Decrease removes one unit from the line for code, down to MinQuantity.
// Lines are only deleted by Remove.
func (c *Cart) Decrease(code string) {
	if i := c.index(code); i >= 0 && c.lines[i].Quantity > MinQuantity {
		c.lines[i].Quantity--
	}
}

// Remove deletes the line for code whatever its quantity.
func (c *Cart) Remove(code string) {
	if i := c.index(code); i >= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

// Line returns the line for code.
func (c *Cart) Line(code string) (Line, bool) {
	if i := c.index(code); i >= 0 {
		return c.lines[i], true
	}

	return Line{}, false
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []Line {
	return slices.Clone(c.lines)
}

func (c *Cart) Totals() pricing.Totals {
	items := make([]pricing.Item, len(c.lines))
	for i, l := range c.lines {
		items[i] = pricing.Item{Price: l.Price, Quantity: l.Quantity}
	}

	return c.calc.Compute(items)
}

// Calculator returns the calculator the cart prices with.
func (c *Cart) Calculator() *pricing.Calculator {
	return c.calc
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) index(code string) int {
	return slices.IndexFunc(c.lines, func(l Line) bool { return l.Code == code })
}
