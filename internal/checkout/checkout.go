// Package checkout closes a cart into an immutable transaction record.
package checkout

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/till/internal/cart"
	"github.com/MrJamesThe3rd/till/internal/pricing"
)

// ErrEmptyCart is returned when checkout is attempted with nothing to sell.
var ErrEmptyCart = errors.New("cart is empty")

// Transaction is the record of a completed checkout. It shares no storage
// with the cart it was taken from.
type Transaction struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Lines     []cart.Line     `json:"lines"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	pricing.Totals
}

// Clone returns a deep copy of tx.
func (tx *Transaction) Clone() *Transaction {
	cp := *tx
	cp.Lines = slices.Clone(tx.Lines)

	return &cp
}

// IDGenerator returns a transaction identifier for a checkout at now.
type IDGenerator func(now time.Time) string

// NewID builds identifiers of the form TXN<unix-millis>-<random hex>.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("TXN%d-%s", now.UnixMilli(), strings.ToUpper(suffix))
}

type Service struct {
	newID IDGenerator
	now   func() time.Time
}

type Option func(*Service)

func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) { s.newID = gen }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(opts ...Option) *Service {
	s := &Service{
		newID: NewID,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Checkout snapshots c into a transaction and clears it. An empty cart
// yields ErrEmptyCart and is left as is.
func (s *Service) Checkout(c *cart.Cart) (*Transaction, error) {
	if c.IsEmpty() {
		return nil, ErrEmptyCart
	}

	now := s.now()

	tx := &Transaction{
		ID:        s.newID(now),
		Timestamp: now,
		Lines:     c.Lines(),
		TaxRate:   c.Calculator().Rate(),
		Totals:    c.Totals(),
	}

	c.Clear()

	return tx, nil
}
