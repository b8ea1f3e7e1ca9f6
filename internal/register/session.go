// Package register wires the catalog, scan debouncer, cart and checkout into
// one session per terminal.
package register

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/till/internal/barcode"
	"github.com/MrJamesThe3rd/till/internal/cart"
	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/pricing"
	"github.com/MrJamesThe3rd/till/internal/scan"
)

// ErrNoTransaction is returned when no checkout has happened yet.
var ErrNoTransaction = errors.New("no transaction yet")

// CartView is a read-only snapshot of the cart for rendering.
type CartView struct {
	Lines []cart.Line
	pricing.Totals
}

// ScanResult describes what happened to one detection.
type ScanResult struct {
	Code       string
	Format     barcode.Format
	Suppressed bool
	Found      bool
	Line       cart.Line
}

// Session owns the mutable state of one register. Hosts with concurrent
// callers (HTTP handlers, TUI commands) share a Session; its methods are
// serialised by a mutex so the cart and debouncer never see concurrent use.
type Session struct {
	mu sync.Mutex

	catalog   *catalog.Catalog
	cart      *cart.Cart
	debouncer *scan.Debouncer
	checkout  *checkout.Service
	last      *checkout.Transaction
}

type Option func(*Session)

func WithCalculator(calc *pricing.Calculator) Option {
	return func(s *Session) { s.cart = cart.New(calc) }
}

func WithDebounceWindow(window time.Duration) Option {
	return func(s *Session) { s.debouncer = scan.NewDebouncer(window) }
}

func WithCheckout(svc *checkout.Service) Option {
	return func(s *Session) { s.checkout = svc }
}

func NewSession(c *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog:   c,
		cart:      cart.New(pricing.Default()),
		debouncer: scan.NewDebouncer(scan.DefaultWindow),
		checkout:  checkout.NewService(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Session) Catalog() *catalog.Catalog {
	return s.catalog
}

// StartScanning resets duplicate suppression for a new scanning session.
func (s *Session) StartScanning() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debouncer.Reset()
}

// Scan processes one detection: debounce, resolve, add to cart.
func (s *Session) Scan(ev scan.Event) ScanResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scanLocked(ev)
}

// normaliseCode strips the whitespace and line endings scanners append, so
// debouncing and resolution see the same code.
func normaliseCode(raw string) string {
	return strings.TrimSpace(raw)
}

func (s *Session) scanLocked(ev scan.Event) ScanResult {
	code := normaliseCode(ev.RawCode)

	format := ev.Format
	if format == "" {
		format = barcode.Detect(code)
	}

	res := ScanResult{Code: code, Format: format}
	if code == "" {
		return res
	}

	if !s.debouncer.Accept(code, ev.Timestamp) {
		res.Suppressed = true
		return res
	}

	line, err := s.cart.Add(s.catalog, code)
	if err != nil {
		slog.Info("unregistered product scanned", "code", code, "format", format)
		return res
	}

	if isGS1(format) && !barcode.ValidCheckDigit(code) {
		slog.Warn("scanned code has invalid check digit", "code", code, "format", format)
	}

	slog.Info("product scanned", "code", line.Code, "name", line.Name, "quantity", line.Quantity)

	res.Found = true
	res.Line = line

	return res
}

func isGS1(f barcode.Format) bool {
	return f == barcode.FormatEAN13 || f == barcode.FormatEAN8 || f == barcode.FormatUPCA
}

// Run feeds detections from src into the session until src is exhausted or
// ctx is cancelled. Debouncing happens inside Scan.
func (s *Session) Run(ctx context.Context, src scan.Source, onScan func(ScanResult)) error {
	s.StartScanning()

	return scan.Pump(ctx, src, nil, func(ev scan.Event) {
		res := s.Scan(ev)
		if onScan != nil {
			onScan(res)
		}
	})
}

// AddItem adds one unit of the product matching code.
func (s *Session) AddItem(code string) (cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.cart.Add(s.catalog, normaliseCode(code))
	if err != nil {
		return cart.Line{}, err
	}

	slog.Info("item added", "code", line.Code, "quantity", line.Quantity)

	return line, nil
}

func (s *Session) IncreaseQuantity(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Increase(code)
}

func (s *Session) DecreaseQuantity(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Decrease(code)
}

func (s *Session) RemoveItem(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(code)
}

// View returns the current lines and totals.
func (s *Session) View() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return CartView{
		Lines:  s.cart.Lines(),
		Totals: s.cart.Totals(),
	}
}

// Checkout closes the cart into a transaction and remembers it as the last one.
func (s *Session) Checkout() (*checkout.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.checkout.Checkout(s.cart)
	if err != nil {
		return nil, err
	}

	s.last = tx

	slog.Info("checkout completed", "transaction_id", tx.ID, "lines", len(tx.Lines), "total", tx.Total)

	return tx.Clone(), nil
}

// LastTransaction returns the most recent checkout.
func (s *Session) LastTransaction() (*checkout.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return nil, ErrNoTransaction
	}

	return s.last.Clone(), nil
}
