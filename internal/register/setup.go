package register

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/catalog/file"
	"github.com/MrJamesThe3rd/till/internal/catalog/store"
	"github.com/MrJamesThe3rd/till/internal/checkout"
	"github.com/MrJamesThe3rd/till/internal/config"
	"github.com/MrJamesThe3rd/till/internal/database"
	"github.com/MrJamesThe3rd/till/internal/pricing"
)

// OpenCatalog loads the catalog from the configured source. Every failure
// wraps catalog.ErrLoad.
func OpenCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	var c *catalog.Catalog

	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := database.New(ctx, cfg.ConnectionString())
		if err != nil {
			return nil, fmt.Errorf("%w: %w", catalog.ErrLoad, err)
		}
		defer db.Close()

		c, err = catalog.Load(ctx, store.New(db))
		if err != nil {
			return nil, err
		}
	default:
		src, err := file.Open(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", catalog.ErrLoad, err)
		}

		c, err = catalog.Load(ctx, src)
		if err != nil {
			return nil, err
		}
	}

	for _, dup := range c.Duplicates() {
		slog.Warn("duplicate catalog code ignored", "code", dup.Code, "name", dup.Name)
	}

	slog.Info("catalog loaded", "source", cfg.Catalog.Source, "products", c.Len())

	return c, nil
}

// NewSessionFromConfig builds a session over c using the configured tax rate
// and debounce window.
func NewSessionFromConfig(c *catalog.Catalog, cfg *config.Config) (*Session, error) {
	rate, err := pricing.ParseRate(cfg.Pricing.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("parsing tax rate: %w", err)
	}

	calc, err := pricing.NewCalculator(rate)
	if err != nil {
		return nil, fmt.Errorf("creating calculator: %w", err)
	}

	return NewSession(c,
		WithCalculator(calc),
		WithDebounceWindow(cfg.Scan.Debounce),
	), nil
}

func ReceiptOptions(cfg *config.Config) checkout.ReceiptOptions {
	return checkout.ReceiptOptions{
		StoreName: cfg.Store.Name,
		Footer:    cfg.Store.Footer,
	}
}
