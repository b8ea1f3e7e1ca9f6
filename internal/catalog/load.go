package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrLoad is returned when a catalog cannot be built from its source.
// Hosts must treat it as a startup failure.
var ErrLoad = errors.New("catalog load failed")

//go:generate mockgen -source=load.go -destination=source_mock.go -package=catalog
type Source interface {
	Products(ctx context.Context) ([]Product, error)
}

// Load reads every product from src, validates it and builds the catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: reading source: %w", ErrLoad, err)
	}

	for i, p := range products {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrLoad, i+1, err)
		}
	}

	return New(products), nil
}

func validate(p Product) error {
	if strings.TrimSpace(p.Code) == "" {
		return errors.New("missing code")
	}

	if strings.TrimSpace(p.Code) != p.Code {
		return fmt.Errorf("product %q: code has surrounding whitespace", p.Code)
	}

	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product %s: missing name", p.Code)
	}

	if p.Price < 0 {
		return fmt.Errorf("product %s: negative price %d", p.Code, p.Price)
	}

	return nil
}
