package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/till/internal/catalog"
)

// Store reads the product catalog from Postgres. It never writes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const selectProducts = `
	SELECT p.code, p.name, p.price
	FROM products p
	WHERE p.active
	ORDER BY p.position, p.code
`

func (s *Store) Products(ctx context.Context) ([]catalog.Product, error) {
	rows, err := s.db.QueryContext(ctx, selectProducts)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product

	for rows.Next() {
		var (
			p    catalog.Product
			name sql.NullString
		)

		if err := rows.Scan(&p.Code, &name, &p.Price); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}

		p.Name = name.String
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	return products, nil
}
