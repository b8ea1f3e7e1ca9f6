package file

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/till/internal/catalog"
)

// JSONSource reads a JSON array of {"code","name","price"} records.
type JSONSource struct {
	path string
}

func NewJSONSource(path string) *JSONSource {
	return &JSONSource{path: path}
}

type productRecord struct {
	Code  *string      `json:"code"`
	Name  string       `json:"name"`
	Price *json.Number `json:"price"`
}

func (s *JSONSource) Products(ctx context.Context) ([]catalog.Product, error) {
	f, err := openFile(ctx, s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var records []productRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding catalog json: %w", err)
	}

	products := make([]catalog.Product, 0, len(records))

	for i, rec := range records {
		if rec.Code == nil {
			return nil, fmt.Errorf("record %d: missing code", i+1)
		}

		if rec.Price == nil {
			return nil, fmt.Errorf("record %d: missing price", i+1)
		}

		price, err := rec.Price.Int64()
		if err != nil {
			return nil, fmt.Errorf("record %d: price %q is not an integer amount", i+1, rec.Price.String())
		}

		products = append(products, catalog.Product{
			Code:  *rec.Code,
			Name:  rec.Name,
			Price: price,
		})
	}

	return products, nil
}
