// Package file reads catalogs exported as JSON or CSV files.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/till/internal/catalog"
)

// Open returns a catalog source for path, chosen by file extension.
func Open(path string) (catalog.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return NewJSONSource(path), nil
	case ".csv", ".tsv", ".txt":
		return NewCSVSource(path), nil
	}

	return nil, fmt.Errorf("unsupported catalog file %q: expected .json or .csv", path)
}

func openFile(ctx context.Context, path string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}

	return f, nil
}
