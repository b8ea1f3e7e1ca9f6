package file

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/till/internal/catalog"
	enc "github.com/MrJamesThe3rd/till/internal/encoding"
)

// delimiters are tried in order until one yields a header matching a profile.
var delimiters = []rune{',', ';', '\t'}

// CSVSource reads catalog spreadsheets exported as CSV. The encoding,
// delimiter and header layout are detected from the file contents.
type CSVSource struct {
	path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

func (s *CSVSource) Products(ctx context.Context) ([]catalog.Product, error) {
	f, err := openFile(ctx, s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads products from a CSV export.
func Parse(r io.Reader) ([]catalog.Product, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRows(data, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx)
	}

	return nil, errors.New("no matching catalog format found: expected code, name and price columns")
}

func readRows(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps normalised column names to their index in the row.
type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := normaliseHeader(cell); name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[normaliseHeader(name)]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts products from the rows following the header.
// headerRowNum is the 0-based index of the header; errors cite 1-based file rows.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]catalog.Product, error) {
	codeIdx := cols[normaliseHeader(p.CodeCol)]
	nameIdx := cols[normaliseHeader(p.NameCol)]
	priceIdx := cols[normaliseHeader(p.PriceCol)]

	var products []catalog.Product

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		code := cellValue(row, codeIdx)
		if code == "" {
			continue
		}

		price, err := parsePrice(cellValue(row, priceIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		products = append(products, catalog.Product{
			Code:  code,
			Name:  cellValue(row, nameIdx),
			Price: price,
		})
	}

	return products, nil
}

func normaliseHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
