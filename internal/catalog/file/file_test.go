package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/catalog/file"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestOpen_JSON(t *testing.T) {
	path := writeFile(t, "products.json", `[
		{"code": "4912345678904", "name": "Tea", "price": 150},
		{"code": "4901234567894", "name": "Coffee", "price": 180}
	]`)

	src, err := file.Open(path)
	require.NoError(t, err)

	c, err := catalog.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	p, ok := c.Lookup("4901234567894")
	require.True(t, ok)
	assert.Equal(t, "Coffee", p.Name)
	assert.Equal(t, int64(180), p.Price)
}

func TestOpen_CSV(t *testing.T) {
	path := writeFile(t, "products.csv", "code,name,price\n4912345678904,Tea,150\n")

	src, err := file.Open(path)
	require.NoError(t, err)

	c, err := catalog.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestOpen_UnsupportedExtension(t *testing.T) {
	_, err := file.Open("products.xml")
	assert.Error(t, err)
}

func TestJSONSource_Errors(t *testing.T) {
	type testCase struct {
		name    string
		content string
	}

	tests := []testCase{
		{name: "Malformed", content: `[{"code": "1", "name": "Tea", "price": 150}`},
		{name: "Not An Array", content: `{"code": "1", "name": "Tea", "price": 150}`},
		{name: "Fractional Price", content: `[{"code": "1", "name": "Tea", "price": 1.5}]`},
		{name: "Missing Code", content: `[{"name": "Tea", "price": 150}]`},
		{name: "Missing Price", content: `[{"code": "1", "name": "Tea"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := file.NewJSONSource(writeFile(t, "products.json", tt.content))

			_, err := catalog.Load(context.Background(), src)
			assert.ErrorIs(t, err, catalog.ErrLoad)
		})
	}
}

func TestJSONSource_MissingFile(t *testing.T) {
	src := file.NewJSONSource(filepath.Join(t.TempDir(), "missing.json"))

	_, err := catalog.Load(context.Background(), src)
	assert.ErrorIs(t, err, catalog.ErrLoad)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
