package store_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/catalog/store"
)

// fakeDB serves one canned result set through database/sql.
type fakeDB struct {
	rows     [][]driver.Value
	queryErr error
	rowsErr  error
}

func (f *fakeDB) Connect(context.Context) (driver.Conn, error) { return fakeConn{f}, nil }
func (f *fakeDB) Driver() driver.Driver                        { return fakeDriver{} }

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) { return nil, errors.New("open through the connector") }

type fakeConn struct{ db *fakeDB }

func (c fakeConn) Prepare(string) (driver.Stmt, error) { return fakeStmt(c), nil }
func (c fakeConn) Close() error                        { return nil }
func (c fakeConn) Begin() (driver.Tx, error)           { return nil, errors.New("read only") }

type fakeStmt struct{ db *fakeDB }

func (s fakeStmt) Close() error  { return nil }
func (s fakeStmt) NumInput() int { return 0 }

func (s fakeStmt) Exec([]driver.Value) (driver.Result, error) {
	return nil, errors.New("read only")
}

func (s fakeStmt) Query([]driver.Value) (driver.Rows, error) {
	if s.db.queryErr != nil {
		return nil, s.db.queryErr
	}

	return &fakeRows{rows: s.db.rows, err: s.db.rowsErr}, nil
}

type fakeRows struct {
	rows [][]driver.Value
	err  error
	pos  int
}

func (r *fakeRows) Columns() []string { return []string{"code", "name", "price"} }
func (r *fakeRows) Close() error      { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		if r.err != nil {
			return r.err
		}

		return io.EOF
	}

	copy(dest, r.rows[r.pos])
	r.pos++

	return nil
}

func TestStore_Products(t *testing.T) {
	type testCase struct {
		name    string
		db      *fakeDB
		want    []catalog.Product
		wantErr string
	}

	tests := []testCase{
		{
			name: "Success",
			db: &fakeDB{rows: [][]driver.Value{
				{"4912345678904", "Green Tea", int64(150)},
				{"96385074", nil, int64(80)},
			}},
			want: []catalog.Product{
				{Code: "4912345678904", Name: "Green Tea", Price: 150},
				{Code: "96385074", Name: "", Price: 80},
			},
		},
		{
			name: "Empty",
			db:   &fakeDB{},
		},
		{
			name:    "Query Error",
			db:      &fakeDB{queryErr: errors.New("relation \"products\" does not exist")},
			wantErr: "listing products",
		},
		{
			name:    "Scan Error",
			db:      &fakeDB{rows: [][]driver.Value{{"1", "Tea", "free"}}},
			wantErr: "scanning product",
		},
		{
			name: "Iteration Error",
			db: &fakeDB{
				rows:    [][]driver.Value{{"1", "Tea", int64(100)}},
				rowsErr: errors.New("connection reset"),
			},
			wantErr: "iterating products",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := sql.OpenDB(tt.db)
			defer db.Close()

			got, err := store.New(db).Products(context.Background())

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_ProductsFailValidation(t *testing.T) {
	db := sql.OpenDB(&fakeDB{rows: [][]driver.Value{{"96385074", nil, int64(80)}}})
	defer db.Close()

	_, err := catalog.Load(context.Background(), store.New(db))
	assert.ErrorIs(t, err, catalog.ErrLoad)
}
