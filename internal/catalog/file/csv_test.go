package file_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/catalog/file"
)

func TestParse(t *testing.T) {
	type args struct {
		content string
	}

	type testCase struct {
		name    string
		args    args
		want    []catalog.Product
		wantErr string
	}

	tests := []testCase{
		{
			name: "Default Header",
			args: args{content: "code,name,price\n4912345678904,Tea,150\n4901234567894,Coffee,180\n"},
			want: []catalog.Product{
				{Code: "4912345678904", Name: "Tea", Price: 150},
				{Code: "4901234567894", Name: "Coffee", Price: 180},
			},
		},
		{
			name: "Japanese Header With Yen Prices",
			args: args{content: "商品コード,商品名,価格\n4912345678904,緑茶,¥150\n4987654321098,弁当,\"1,200\"\n"},
			want: []catalog.Product{
				{Code: "4912345678904", Name: "緑茶", Price: 150},
				{Code: "4987654321098", Name: "弁当", Price: 1200},
			},
		},
		{
			name: "Semicolon JAN Export With Preamble",
			args: args{content: "店舗;ポップアップストア\n\nJANコード;商品名;売価;在庫\n4912345678904;緑茶;150円;12\n"},
			want: []catalog.Product{
				{Code: "4912345678904", Name: "緑茶", Price: 150},
			},
		},
		{
			name: "Tab Separated Different Column Order",
			args: args{content: "Price\tCode\tName\n150\t4912345678904\tTea\n"},
			want: []catalog.Product{
				{Code: "4912345678904", Name: "Tea", Price: 150},
			},
		},
		{
			name: "Leading Zero Codes Kept Verbatim",
			args: args{content: "code,name,price\n0012345678905,Gum,100\n"},
			want: []catalog.Product{
				{Code: "0012345678905", Name: "Gum", Price: 100},
			},
		},
		{
			name: "Skips Rows Without Code",
			args: args{content: "code,name,price\n4912345678904,Tea,150\n,,\n,合計,150\n"},
			want: []catalog.Product{
				{Code: "4912345678904", Name: "Tea", Price: 150},
			},
		},
		{
			name:    "Fractional Price",
			args:    args{content: "code,name,price\n1,Tea,1.50\n"},
			wantErr: "row 2:",
		},
		{
			name:    "Error Row Counts Preamble And Header",
			args:    args{content: "店舗,本店\ncode,name,price\n1,Tea,150\n2,Coffee,1.5\n"},
			wantErr: "row 4:",
		},
		{
			name:    "Invalid Price",
			args:    args{content: "code,name,price\n1,Tea,free\n"},
			wantErr: "invalid price",
		},
		{
			name:    "Unknown Header",
			args:    args{content: "sku,title,amount\n1,Tea,150\n"},
			wantErr: "no matching catalog format",
		},
		{
			name:    "Empty File",
			args:    args{content: ""},
			wantErr: "no matching catalog format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := file.Parse(strings.NewReader(tt.args.content))

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

func TestParse_HeaderOnly(t *testing.T) {
	got, err := file.Parse(strings.NewReader("code,name,price\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParse_ShiftJIS(t *testing.T) {
	utf8CSV := "商品コード,商品名,価格\n" +
		"4912345678904,おいしい緑茶　ペットボトル,150\n" +
		"4901234567894,ブラックコーヒー　無糖,180\n" +
		"4987654321098,塩むすび　おにぎり,120\n"

	sjis, err := japanese.ShiftJIS.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	got, err := file.Parse(bytes.NewReader(sjis))
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "おいしい緑茶　ペットボトル", got[0].Name)
	assert.Equal(t, int64(120), got[2].Price)
}
