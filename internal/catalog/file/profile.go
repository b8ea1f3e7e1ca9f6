package file

// Profile describes the header layout of a catalog CSV export.
// Supporting a new POS or spreadsheet layout is adding a Profile to profiles.
type Profile struct {
	Name     string
	CodeCol  string
	NameCol  string
	PriceCol string
}

func (p Profile) requiredCols() []string {
	return []string{p.CodeCol, p.NameCol, p.PriceCol}
}

// profiles is the ordered list of header layouts tried during detection.
var profiles = []Profile{
	{
		Name:     "default",
		CodeCol:  "code",
		NameCol:  "name",
		PriceCol: "price",
	},
	{
		Name:     "商品マスタ",
		CodeCol:  "商品コード",
		NameCol:  "商品名",
		PriceCol: "価格",
	},
	{
		Name:     "JAN",
		CodeCol:  "JANコード",
		NameCol:  "商品名",
		PriceCol: "売価",
	},
}
