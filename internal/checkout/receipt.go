package checkout

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/width"
)

const receiptWidth = 40

// ReceiptOptions control the printed receipt.
type ReceiptOptions struct {
	StoreName string
	Footer    string
	Location  *time.Location
	Language  language.Tag
}

func (o ReceiptOptions) withDefaults() ReceiptOptions {
	if o.StoreName == "" {
		o.StoreName = "Pop-up Store"
	}

	if o.Footer == "" {
		o.Footer = "Thank you for your purchase!"
	}

	if o.Location == nil {
		o.Location = time.Local
	}

	if o.Language == language.Und {
		o.Language = language.Japanese
	}

	return o
}

// FormatReceipt renders tx as fixed-width receipt text.
func FormatReceipt(tx *Transaction, opts ReceiptOptions) string {
	opts = opts.withDefaults()
	p := message.NewPrinter(opts.Language)

	yen := func(amount int64) string {
		return p.Sprintf("¥%d", amount)
	}

	row := func(label, value string) string {
		pad := receiptWidth - displayWidth(label) - displayWidth(value)
		if pad < 1 {
			pad = 1
		}

		return label + strings.Repeat(" ", pad) + value
	}

	var lines []string

	lines = append(lines, strings.Repeat("═", receiptWidth))
	lines = append(lines, center(opts.StoreName))
	lines = append(lines, center("Receipt"))
	lines = append(lines, strings.Repeat("═", receiptWidth))
	lines = append(lines, "Transaction: "+tx.ID)
	lines = append(lines, "Date: "+tx.Timestamp.In(opts.Location).Format("2006/01/02 15:04:05"))
	lines = append(lines, strings.Repeat("─", receiptWidth))

	for _, l := range tx.Lines {
		lines = append(lines, l.Name)
		lines = append(lines, row(p.Sprintf("  %s × %d", yen(l.Price), l.Quantity), yen(l.Amount())))
	}

	lines = append(lines, strings.Repeat("─", receiptWidth))
	lines = append(lines, row("Subtotal", yen(tx.Subtotal)))
	lines = append(lines, row("Tax "+tx.TaxRate.Shift(2).String()+"%", yen(tx.Tax)))
	lines = append(lines, row("Total", yen(tx.Total)))
	lines = append(lines, strings.Repeat("═", receiptWidth))
	lines = append(lines, center(opts.Footer))

	return strings.Join(lines, "\n")
}

func center(s string) string {
	pad := (receiptWidth - displayWidth(s)) / 2
	if pad < 0 {
		pad = 0
	}

	return strings.Repeat(" ", pad) + s
}

// displayWidth counts East Asian wide and fullwidth characters as two cells.
func displayWidth(s string) int {
	w := 0

	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			w += 2
		default:
			w++
		}
	}

	return w
}
