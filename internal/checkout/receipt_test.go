package checkout_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/till/internal/cart"
	"github.com/MrJamesThe3rd/till/internal/catalog"
	"github.com/MrJamesThe3rd/till/internal/checkout"
)

func TestFormatReceipt(t *testing.T) {
	c := cart.New(nil)
	products := catalog.New([]catalog.Product{
		{Code: "1", Name: "幕の内弁当", Price: 1549},
		{Code: "2", Name: "Tea", Price: 150},
	})

	_, err := c.Add(products, "1")
	require.NoError(t, err)

	for range 3 {
		_, err = c.Add(products, "2")
		require.NoError(t, err)
	}

	svc := checkout.NewService(
		checkout.WithClock(func() time.Time { return fixedNow }),
		checkout.WithIDGenerator(func(time.Time) string { return "TXN1792420205000-ABCDEF12" }),
	)

	tx, err := svc.Checkout(c)
	require.NoError(t, err)

	got := checkout.FormatReceipt(tx, checkout.ReceiptOptions{
		StoreName: "Pop-up Store",
		Location:  time.UTC,
	})

	assert.Contains(t, got, "Pop-up Store")
	assert.Contains(t, got, "Transaction: TXN1792420205000-ABCDEF12")
	assert.Contains(t, got, "Date: 2026/10/19 14:30:05")
	assert.Contains(t, got, "幕の内弁当")
	assert.Contains(t, got, "¥1,549 × 1")
	assert.Contains(t, got, "¥150 × 3")
	assert.Contains(t, got, "¥450")
	assert.Contains(t, got, "Thank you for your purchase!")

	lines := strings.Split(got, "\n")

	assertRow(t, lines, "Subtotal", "¥1,999")
	assertRow(t, lines, "Tax 10%", "¥199")
	assertRow(t, lines, "Total", "¥2,198")
}

func assertRow(t *testing.T, lines []string, label, value string) {
	t.Helper()

	for _, l := range lines {
		if strings.HasPrefix(l, label+" ") {
			assert.True(t, strings.HasSuffix(l, value), "row %q does not end with %q", l, value)
			return
		}
	}

	t.Errorf("no row labelled %q", label)
}
