package view

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var yen = message.NewPrinter(language.Japanese)

// FormatAmount formats a whole-yen amount with thousands separators.
func FormatAmount(amount int64) string {
	return yen.Sprintf("¥%d", amount)
}

// FormatTime formats a timestamp the way receipts print it.
func FormatTime(t time.Time) string {
	return t.Local().Format("2006/01/02 15:04:05")
}
