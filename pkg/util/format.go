package util

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Desk messages group thousands with "," and use "." for decimals.
var printer = message.NewPrinter(language.English)

// FormatMoney renders v with two decimals and thousands separators: 1,234.50.
func FormatMoney(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatCount renders an integer with thousands separators.
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

// FormatPercent renders a ratio as a percentage: 0.05 -> "5.00%".
func FormatPercent(ratio float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, ratio*100)
}
