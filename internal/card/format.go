// internal/card/format.go
package card

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// cardPrinter formats numbers with en-US thousands grouping.
var cardPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an absolute USD value with a caller-chosen sign
// glyph, a dollar prefix, grouping and two decimals: "+$225,000.00".
// The caller passes the absolute value; the sign is display-only.
func FormatCurrency(abs float64, sign string) string {
	return cardPrinter.Sprintf("%s$%.2f", sign, abs)
}

// FormatQuantity renders a token quantity with three decimals.
func FormatQuantity(v float64) string {
	return cardPrinter.Sprintf("%.3f", v)
}

// FormatAmount renders an invested/sold token amount with one decimal.
func FormatAmount(v float64) string {
	return cardPrinter.Sprintf("%.1f", v)
}

// FormatROI renders the final/initial ratio with two decimals.
func FormatROI(v float64) string {
	return cardPrinter.Sprintf("%.2f", v)
}
