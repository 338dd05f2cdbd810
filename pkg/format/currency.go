// Package format renders currency amounts for display.
package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer applies English-locale digit grouping to formatted numbers.
var printer = message.NewPrinter(language.English)

// Currency returns a currency string with the given symbol, two decimals, and
// thousands separators (e.g., "-$1,234.56").
func Currency(symbol string, amount float64) string {
	formatted := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// WholeCurrency returns a currency string rounded to the nearest whole unit
// with thousands separators (e.g., "-$1,235"). Schedule totals and yearly
// aggregates are displayed in whole currency units; cents only appear on the
// fixed monthly payment.
func WholeCurrency(symbol string, amount float64) string {
	formatted := printer.Sprintf("%.0f", math.Round(math.Abs(amount)))
	if amount < 0 {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}
