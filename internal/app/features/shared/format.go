// Package shared holds display helpers and store hooks used by several
// feature packages.
package shared

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency prefixes every amount shown in the console.
const Currency = "GH₵"

var printer = message.NewPrinter(language.English)

// Money formats an amount with thousands separators, e.g. "GH₵ 12,500.00".
func Money(amount float64) string {
	return printer.Sprintf("%s %.2f", Currency, amount)
}

// Count formats a whole number with thousands separators.
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Date renders a calendar date the way tables show it ("Jan 15, 2024").
// A zero time renders as an empty string.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
