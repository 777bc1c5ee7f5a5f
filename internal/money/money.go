// Package money converts monetary amounts between their textual table
// form and float values. Parsing is forgiving: table cells come from
// hand-edited documents.
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// An optional sign, then digits with optional thousands separators
	// and an optional decimal part, e.g. "-1,234.56".
	amountRe = regexp.MustCompile(`[-+]?\d[\d,]*(?:\.\d+)?`)

	currencyRe = regexp.MustCompile(`\b[A-Z]{3}\b`)
)

// Format renders an amount with exactly two decimal places and a
// space-separated currency code, e.g. "42.50 USD".
func Format(amount float64, currency string) string {
	return decimal.NewFromFloat(amount).StringFixed(2) + " " + currency
}

// FormatSigned is Format with an explicit sign: "+" for non-negative
// amounts, the minus carried by the number itself otherwise.
func FormatSigned(amount float64, currency string) string {
	if amount >= 0 {
		return "+" + Format(amount, currency)
	}

	return Format(amount, currency)
}

// ParseCell extracts the numeric value from a table cell. It takes the
// first run that looks like an amount, strips thousands separators and
// parses the rest. Returns false when the cell holds no number.
func ParseCell(cell string) (float64, bool) {
	match := amountRe.FindString(cell)
	if match == "" {
		return 0, false
	}

	clean := strings.ReplaceAll(match, ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, false
	}

	return d.InexactFloat64(), true
}

// Currency extracts a 3-letter uppercase currency code from a cell, or
// returns fallback when none is present.
func Currency(cell, fallback string) string {
	if code := currencyRe.FindString(cell); code != "" {
		return code
	}

	return fallback
}
