// Package format turns API values into the strings the web UI renders.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Dash is what the UI renders for an empty or zero cell.
const Dash = "—"

var viPrinter = message.NewPrinter(language.Vietnamese)

// Currency groups the integer part with Vietnamese separators ("1.234.567").
// Fractions are rounded half away from zero; the sign is kept.
func Currency(d decimal.Decimal) string {
	return viPrinter.Sprintf("%d", d.Round(0).IntPart())
}

// CurrencyAbs is Currency without the sign, for columns that never show one.
func CurrencyAbs(d decimal.Decimal) string {
	return Currency(d.Abs())
}

// CurrencyOrDash renders Dash for zero amounts.
func CurrencyOrDash(d decimal.Decimal) string {
	if d.IsZero() {
		return Dash
	}
	return Currency(d)
}

var hundred = decimal.NewFromInt(100)

// Percent renders d with two decimals and a percent sign: 12.5 -> "12.50%".
func Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// PercentRaw renders d as-is with a percent sign: 12.5 -> "12.5%".
func PercentRaw(d decimal.Decimal) string {
	return d.String() + "%"
}

// Ratio renders a 0..1 ratio as a percentage: 0.125 -> "12.50%".
func Ratio(d decimal.Decimal) string {
	return Percent(d.Mul(hundred))
}

// ProfitPercent is pl/total as a percentage, zero when total is zero.
func ProfitPercent(pl, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return pl.Div(total).Mul(hundred)
}

// OrDash renders Dash for blank strings.
func OrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return Dash
	}
	return s
}
