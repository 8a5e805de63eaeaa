package format

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// MaskAccount keeps the last four characters of an account number: "35523543" -> "***3543".
func MaskAccount(s string) string {
	if utf8.RuneCountInString(s) <= 4 {
		return s
	}
	r := []rune(s)
	return "***" + string(r[len(r)-4:])
}

var (
	dividendCashRe  = regexp.MustCompile(`(?i)(\d[\d,]*)\s*đồng/CP`)
	dividendRatioRe = regexp.MustCompile(`(?i)tỷ\s*lệ\s*100:(\d+)`)
)

// DividendRate extracts the per-share cash amount ("1,500") or the share ratio ("15%")
// from an event note, NotAvailable otherwise.
func DividendRate(note string) string {
	if note == "" {
		return NotAvailable
	}
	if m := dividendCashRe.FindStringSubmatch(note); m != nil {
		return m[1]
	}
	if m := dividendRatioRe.FindStringSubmatch(note); m != nil {
		return m[1] + "%"
	}
	return NotAvailable
}

var nonNumericRe = regexp.MustCompile(`[^0-9.-]`)

// ParseUINumber strips everything but digits, dots and minus signs and parses the rest.
// Grouping dots make "1.234.567" ambiguous, so a value with several dots is read as an integer.
func ParseUINumber(s string) (float64, bool) {
	cleaned := nonNumericRe.ReplaceAllString(s, "")
	if strings.Count(cleaned, ".") > 1 {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}
	if cleaned == "" || cleaned == "-" || cleaned == "." {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
