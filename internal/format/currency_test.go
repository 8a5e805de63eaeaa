package format

import (
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"7", "7"},
		{"999", "999"},
		{"1000", "1.000"},
		{"1234567", "1.234.567"},
		{"1000000000", "1.000.000.000"},
		{"1234.4", "1.234"},
		{"1234.5", "1.235"},
		{"-50000", "-50.000"},
		{"-0.4", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Currency(dec(tt.in)))
		})
	}
}

func TestCurrency_GroupsEveryNonNegativeInteger(t *testing.T) {
	for _, n := range []int64{1, 12, 123, 1234, 12345, 123456, 1234567, 98765432, 100000000} {
		got := Currency(decimal.NewFromInt(n))
		assert.NotContains(t, got, ",", "no decimal component for %d", n)
		assert.Equal(t, strconv.FormatInt(n, 10), strings.ReplaceAll(got, ".", ""), "digits for %d", n)
		for i, group := range strings.Split(got, ".") {
			if i > 0 {
				assert.Len(t, group, 3, "group %d of %q", i, got)
			}
		}
	}
}

func TestCurrencyAbsAndDash(t *testing.T) {
	assert.Equal(t, "250.000", CurrencyAbs(dec("-250000")))
	assert.Equal(t, Dash, CurrencyOrDash(decimal.Zero))
	assert.Equal(t, "5.500", CurrencyOrDash(dec("5500")))
}

func TestPercentages(t *testing.T) {
	assert.Equal(t, "12.50%", Percent(dec("12.5")))
	assert.Equal(t, "0.00%", Percent(decimal.Zero))
	assert.Equal(t, "12.5%", PercentRaw(dec("12.5")))
	assert.Equal(t, "12.35%", Ratio(dec("0.12345")))

	assert.Equal(t, "10.00%", Percent(ProfitPercent(dec("100000"), dec("1000000"))))
	assert.True(t, ProfitPercent(dec("5"), decimal.Zero).IsZero())
}

func TestOrDash(t *testing.T) {
	assert.Equal(t, Dash, OrDash("   "))
	assert.Equal(t, "rut tien", OrDash("rut tien"))
}
