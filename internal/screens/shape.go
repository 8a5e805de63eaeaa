package screens

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/brokercheck/internal/models"
)

func nonNegative(name string, d decimal.Decimal) models.Check {
	return models.Check{Name: name + " >= 0", Passed: !d.IsNegative(), Detail: d.String()}
}

func within(name string, d decimal.Decimal, lo, hi int64) models.Check {
	ok := d.GreaterThanOrEqual(decimal.NewFromInt(lo)) && d.LessThanOrEqual(decimal.NewFromInt(hi))
	return models.Check{Name: fmt.Sprintf("%d <= %s <= %d", lo, name, hi), Passed: ok, Detail: d.String()}
}

func presentCount(name string, n int) models.Check {
	return models.Check{Name: name + " >= 0", Passed: n >= 0, Detail: fmt.Sprintf("%d rows", n)}
}
