package rules

import (
	"time"

	"github.com/bobmcallan/brokercheck/internal/format"
)

// Maximum span, in months, the history filters accept.
const MaxRangeMonths = 3

const (
	MsgToBeforeFrom = "To date must be >= from date"
	MsgRangeTooLong = "Date range must be within 3 months"
	MsgNoRecords    = "No matching records found"
	MsgBadDate      = "Invalid date"
)

// MonthsDifference counts whole calendar months from from to to,
// borrowing a month when to's day-of-month is earlier than from's.
func MonthsDifference(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

// ValidateDateRange rejects ranges where to precedes from or that span more than maxMonths.
// Equal dates are accepted.
func ValidateDateRange(from, to time.Time, maxMonths int) error {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	fromDay := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	toDay := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	if toDay.Before(fromDay) {
		return violation("toDate", MsgToBeforeFrom)
	}
	if MonthsDifference(fromDay, toDay) > maxMonths {
		return violation("toDate", MsgRangeTooLong)
	}
	return nil
}

// ValidateDMYRange parses two DD/MM/YYYY strings and validates them with the default span.
func ValidateDMYRange(from, to string) error {
	dates := format.NewDates(time.UTC)
	f, err := dates.ParseDMY(from)
	if err != nil {
		return violation("fromDate", MsgBadDate)
	}
	t, err := dates.ParseDMY(to)
	if err != nil {
		return violation("toDate", MsgBadDate)
	}
	return ValidateDateRange(f, t, MaxRangeMonths)
}
