package rules

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMonthsDifference(t *testing.T) {
	tests := []struct {
		from, to time.Time
		want     int
	}{
		{day(2025, 3, 1), day(2025, 5, 31), 2},
		{day(2025, 1, 1), day(2025, 5, 5), 4},
		{day(2025, 1, 15), day(2025, 4, 14), 2},
		{day(2025, 1, 15), day(2025, 4, 15), 3},
		{day(2024, 11, 20), day(2025, 2, 20), 3},
		{day(2025, 6, 10), day(2025, 6, 10), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthsDifference(tt.from, tt.to), "%s..%s", tt.from.Format("2006-01-02"), tt.to.Format("2006-01-02"))
	}
}

func TestValidateDMYRange_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantMsg string
	}{
		{"three calendar months accepted", "01/03/2025", "31/05/2025", ""},
		{"same day accepted", "10/06/2025", "10/06/2025", ""},
		{"exactly three months accepted", "01/01/2025", "01/04/2025", ""},
		{"to before from rejected", "15/06/2025", "10/06/2025", MsgToBeforeFrom},
		{"over three months rejected", "01/01/2025", "05/05/2025", MsgRangeTooLong},
		{"unparseable from", "2025-01-01", "05/05/2025", MsgBadDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDMYRange(tt.from, tt.to)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())

			var v *Violation
			require.True(t, errors.As(err, &v))
		})
	}
}

func TestValidateDateRange_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
	assert.NoError(t, ValidateDateRange(from, to, MaxRangeMonths))
}
