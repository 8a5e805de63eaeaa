package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDates_DMY(t *testing.T) {
	d := NewDates(nil)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"compact", "20250626", "26/06/2025"},
		{"iso without zone", "2025-09-04T12:01:07", "04/09/2025"},
		{"iso with fraction", "2025-09-04T12:01:07.123", "04/09/2025"},
		{"iso utc late evening crosses midnight", "2025-09-04T20:30:00Z", "05/09/2025"},
		{"iso date only", "2025-01-31", "31/01/2025"},
		{"us slash with time", "6/26/2025 12:00:00 AM", "26/06/2025"},
		{"us slash without time", "12/1/2024", "01/12/2024"},
		{"already dmy", "15/06/2025", "15/06/2025"},
		{"ms epoch", "/Date(1750896000000)/", "26/06/2025"},
		{"garbage passes through", "soon", "soon"},
		{"empty passes through", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.DMY(tt.in))
		})
	}
}

func TestDates_CompactRoundTrip(t *testing.T) {
	d := NewDates(nil)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, DefaultLocation)

	for i := 0; i < 800; i++ {
		day := start.AddDate(0, 0, i)
		compact := ToCompact(day)

		dmy := d.DMY(compact)
		require.Equal(t, ToDMY(day), dmy)
		require.Equal(t, dmy, CompactToDMY(compact))

		back, err := d.ParseDMY(dmy)
		require.NoError(t, err)
		require.Equal(t, compact, ToCompact(back))
		require.Equal(t, compact, DMYToCompact(dmy))
	}
}

func TestDates_Event(t *testing.T) {
	d := NewDates(nil)
	ms := "/Date(1750896000000)/"
	bad := "2025-06-26"
	blank := ""

	assert.Equal(t, "26/06/2025", d.Event(&ms))
	assert.Equal(t, NotAvailable, d.Event(nil))
	assert.Equal(t, NotAvailable, d.Event(&blank))
	assert.Equal(t, NotAvailable, d.Event(&bad))
}

func TestDates_ThisWeek(t *testing.T) {
	d := NewDates(nil)

	tests := []struct {
		now    time.Time
		monday string
		sunday string
	}{
		{time.Date(2025, 8, 20, 10, 0, 0, 0, DefaultLocation), "2025-08-18", "2025-08-24"}, // Wednesday
		{time.Date(2025, 8, 18, 0, 0, 0, 0, DefaultLocation), "2025-08-18", "2025-08-24"},  // Monday
		{time.Date(2025, 8, 24, 23, 0, 0, 0, DefaultLocation), "2025-08-18", "2025-08-24"}, // Sunday
		{time.Date(2025, 3, 2, 9, 0, 0, 0, DefaultLocation), "2025-02-24", "2025-03-02"},   // Sunday across a month
	}
	for _, tt := range tests {
		mon, sun := d.ThisWeek(tt.now)
		assert.Equal(t, tt.monday, ToISODate(mon), tt.now.String())
		assert.Equal(t, tt.sunday, ToISODate(sun), tt.now.String())
	}
}

func TestDates_LastMonths(t *testing.T) {
	d := NewDates(nil)
	from, to := d.LastMonths(time.Date(2025, 8, 20, 0, 0, 0, 0, DefaultLocation), 3)
	assert.Equal(t, "20250520", ToCompact(from))
	assert.Equal(t, "20250820", ToCompact(to))
}

func TestDates_ParseErrors(t *testing.T) {
	d := NewDates(time.UTC)
	_, err := d.ParseMSDate("1750896000000")
	assert.Error(t, err)
	_, err = d.Parse("")
	assert.Error(t, err)
	_, err = d.ParseISO("26-06-2025")
	assert.Error(t, err)
	assert.Equal(t, time.UTC, d.Location())
}

func TestReshapeHelpers(t *testing.T) {
	assert.Equal(t, "2025063", CompactToDMY("2025063"))
	assert.Equal(t, "20250506", DMYToCompact("06/05/2025"))
	assert.Equal(t, "2025-05-06", DMYToCompact("2025-05-06"))
}
