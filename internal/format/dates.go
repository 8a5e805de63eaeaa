package format

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date layouts seen on the wire and in the UI.
const (
	LayoutCompact = "20060102"
	LayoutDMY     = "02/01/2006"
	LayoutISODate = "2006-01-02"
	LayoutUSSlash = "1/2/2006 3:04:05 PM"
)

// NotAvailable is rendered for missing event dates.
const NotAvailable = "N/A"

// DefaultLocation is Indochina Time (UTC+7, no DST).
var DefaultLocation = time.FixedZone("ICT", 7*60*60)

var (
	msDateRe  = regexp.MustCompile(`/Date\((-?\d+)\)/`)
	compactRe = regexp.MustCompile(`^\d{8}$`)
	dmyRe     = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	usSlashRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}`)
)

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	LayoutISODate,
}

// Dates converts API date shapes to DD/MM/YYYY in a fixed location.
type Dates struct {
	loc *time.Location
}

// NewDates returns a converter for loc, or DefaultLocation when loc is nil.
func NewDates(loc *time.Location) *Dates {
	if loc == nil {
		loc = DefaultLocation
	}
	return &Dates{loc: loc}
}

// Location returns the converter's zone.
func (d *Dates) Location() *time.Location {
	return d.loc
}

// ParseCompact parses YYYYMMDD.
func (d *Dates) ParseCompact(s string) (time.Time, error) {
	return time.ParseInLocation(LayoutCompact, strings.TrimSpace(s), d.loc)
}

// ParseDMY parses DD/MM/YYYY.
func (d *Dates) ParseDMY(s string) (time.Time, error) {
	return time.ParseInLocation(LayoutDMY, strings.TrimSpace(s), d.loc)
}

// ParseISO parses ISO 8601 timestamps. Zone-less values are read in the converter's location.
func (d *Dates) ParseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, s, d.loc); err == nil {
			return t.In(d.loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO 8601 date: %q", s)
}

// ParseUSSlash parses "6/26/2025 12:00:00 AM", with or without the time part.
func (d *Dates) ParseUSSlash(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(LayoutUSSlash, s, d.loc); err == nil {
		return t, nil
	}
	return time.ParseInLocation("1/2/2006", s, d.loc)
}

// ParseMSDate parses the "/Date(ms)/" marker.
func (d *Dates) ParseMSDate(s string) (time.Time, error) {
	m := msDateRe.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, fmt.Errorf("not a /Date(ms)/ value: %q", s)
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad epoch in %q: %w", s, err)
	}
	return time.UnixMilli(ms).In(d.loc), nil
}

// Parse detects the shape of s and parses it.
func (d *Dates) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return time.Time{}, fmt.Errorf("empty date")
	case msDateRe.MatchString(s):
		return d.ParseMSDate(s)
	case compactRe.MatchString(s):
		return d.ParseCompact(s)
	case dmyRe.MatchString(s):
		return d.ParseDMY(s)
	case usSlashRe.MatchString(s):
		return d.ParseUSSlash(s)
	default:
		return d.ParseISO(s)
	}
}

// DMY normalizes any supported shape to DD/MM/YYYY. Unparseable input is returned unchanged;
// a DD/MM/YYYY string is ambiguous with US slash dates and is always read day first.
func (d *Dates) DMY(s string) string {
	t, err := d.Parse(s)
	if err != nil {
		return s
	}
	return t.Format(LayoutDMY)
}

// Event renders an optional "/Date(ms)/" value, NotAvailable when absent or malformed.
func (d *Dates) Event(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return NotAvailable
	}
	t, err := d.ParseMSDate(*s)
	if err != nil {
		return NotAvailable
	}
	return t.Format(LayoutDMY)
}

// ThisWeek returns Monday and Sunday of the week containing now.
func (d *Dates) ThisWeek(now time.Time) (time.Time, time.Time) {
	now = now.In(d.loc)
	offset := int(now.Weekday()) - 1
	if now.Weekday() == time.Sunday {
		offset = 6
	}
	y, m, day := now.Date()
	monday := time.Date(y, m, day-offset, 0, 0, 0, 0, d.loc)
	return monday, monday.AddDate(0, 0, 6)
}

// LastMonths returns [now-n months, now] as calendar dates.
func (d *Dates) LastMonths(now time.Time, n int) (time.Time, time.Time) {
	now = now.In(d.loc)
	return now.AddDate(0, -n, 0), now
}

// ToCompact renders t as YYYYMMDD for API query parameters.
func ToCompact(t time.Time) string {
	return t.Format(LayoutCompact)
}

// ToISODate renders t as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(LayoutISODate)
}

// ToDMY renders t as DD/MM/YYYY.
func ToDMY(t time.Time) string {
	return t.Format(LayoutDMY)
}

// CompactToDMY reshapes YYYYMMDD to DD/MM/YYYY without calendar validation.
// Input of any other length is returned unchanged.
func CompactToDMY(s string) string {
	if len(s) != 8 {
		return s
	}
	return s[6:8] + "/" + s[4:6] + "/" + s[0:4]
}

// DMYToCompact reshapes DD/MM/YYYY to YYYYMMDD, the form the profile screen shows.
func DMYToCompact(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return s
	}
	return parts[2] + parts[1] + parts[0]
}

var defaultDates = NewDates(nil)

// DMY normalizes s with DefaultLocation.
func DMY(s string) string {
	return defaultDates.DMY(s)
}
