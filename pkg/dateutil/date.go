package dateutil

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DateFormat is the canonical ISO-8601 representation of a LocalDate.
const DateFormat = "2006-01-02"

// MonthFormat is the layout of monthly period keys.
const MonthFormat = "2006-01"

// readFormats are tried in order by Parse. The lenient one allows 2025-7-1.
var readFormats = []string{DateFormat, "2006-1-2", MonthFormat}

// LocalDate is a calendar date with day granularity and no time zone.
// The zero value is "no date".
type LocalDate struct {
	y int
	m time.Month
	d int
}

// New returns a normalized LocalDate (so New(2025, 13, 1) is 2026-01-01).
func New(year int, month time.Month, day int) LocalDate {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime drops the clock and zone of t, keeping its calendar date.
func FromTime(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{y, m, d}
}

// Today returns the current local calendar date.
func Today() LocalDate { return FromTime(time.Now()) }

// Time returns midnight UTC of the date.
func (d LocalDate) Time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

func (d LocalDate) Year() int         { return d.y }
func (d LocalDate) Month() time.Month { return d.m }
func (d LocalDate) Day() int          { return d.d }

// IsZero reports whether d is the zero value.
func (d LocalDate) IsZero() bool { return d == LocalDate{} }

// Compare returns -1, 0 or +1 depending on whether d is before, equal or after x.
func (d LocalDate) Compare(x LocalDate) int {
	switch {
	case d.y != x.y:
		return cmpInt(d.y, x.y)
	case d.m != x.m:
		return cmpInt(int(d.m), int(x.m))
	default:
		return cmpInt(d.d, x.d)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

func (d LocalDate) Before(x LocalDate) bool { return d.Compare(x) < 0 }
func (d LocalDate) After(x LocalDate) bool  { return d.Compare(x) > 0 }
func (d LocalDate) Equal(x LocalDate) bool  { return d.Compare(x) == 0 }

// AddDays returns the date n days later (or earlier when n < 0).
func (d LocalDate) AddDays(n int) LocalDate { return New(d.y, d.m, d.d+n) }

// AddMonths adds n calendar months, clamping the day to the target month's length
// (2025-01-31 + 1 month is 2025-02-28, not March 3rd).
func (d LocalDate) AddMonths(n int) LocalDate {
	first := New(d.y, d.m+time.Month(n), 1)
	day := d.d
	if last := DaysInMonth(first.y, first.m); day > last {
		day = last
	}
	return LocalDate{first.y, first.m, day}
}

// AddYears adds n calendar years with the same clamping rule as AddMonths.
func (d LocalDate) AddYears(n int) LocalDate { return d.AddMonths(12 * n) }

// StartOfMonth returns the first day of d's month.
func (d LocalDate) StartOfMonth() LocalDate { return LocalDate{d.y, d.m, 1} }

// EndOfMonth returns the last day of d's month.
func (d LocalDate) EndOfMonth() LocalDate { return LocalDate{d.y, d.m, DaysInMonth(d.y, d.m)} }

// MonthIndex is a monotonic month counter (year*12 + month-1), handy for month arithmetic.
func (d LocalDate) MonthIndex() int { return d.y*12 + int(d.m) - 1 }

// FromMonthIndex is the inverse of MonthIndex; it returns the first day of that month.
func FromMonthIndex(i int) LocalDate {
	y := i / 12
	m := i % 12
	if m < 0 {
		m += 12
		y--
	}
	return LocalDate{y, time.Month(m + 1), 1}
}

// String formats the date as YYYY-MM-DD.
func (d LocalDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(DateFormat)
}

// Format formats the date with a time layout.
func (d LocalDate) Format(layout string) string { return d.Time().Format(layout) }

// Parse reads a date in YYYY-MM-DD form. It also accepts single digit months and days
// and the month-only form YYYY-MM (meaning the first of the month).
func Parse(str string) (LocalDate, error) {
	var lastErr error
	for _, layout := range readFormats {
		t, err := time.Parse(layout, str)
		if err == nil {
			return FromTime(t), nil
		}
		lastErr = err
	}
	return LocalDate{}, fmt.Errorf("invalid date %q want format %q: %w", str, DateFormat, lastErr)
}

// MustParse is like Parse but panics on error.
func MustParse(str string) LocalDate {
	d, err := Parse(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// MarshalJSON writes the date as a JSON string, or null for the zero date.
func (d LocalDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a JSON string date. null and "" give the zero date.
func (d *LocalDate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = LocalDate{}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	return d.set(str)
}

// MarshalYAML writes the date as a plain YAML scalar.
func (d LocalDate) MarshalYAML() (interface{}, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// UnmarshalYAML reads the raw scalar so that unquoted 2025-01-01 (a YAML timestamp) works too.
func (d *LocalDate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	if value.Tag == "!!null" {
		*d = LocalDate{}
		return nil
	}
	return d.set(value.Value)
}

func (d *LocalDate) set(str string) error {
	if str == "" {
		*d = LocalDate{}
		return nil
	}
	parsed, err := Parse(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

var (
	_ json.Marshaler   = LocalDate{}
	_ json.Unmarshaler = (*LocalDate)(nil)
	_ yaml.Marshaler   = LocalDate{}
	_ yaml.Unmarshaler = (*LocalDate)(nil)
)
