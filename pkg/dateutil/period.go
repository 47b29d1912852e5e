package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Granularity is the size of a calendar bucket.
type Granularity int

const (
	Monthly Granularity = iota
	Quarterly
	Yearly
)

func (g Granularity) String() string {
	switch g {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("granularity(%d)", int(g))
	}
}

// Months returns the number of months in one bucket.
func (g Granularity) Months() int {
	switch g {
	case Quarterly:
		return 3
	case Yearly:
		return 12
	default:
		return 1
	}
}

// ParseGranularity resolves a user supplied scale name.
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly", "month", "":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year", "annual", "annually":
		return Yearly, nil
	default:
		return Monthly, fmt.Errorf("unknown granularity %q", s)
	}
}

// PeriodKey identifies a calendar bucket: "2025-03", "2025-Q1" or "2025".
// Keys of the same granularity sort lexicographically in chronological order.
type PeriodKey string

func (k PeriodKey) String() string { return string(k) }

// Key returns the bucket of date at granularity g.
func Key(date LocalDate, g Granularity) PeriodKey {
	switch g {
	case Quarterly:
		return PeriodKey(fmt.Sprintf("%04d-Q%d", date.Year(), Quarter(date.Month())))
	case Yearly:
		return PeriodKey(fmt.Sprintf("%04d", date.Year()))
	default:
		return PeriodKey(fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month())))
	}
}

// MonthsBetween returns the first day of every month from start's month to end's month,
// inclusive. It is empty when end is before start.
func MonthsBetween(start, end LocalDate) []LocalDate {
	if end.Before(start) {
		return nil
	}
	first, last := start.MonthIndex(), end.MonthIndex()
	months := make([]LocalDate, 0, last-first+1)
	for i := first; i <= last; i++ {
		months = append(months, FromMonthIndex(i))
	}
	return months
}

// PeriodsBetween returns the ordered keys of every bucket touched by [start, end].
// It is empty when end is before start.
func PeriodsBetween(start, end LocalDate, g Granularity) []PeriodKey {
	var keys []PeriodKey
	for _, m := range MonthsBetween(start, end) {
		k := Key(m, g)
		if n := len(keys); n > 0 && keys[n-1] == k {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

// Coarsen maps a monthly key onto its containing bucket at granularity g.
// Keys that do not parse are returned unchanged.
func Coarsen(k PeriodKey, g Granularity) PeriodKey {
	start, _, err := ParsePeriodKey(k)
	if err != nil {
		return k
	}
	return Key(start, g)
}

// ParsePeriodKey returns the first day of the bucket and its granularity.
func ParsePeriodKey(k PeriodKey) (LocalDate, Granularity, error) {
	s := string(k)
	switch {
	case len(s) == 4:
		y, err := strconv.Atoi(s)
		if err != nil {
			return LocalDate{}, Yearly, fmt.Errorf("invalid period key %q: %w", s, err)
		}
		return New(y, time.January, 1), Yearly, nil
	case len(s) == 7 && s[5] == 'Q':
		y, err := strconv.Atoi(s[:4])
		if err != nil {
			return LocalDate{}, Quarterly, fmt.Errorf("invalid period key %q: %w", s, err)
		}
		q, err := strconv.Atoi(s[6:])
		if err != nil || q < 1 || q > 4 {
			return LocalDate{}, Quarterly, fmt.Errorf("invalid quarter in period key %q", s)
		}
		return New(y, time.Month((q-1)*3+1), 1), Quarterly, nil
	default:
		t, err := time.Parse(MonthFormat, s)
		if err != nil {
			return LocalDate{}, Monthly, fmt.Errorf("invalid period key %q: %w", s, err)
		}
		return FromTime(t), Monthly, nil
	}
}
