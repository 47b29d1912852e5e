package dateutil

import (
	"time"
)

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days of a calendar month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthsUntil returns the number of whole calendar months from the month of `from`
// to the month of `to` (negative when to is earlier).
func MonthsUntil(from, to LocalDate) int {
	return to.MonthIndex() - from.MonthIndex()
}

// Quarter returns the quarter (1-4) containing month
func Quarter(month time.Month) int {
	return (int(month)-1)/3 + 1
}

// EndOfYear returns the last day of the year for a given date
func EndOfYear(date LocalDate) LocalDate {
	return New(date.Year(), time.December, 31)
}

// BeginningOfYear returns the first day of the year for a given date
func BeginningOfYear(date LocalDate) LocalDate {
	return New(date.Year(), time.January, 1)
}

// Latest returns the later of two dates
func Latest(a, b LocalDate) LocalDate {
	if a.After(b) {
		return a
	}
	return b
}

// Earliest returns the earlier of two dates
func Earliest(a, b LocalDate) LocalDate {
	if a.Before(b) {
		return a
	}
	return b
}
