package calculation

import (
	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
)

// IsScheduled reports whether a recurrence has an occurrence in the month starting at month.
// A one-off is scheduled in the month of its date. A recurring event is scheduled in every
// month m with start <= m <= end (month granularity, end inclusive) where
// (m - start) is a multiple of the frequency step.
func IsScheduled(r domain.Recurrence, month dateutil.LocalDate) bool {
	idx := month.MonthIndex()
	switch r.Kind {
	case domain.Once:
		return !r.Date.IsZero() && r.Date.MonthIndex() == idx
	case domain.Recurring:
		step := r.Frequency.Months()
		if step == 0 || r.StartDate.IsZero() {
			return false
		}
		start := r.StartDate.MonthIndex()
		if idx < start {
			return false
		}
		if r.EndDate != nil && idx > r.EndDate.MonthIndex() {
			return false
		}
		return (idx-start)%step == 0
	default:
		return false
	}
}

// Occurrences counts the scheduled months of r inside [from, to]
func Occurrences(r domain.Recurrence, from, to dateutil.LocalDate) int {
	n := 0
	for _, m := range dateutil.MonthsBetween(from, to) {
		if IsScheduled(r, m) {
			n++
		}
	}
	return n
}

func onceAt(date dateutil.LocalDate) domain.Recurrence {
	return domain.Recurrence{Kind: domain.Once, Date: date}
}
