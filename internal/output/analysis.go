package output

import (
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// Highlights picks out the lines a reader should not miss in a report.
// Extracted from embedded console logic for testability.
func Highlights(r *Report) []string {
	var out []string
	if r.Scenario != nil {
		s := r.Scenario.Summary
		out = append(out, fmt.Sprintf("Balance moves from %s to %s (%s)",
			FormatCurrency(s.InitialBalance, r.Currency), FormatCurrency(s.FinalBalance, r.Currency),
			changeText(s.NetChange, s.NetChangePercent, s.NetChangePercentDefined, r.Currency)))
		if s.DipsBelowInitial {
			out = append(out, fmt.Sprintf("Balance dips below its starting point, lowest %s in %s", FormatCurrency(s.LowestBalance, r.Currency), s.LowestPeriod))
		}
	}
	if r.Projection != nil {
		a := r.Projection.Analytics
		out = append(out, fmt.Sprintf("Net worth moves from %s to %s (%s)",
			FormatCurrency(a.InitialNetWorth, r.Currency), FormatCurrency(a.FinalNetWorth, r.Currency),
			changeText(a.NetChange, a.NetChangePercent, a.NetChangePercentDefined, r.Currency)))
		if a.DipsBelowInitial {
			out = append(out, fmt.Sprintf("Net worth dips below its starting point, lowest %s in %s", FormatCurrency(a.LowestNetWorth, r.Currency), a.LowestPeriod))
		}
		if top, ok := largestCategory(a.Categories); ok {
			out = append(out, fmt.Sprintf("%s is the largest holding at %s of final net worth", top.CategoryName, FormatPercentage(top.Share.Mul(decimalHundred))))
		}
		if d := r.Projection.Result.FinalDistribution; d != nil {
			out = append(out, fmt.Sprintf("80%% of %d trials end between %s and %s", r.Projection.Result.Trials, FormatCurrency(d.P10, r.Currency), FormatCurrency(d.P90, r.Currency)))
		}
	}
	return out
}

func changeText(change, percent decimal.Decimal, defined bool, currency string) string {
	sign := ""
	if change.IsPositive() {
		sign = "+"
	}
	if !defined {
		return sign + FormatCurrency(change, currency)
	}
	return fmt.Sprintf("%s%s, %s%s", sign, FormatCurrency(change, currency), sign, FormatPercentage(percent))
}

func largestCategory(categories []domain.CategoryBreakdown) (domain.CategoryBreakdown, bool) {
	if len(categories) == 0 {
		return domain.CategoryBreakdown{}, false
	}
	best := categories[0]
	for _, c := range categories[1:] {
		if c.Share.GreaterThan(best.Share) {
			best = c
		}
	}
	return best, true
}
