package output

import (
	"fmt"
	"strings"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/shopspring/decimal"
)

// GenerateAssumptions lists the modeling assumptions of a plan for detailed outputs
func GenerateAssumptions(plan *domain.PlanInputs, currency string) []string {
	var out []string
	for _, c := range plan.CategoryAssumptions {
		line := fmt.Sprintf("%s: %.1f%% expected annual return (variance %s)", c.CategoryName, pct(c.ExpectedAnnualReturn), c.Variance.String())
		if c.ReturnSeries != "" {
			line += fmt.Sprintf(", history series %q", c.ReturnSeries)
		}
		out = append(out, line)
	}

	ie := plan.IncomeExpense
	out = append(out,
		fmt.Sprintf("Annual income: %s, annual expenses: %s", FormatCurrency(ie.AnnualIncome.Mean, currency), FormatCurrency(ie.AnnualExpenses.Mean, currency)),
		fmt.Sprintf("Reinvestment: %.1f%% of monthly surplus%s", pct(ie.ReinvestmentRate), allocationText(ie)),
		fmt.Sprintf("Horizon: %d years from %s", plan.TimeHorizonYears, plan.StartDate),
	)
	return out
}

func allocationText(ie domain.IncomeExpenseAssumption) string {
	if len(ie.ReinvestmentAllocation) == 0 {
		return ""
	}
	parts := make([]string, len(ie.ReinvestmentAllocation))
	for i, a := range ie.ReinvestmentAllocation {
		parts[i] = fmt.Sprintf("%s %.1f%%", a.CategoryID, pct(a.Percentage))
	}
	text := " (" + strings.Join(parts, ", ") + ")"
	if ie.RemainderCategoryID != "" {
		text += ", remainder to " + ie.RemainderCategoryID
	}
	return text
}

func pct(d decimal.Decimal) float64 { return d.Mul(decimalHundred).InexactFloat64() }

var decimalHundred = decimal.NewFromInt(100)
