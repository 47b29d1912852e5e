package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/networth-planner/internal/domain"
)

// ConsoleFormatter renders a plain text report for the terminal.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(r *Report) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "NET WORTH REPORT: %s\n", r.Title)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Currency: %s  Scale: %s\n", r.Currency, r.Scale)
	if !r.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	}

	if r.Scenario != nil {
		fmt.Fprintln(&buf)
		c.writeScenario(&buf, r)
	}
	if r.Projection != nil {
		fmt.Fprintln(&buf)
		c.writeProjection(&buf, r)
	}

	if lines := Highlights(r); len(lines) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "HIGHLIGHTS")
		for _, l := range lines {
			fmt.Fprintf(&buf, "  - %s\n", l)
		}
	}
	if len(r.Assumptions) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "ASSUMPTIONS")
		for _, l := range r.Assumptions {
			fmt.Fprintf(&buf, "  - %s\n", l)
		}
	}
	return buf.Bytes(), nil
}

func (c ConsoleFormatter) writeScenario(buf *bytes.Buffer, r *Report) {
	run := r.Scenario
	fmt.Fprintf(buf, "SCENARIO: %s\n", run.Name)
	fmt.Fprintf(buf, "%-10s %16s %16s  %s\n", "Period", "Cashflow", "Balance", "Events")
	res := run.Result
	for i := 0; i < res.Len(); i++ {
		key, balance, cf := res.Period(i)
		fmt.Fprintf(buf, "%-10s %16s %16s  %s\n", key, FormatCurrency(cf.Amount, r.Currency), FormatCurrency(balance, r.Currency), firedNames(cf.Events))
	}

	s := run.Summary
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Initial Balance: %s\n", FormatCurrency(s.InitialBalance, r.Currency))
	fmt.Fprintf(buf, "Final Balance:   %s\n", FormatCurrency(s.FinalBalance, r.Currency))
	fmt.Fprintf(buf, "Net Change:      %s\n", changeText(s.NetChange, s.NetChangePercent, s.NetChangePercentDefined, r.Currency))
	fmt.Fprintf(buf, "Average Change:  %s per month\n", FormatCurrency(s.AverageChange, r.Currency))
	fmt.Fprintf(buf, "Total Income:    %s\n", FormatCurrency(s.TotalIncome, r.Currency))
	fmt.Fprintf(buf, "Total Expenses:  %s\n", FormatCurrency(s.TotalExpenses, r.Currency))
	fmt.Fprintf(buf, "Fired Events:    %d\n", s.FiredEventCount)
}

func (c ConsoleFormatter) writeProjection(buf *bytes.Buffer, r *Report) {
	res := r.Projection.Result
	fmt.Fprintf(buf, "PROJECTION: %s", res.Mode)
	if res.Mode != domain.ModeExpected {
		fmt.Fprintf(buf, " (seed %d", res.Seed)
		if res.Trials > 0 {
			fmt.Fprintf(buf, ", %d trials", res.Trials)
		}
		fmt.Fprint(buf, ")")
	}
	fmt.Fprintln(buf)

	banded := len(res.Bands) == len(res.Points) && len(res.Bands) > 0
	if banded {
		fmt.Fprintf(buf, "%-10s %18s %18s %18s %18s %16s  %s\n", "Period", "Net Worth", "P10", "P50", "P90", "Net Cashflow", "Events")
	} else {
		fmt.Fprintf(buf, "%-10s %18s %16s %16s  %s\n", "Period", "Net Worth", "Cash Buffer", "Net Cashflow", "Events")
	}
	for i, p := range res.Points {
		if banded {
			b := res.Bands[i]
			fmt.Fprintf(buf, "%-10s %18s %18s %18s %18s %16s  %s\n", p.Period,
				FormatCurrency(p.NetWorth, r.Currency), FormatCurrency(b.P10, r.Currency), FormatCurrency(b.P50, r.Currency),
				FormatCurrency(b.P90, r.Currency), FormatCurrency(p.NetCashflow, r.Currency), joinLabels(p.Events))
			continue
		}
		fmt.Fprintf(buf, "%-10s %18s %16s %16s  %s\n", p.Period,
			FormatCurrency(p.NetWorth, r.Currency), FormatCurrency(p.CashBuffer, r.Currency),
			FormatCurrency(p.NetCashflow, r.Currency), joinLabels(p.Events))
	}

	a := r.Projection.Analytics
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Initial Net Worth: %s\n", FormatCurrency(a.InitialNetWorth, r.Currency))
	fmt.Fprintf(buf, "Final Net Worth:   %s\n", FormatCurrency(a.FinalNetWorth, r.Currency))
	fmt.Fprintf(buf, "Net Change:        %s\n", changeText(a.NetChange, a.NetChangePercent, a.NetChangePercentDefined, r.Currency))
	fmt.Fprintf(buf, "Highest:           %s (%s)\n", FormatCurrency(a.HighestNetWorth, r.Currency), a.HighestPeriod)
	fmt.Fprintf(buf, "Lowest:            %s (%s)\n", FormatCurrency(a.LowestNetWorth, r.Currency), a.LowestPeriod)
	fmt.Fprintf(buf, "One-time Events:   %d totaling %s\n", a.OneTimeEventCount, FormatCurrency(a.OneTimeEventTotal, r.Currency))
	fmt.Fprintf(buf, "Recurring Events:  %d totaling %s\n", a.RecurringEventCount, FormatCurrency(a.RecurringEventTotal, r.Currency))

	if len(a.Categories) > 0 {
		fmt.Fprintln(buf)
		fmt.Fprintf(buf, "%-20s %18s %18s %18s %8s\n", "Category", "Initial", "Final", "Growth", "Share")
		for _, cat := range a.Categories {
			fmt.Fprintf(buf, "%-20s %18s %18s %18s %8s\n", cat.CategoryName,
				FormatCurrency(cat.Initial, r.Currency), FormatCurrency(cat.Final, r.Currency),
				FormatCurrency(cat.Growth, r.Currency), FormatPercentage(cat.Share.Mul(decimalHundred)))
		}
	}
}
