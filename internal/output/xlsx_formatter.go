package output

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	scenarioSheet   = "Scenario"
	projectionSheet = "Projection"
)

// XLSXFormatter builds a workbook with a summary sheet and one sheet per section of the report.
// Amounts are written as numbers so they can be charted.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string      { return "xlsx" }
func (x XLSXFormatter) Extension() string { return "xlsx" }

func (x XLSXFormatter) Format(r *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	summary := [][]interface{}{
		{r.Title},
		{},
		{"Currency", r.Currency},
		{"Scale", r.Scale},
	}
	if !r.GeneratedAt.IsZero() {
		summary = append(summary, []interface{}{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")})
	}
	if r.Scenario != nil {
		s := r.Scenario.Summary
		summary = append(summary,
			[]interface{}{"Initial Balance", num(s.InitialBalance)},
			[]interface{}{"Final Balance", num(s.FinalBalance)},
			[]interface{}{"Total Income", num(s.TotalIncome)},
			[]interface{}{"Total Expenses", num(s.TotalExpenses)},
			[]interface{}{"Dips Below Initial", boolToString(s.DipsBelowInitial)},
		)
	}
	if r.Projection != nil {
		a := r.Projection.Analytics
		summary = append(summary,
			[]interface{}{"Mode", string(r.Projection.Result.Mode)},
			[]interface{}{"Initial Net Worth", num(a.InitialNetWorth)},
			[]interface{}{"Final Net Worth", num(a.FinalNetWorth)},
			[]interface{}{"Lowest Net Worth", num(a.LowestNetWorth)},
			[]interface{}{"Highest Net Worth", num(a.HighestNetWorth)},
		)
	}
	for _, line := range Highlights(r) {
		summary = append(summary, []interface{}{"Highlight", line})
	}
	for _, line := range r.Assumptions {
		summary = append(summary, []interface{}{"Assumption", line})
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return nil, err
	}

	if r.Scenario != nil {
		rows := [][]interface{}{{"Period", "Income", "Expenses", "Cashflow", "Balance", "Events"}}
		res := r.Scenario.Result
		for i := 0; i < res.Len(); i++ {
			key, balance, cf := res.Period(i)
			rows = append(rows, []interface{}{key.String(), num(cf.Income()), num(cf.Expenses()), num(cf.Amount), num(balance), firedNames(cf.Events)})
		}
		if err := newSheet(f, scenarioSheet, rows); err != nil {
			return nil, err
		}
	}

	if r.Projection != nil {
		res := r.Projection.Result
		header := []interface{}{"Period", "Net Worth", "Cash Buffer", "Income", "Expenses", "Net Cashflow"}
		if len(res.Points) > 0 {
			for _, cv := range res.Points[0].Categories {
				header = append(header, cv.CategoryName)
			}
		}
		banded := len(res.Bands) == len(res.Points) && len(res.Bands) > 0
		if banded {
			header = append(header, "P10", "P50", "P90")
		}
		header = append(header, "Events")

		rows := [][]interface{}{header}
		for i, p := range res.Points {
			row := []interface{}{p.Period.String(), num(p.NetWorth), num(p.CashBuffer), num(p.Income), num(p.Expenses), num(p.NetCashflow)}
			for _, cv := range p.Categories {
				row = append(row, num(cv.Value))
			}
			if banded {
				row = append(row, num(res.Bands[i].P10), num(res.Bands[i].P50), num(res.Bands[i].P90))
			}
			row = append(row, joinLabels(p.Events))
			rows = append(rows, row)
		}
		if err := newSheet(f, projectionSheet, rows); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func newSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func num(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }
