package output

import (
	"bytes"
	"encoding/csv"
)

// CSVFormatter writes one row per period: the scenario table, the projection table, or both
// separated by an empty line.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(r *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	if r.Scenario != nil {
		if err := w.Write([]string{"Period", "Income", "Expenses", "Cashflow", "Balance", "Events"}); err != nil {
			return nil, err
		}
		res := r.Scenario.Result
		for i := 0; i < res.Len(); i++ {
			key, balance, cf := res.Period(i)
			row := []string{
				key.String(),
				cf.Income().StringFixed(2),
				cf.Expenses().StringFixed(2),
				cf.Amount.StringFixed(2),
				balance.StringFixed(2),
				firedNames(cf.Events),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	if r.Projection != nil {
		if r.Scenario != nil {
			w.Flush()
			buf.WriteString("\n")
		}
		res := r.Projection.Result
		header := []string{"Period", "Date", "NetWorth", "CashBuffer", "Income", "Expenses", "EventsAmount", "SalesProceeds", "CapitalGainsTax", "NetCashflow", "Reinvested"}
		if len(res.Points) > 0 {
			for _, cv := range res.Points[0].Categories {
				header = append(header, cv.CategoryName)
			}
		}
		header = append(header, "Events")
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, p := range res.Points {
			row := []string{
				p.Period.String(),
				p.Date.String(),
				p.NetWorth.StringFixed(2),
				p.CashBuffer.StringFixed(2),
				p.Income.StringFixed(2),
				p.Expenses.StringFixed(2),
				p.EventsAmount.StringFixed(2),
				p.SalesProceeds.StringFixed(2),
				p.CapitalGainsTax.StringFixed(2),
				p.NetCashflow.StringFixed(2),
				p.Reinvested.StringFixed(2),
			}
			for _, cv := range p.Categories {
				row = append(row, cv.Value.StringFixed(2))
			}
			row = append(row, joinLabels(p.Events))
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
