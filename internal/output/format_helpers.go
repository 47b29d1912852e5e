package output

import (
	"strconv"
	"strings"

	"github.com/rpgo/networth-planner/internal/domain"
	pdecimal "github.com/rpgo/networth-planner/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats an amount the way the currency is written, e.g. "$1,234.57".
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal, currency string) string {
	return pdecimal.NewMoney(amount, currency).Format()
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(v int) string { return strconv.Itoa(v) }

func boolToString(v bool) string { return strconv.FormatBool(v) }

// firedNames joins the names of fired events in firing order
func firedNames(events []domain.FiredEvent) string {
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.Name
	}
	return strings.Join(names, "; ")
}

func joinLabels(labels []string) string { return strings.Join(labels, "; ") }
