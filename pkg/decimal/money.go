package decimal

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a plan does not name one.
const DefaultCurrency = "USD"

// Money is an amount tagged with an ISO-4217 currency code.
type Money struct {
	decimal.Decimal
	Currency string
}

// NewMoney creates a new Money instance from a decimal and a currency code.
// An empty code means DefaultCurrency.
func NewMoney(amount decimal.Decimal, currency string) Money {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = DefaultCurrency
	}
	return Money{Decimal: amount, Currency: code}
}

// NewMoneyFromFloat creates a new Money instance from a float64
func NewMoneyFromFloat(value float64, currency string) Money {
	return NewMoney(decimal.NewFromFloat(value), currency)
}

// NewMoneyFromString creates a new Money instance from a string
func NewMoneyFromString(value, currency string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d, currency), nil
}

// Round rounds the amount to the currency's minor unit
func (m Money) Round() Money {
	return Money{Decimal: m.Decimal.Round(m.fraction()), Currency: m.Currency}
}

// Add adds another amount of the same currency
func (m Money) Add(other Money) Money {
	return Money{Decimal: m.Decimal.Add(other.Decimal), Currency: m.Currency}
}

// Sub subtracts another amount of the same currency
func (m Money) Sub(other Money) Money {
	return Money{Decimal: m.Decimal.Sub(other.Decimal), Currency: m.Currency}
}

// String returns the plain amount with the currency's number of decimals
func (m Money) String() string {
	return m.Decimal.StringFixed(m.fraction())
}

// Format renders the amount the way the currency is written, e.g. "$1,234.50" or "1.234,50 €".
// Unknown codes fall back to "1234.50 XYZ".
func (m Money) Format() string {
	cur := money.GetCurrency(m.Currency)
	if cur == nil {
		return m.String() + " " + m.Currency
	}
	minor := m.Decimal.Mul(decimal.New(1, int32(cur.Fraction))).Round(0).IntPart()
	return money.New(minor, m.Currency).Display()
}

// fraction returns the number of minor-unit digits of the currency (2 when unknown).
func (m Money) fraction() int32 {
	if cur := money.GetCurrency(m.Currency); cur != nil {
		return int32(cur.Fraction)
	}
	return 2
}

// Zero returns a zero amount in the given currency
func Zero(currency string) Money {
	return NewMoney(decimal.Zero, currency)
}
