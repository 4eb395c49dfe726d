package core

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultUnitRate is the currency earned per bottle.
var DefaultUnitRate = decimal.RequireFromString("0.10")

var ErrInvalidRate = errors.New("invalid unit rate")

// Money is a currency amount kept as an exact decimal.
type Money struct {
	Amount decimal.Decimal
}

// ParseRate parses a non-negative per-bottle rate such as "0.10".
func ParseRate(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidRate
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero, ErrInvalidRate
	}
	return d, nil
}

// Earn returns the money earned for bottles at the given rate.
func Earn(bottles int64, rate decimal.Decimal) Money {
	return Money{Amount: decimal.NewFromInt(bottles).Mul(rate)}
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount)}
}

// String formats with exactly two fractional digits, e.g. "0.50".
func (m Money) String() string {
	return m.Amount.StringFixed(2)
}

// Display prefixes the amount with a dollar sign.
func (m Money) Display() string {
	return "$" + m.String()
}

func (m Money) Equal(o Money) bool {
	return m.Amount.Equal(o.Amount)
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
