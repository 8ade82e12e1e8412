package budget

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fraction digits kept for monetary amounts.
// Rounding at this scale is always half-up (away from zero on a tie).
const MoneyScale int32 = 2

// RoundMoney rounds d to MoneyScale digits, half-up.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// divideMoney divides d by n and rounds the quotient to MoneyScale digits, half-up.
func divideMoney(d decimal.Decimal, n int64) decimal.Decimal {
	return d.DivRound(decimal.NewFromInt(n), MoneyScale)
}

// FormatMoney renders d with exactly MoneyScale fraction digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}

// ParseMoney parses a non-negative decimal amount. An empty string is zero.
func ParseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must not be negative", s)
	}
	return d, nil
}

// ParseOptionalMoney parses s like ParseMoney but returns an invalid
// NullDecimal for an empty string.
func ParseOptionalMoney(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseMoney(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
