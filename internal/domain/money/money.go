// Package money provides an exact-decimal monetary amount. All order price
// arithmetic goes through this type so no float ever enters the validation
// pipeline.
package money

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Money is a decimal amount of the restaurant's currency. The zero value is
// zero money and is valid.
type Money struct {
	amount decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// New wraps a decimal amount.
func New(amount decimal.Decimal) Money {
	return Money{amount: amount}
}

// FromString parses a decimal string such as "50.00".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errors.Wrapf(err, "parse amount %q", s)
	}
	return Money{amount: d}, nil
}

// MustFromString is FromString for test fixtures and seeds; panics on
// malformed input.
func MustFromString(s string) Money {
	return Money{amount: decimal.RequireFromString(s)}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MultiplyInt returns m scaled by a whole quantity.
func (m Money) MultiplyInt(qty int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}
}

// Equal reports exact decimal equality: 50 equals 50.00, but 50.00 never
// equals 50.01. No tolerance is applied.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying decimal for storage adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with two fraction digits.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
