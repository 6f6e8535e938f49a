package valueobject

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNegativeAmount is returned when an amount is below zero
var ErrNegativeAmount = errors.New("amount cannot be negative")

// NewAmount validates a monetary amount. Amounts carry no currency;
// negative values are rejected, the sign of a movement is given by its type.
func NewAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return d, nil
}

// NewAmountFromString parses and validates a decimal string such as "125.50"
func NewAmountFromString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewAmount(d)
}

// Sum adds amounts exactly
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// FormatAmount renders an amount with two decimal places
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
