package domain

import (
	"errors"
	"fmt"
)

// DefaultCurrency is assumed when no currency code is given.
const DefaultCurrency = "USD"

var (
	ErrNegativeAmount   = errors.New("money amount cannot be negative")
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// Money pairs a non-negative amount with a currency code. Arithmetic between
// two Money values requires matching currencies.
type Money struct {
	Amount   float64
	Currency string
}

// NewMoney creates a Money value. An empty currency defaults to DefaultCurrency.
func NewMoney(amount float64, currency string) (Money, error) {
	if amount < 0 {
		return Money{}, ErrNegativeAmount
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}, nil
}

// Add returns the sum of m and other.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Subtract returns m minus other. It fails if the currencies differ or the
// result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	if m.Amount < other.Amount {
		return Money{}, ErrNegativeAmount
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// MultiplyQty scales the amount by an integer quantity.
func (m Money) MultiplyQty(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{Amount: m.Amount * float64(qty), Currency: m.Currency}, nil
}
