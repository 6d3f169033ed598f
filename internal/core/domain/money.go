package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a non-negative fixed-point currency amount with exactly two
// decimal places. Arithmetic is exact; there is no binary floating point
// anywhere in the representation, so repeated additions cannot drift.
// The zero value is 0.00.
type Money struct {
	d decimal.Decimal
}

// ParseMoney parses a decimal string such as "120" or "120.50". Values with
// more than two decimal places or a negative sign are rejected.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", s, err)
	}
	return newMoney(d)
}

// MustMoney is ParseMoney for trusted literals. It panics on invalid input
// and is intended for seed data and tests.
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromCents builds a Money from an integer number of cents.
func MoneyFromCents(cents int64) Money {
	if cents < 0 {
		panic(fmt.Sprintf("money: negative cents %d", cents))
	}
	return Money{d: decimal.New(cents, -2)}
}

func newMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, fmt.Errorf("money: negative amount %s", d)
	}
	if d.Exponent() < -2 {
		return Money{}, fmt.Errorf("money: amount %s has more than two decimal places", d)
	}
	return Money{d: d}, nil
}

// Add returns the exact sum of m and other.
func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

// Cmp compares m and other, returning -1, 0 or 1.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// LessThanOrEqual reports whether m <= other.
func (m Money) LessThanOrEqual(other Money) bool {
	return m.d.LessThanOrEqual(other.d)
}

// GreaterThan reports whether m > other.
func (m Money) GreaterThan(other Money) bool {
	return m.d.GreaterThan(other.d)
}

// Equal reports whether m and other represent the same amount.
func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// IsZero reports whether m == 0.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// String renders the amount with two decimal places, e.g. "105.00".
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON encodes the amount as a canonical two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both string and bare-number JSON forms, applying the
// same precision and sign validation as ParseMoney.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	parsed, err := newMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Scan implements sql.Scanner so NUMERIC columns scan directly into Money.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	parsed, err := newMoney(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer, emitting the canonical two-decimal form.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}
