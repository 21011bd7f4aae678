package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a two-decimal-place monetary amount. It rounds half-up on
// construction and always serializes with exactly two fraction digits,
// as a string, so callers never reconstruct prices from floats.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d half-up to two decimal places.
func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// MoneyFromString parses a decimal string such as "49.99".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	return NewMoney(d), nil
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid price %s: %w", string(data), err)
	}
	m.Decimal = d.Round(2)
	return nil
}

// Value implements driver.Valuer so the column always stores two places.
func (m Money) Value() (driver.Value, error) {
	return m.StringFixed(2), nil
}
