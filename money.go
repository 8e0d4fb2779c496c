package hesabna

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the ISO code used to display amounts. The ledger is single
// currency: there is no conversion anywhere in the core.
const Currency = "MAD"

// Amount is a monetary value with exact decimal arithmetic.
type Amount struct {
	value decimal.Decimal
}

// A builds an Amount from a numeric value.
func A[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func newDecimal(value any) decimal.Decimal {
	switch v := value.(type) {
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	}
	panic("unsupported decimal value")
}

// ParseAmount parses a decimal string into an Amount.
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Amount{value: d}, nil
}

func (a Amount) Add(b Amount) Amount { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) Neg() Amount         { return Amount{value: a.value.Neg()} }

func (a Amount) IsZero() bool               { return a.value.IsZero() }
func (a Amount) IsPositive() bool           { return a.value.IsPositive() }
func (a Amount) IsNegative() bool           { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool        { return a.value.Equal(b.value) }
func (a Amount) LessThan(b Amount) bool     { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool  { return a.value.GreaterThan(b.value) }
func (a Amount) Div(b Amount) float64       { return a.value.Div(b.value).InexactFloat64() }
func (a Amount) Decimal() decimal.Decimal   { return a.value }
func (a Amount) InexactFloat64() float64    { return a.value.InexactFloat64() }

// Max returns the larger of two amounts.
func (a Amount) Max(b Amount) Amount {
	if b.GreaterThan(a) {
		return b
	}
	return a
}

// Floor0 clamps a negative amount to zero.
func (a Amount) Floor0() Amount {
	if a.IsNegative() {
		return Amount{}
	}
	return a
}

// String formats the amount with the ledger currency.
func (a Amount) String() string {
	cur := *money.New(0, Currency).Currency()
	dec := a.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// MarshalJSON persists the amount as a plain JSON number, the shape the
// original data files use.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.value.String()), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string.
func (a *Amount) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(strings.Trim(string(b), `"`))
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(b), err)
	}
	a.value = d
	return nil
}
