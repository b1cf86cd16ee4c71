package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidAmount = errors.New("invalid monetary amount")
	ErrTooPrecise    = errors.New("monetary amount has more than 2 decimal places")
)

// Money is an amount in minor units (cents). All arithmetic is integral so
// sums over the ledger never drift.
type Money struct {
	cents int64
}

func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// Parse accepts decimal strings such as "1000", "1000.5" and "1000.50".
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return Money{}, ErrInvalidAmount
	}
	if hasFrac && frac == "" {
		return Money{}, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return Money{}, ErrTooPrecise
	}
	if !allDigits(whole) || !allDigits(frac) {
		return Money{}, ErrInvalidAmount
	}

	var units int64
	if whole != "" {
		v, err := strconv.ParseInt(whole, 10, 64)
		if err != nil {
			return Money{}, ErrInvalidAmount
		}
		units = v
	}
	if units > (1<<62)/100 {
		return Money{}, ErrInvalidAmount
	}

	var cents int64
	if frac != "" {
		for len(frac) < 2 {
			frac += "0"
		}
		v, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return Money{}, ErrInvalidAmount
		}
		cents = v
	}

	total := units*100 + cents
	if neg {
		total = -total
	}
	return Money{cents: total}, nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) Times(n int64) Money {
	return Money{cents: m.cents * n}
}

func (m Money) IsPositive() bool {
	return m.cents > 0
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

func (m Money) GreaterThan(other Money) bool {
	return m.cents > other.cents
}

func (m Money) Equal(other Money) bool {
	return m.cents == other.cents
}

func (m Money) GreaterOrEqual(other Money) bool {
	return m.cents >= other.cents
}

// FloorZero returns m, or zero when m is negative.
func (m Money) FloorZero() Money {
	if m.cents < 0 {
		return Money{}
	}
	return m
}

// String renders two decimal places, e.g. "2000.00".
func (m Money) String() string {
	c := m.cents
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

func Sum(values ...Money) Money {
	var total Money
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
