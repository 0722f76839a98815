package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	man = decimal.NewFromInt(10_000)
	oku = decimal.NewFromInt(100_000_000)
)

// Money represents a yen amount. Yen has no minor unit, so rounding is to whole units.
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// RoundHalfUp rounds to an integer with halves going toward +Inf.
func RoundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(decimal.NewFromFloat(0.5)).Floor()
}

// String returns the whole-yen representation
func (m Money) String() string {
	return RoundHalfUp(m.Decimal).String()
}

// Format renders the amount with a yen sign and thousands separators, e.g. "¥1,234,567".
func (m Money) Format() string {
	s := m.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return sign + "¥" + groupThousands(s)
}

// Compact abbreviates large magnitudes into 万 / 億 units, e.g. "1.2億円", "350万円", "8,000円".
func (m Money) Compact() string {
	v := RoundHalfUp(m.Decimal)
	abs := v.Abs()
	sign := ""
	if v.IsNegative() {
		sign = "-"
	}
	switch {
	case abs.GreaterThanOrEqual(oku):
		return sign + trimZeros(abs.Div(oku).StringFixed(2)) + "億円"
	case abs.GreaterThanOrEqual(man):
		return sign + groupThousands(abs.Div(man).Floor().String()) + "万円"
	default:
		return sign + groupThousands(abs.String()) + "円"
	}
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
