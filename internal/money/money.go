package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// Sum adds decimal price strings; an unparsable entry fails the whole sum.
func Sum(prices ...string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, p := range prices {
		d, err := Parse(p)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(d)
	}
	return total, nil
}

func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// MinorUnits converts to the smallest currency unit, rounding half away from zero.
func MinorUnits(d decimal.Decimal) int64 {
	return d.Mul(hundred).Round(0).IntPart()
}

func FromMinorUnits(v int64) decimal.Decimal {
	return decimal.New(v, -2)
}
