// Package money handles paise-denominated amounts for the storefront.
// Catalog prices are stored as int64 paise; arithmetic goes through
// shopspring/decimal so derived totals never accumulate float error.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FromPaise converts a paise amount into a rupee-scaled decimal.
func FromPaise(paise int64) decimal.Decimal {
	return decimal.NewFromInt(paise).Shift(-2)
}

// ToPaise converts a rupee-scaled decimal back into whole paise.
func ToPaise(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

// Line multiplies a unit price in paise by a quantity.
func Line(unitPaise int64, qty int) decimal.Decimal {
	return FromPaise(unitPaise).Mul(decimal.NewFromInt(int64(qty)))
}

// FormatRupees renders a paise amount as a display string, e.g. "₹2,499.00".
func FormatRupees(paise int64) string {
	amount := FromPaise(paise)
	negative := amount.IsNegative()
	if negative {
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, frac := fixed, "00"
	if idx := len(fixed) - 3; idx >= 0 && fixed[idx] == '.' {
		whole, frac = fixed[:idx], fixed[idx+1:]
	}

	grouped := groupIndian(whole)
	if negative {
		return fmt.Sprintf("-₹%s.%s", grouped, frac)
	}
	return fmt.Sprintf("₹%s.%s", grouped, frac)
}

// groupIndian applies Indian digit grouping: last three digits, then pairs.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	out := digits[n-3:]
	rest := digits[:n-3]
	for len(rest) > 2 {
		out = rest[len(rest)-2:] + "," + out
		rest = rest[:len(rest)-2]
	}
	return rest + "," + out
}

// Tax applies a basis-point rate to a paise amount, rounding half away from
// zero the way storefront GST lines are quoted.
func Tax(amountPaise, rateBasisPoints int64) int64 {
	if amountPaise <= 0 || rateBasisPoints <= 0 {
		return 0
	}
	return decimal.NewFromInt(amountPaise).
		Mul(decimal.NewFromInt(rateBasisPoints)).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()
}

// DiscountPercent computes the rounded percentage discount between the base
// and sale price. Returns 0 when the sale price is not an actual markdown.
func DiscountPercent(basePaise, salePaise int64) int {
	if basePaise <= 0 || salePaise <= 0 || salePaise >= basePaise {
		return 0
	}
	base := decimal.NewFromInt(basePaise)
	sale := decimal.NewFromInt(salePaise)
	pct := base.Sub(sale).Div(base).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}
