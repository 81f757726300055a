// Package money holds the integer currency helpers shared by the payroll
// calculators. Amounts are whole won in int64; rates are decimals.
package money

import "github.com/shopspring/decimal"

// Rate is a multiplier applied to a won amount, e.g. 0.045 or 1.5.
type Rate = decimal.Decimal

// MustRate parses a literal rate and panics on malformed input. Only use it
// for package-level constants.
func MustRate(value string) Rate {
	return decimal.RequireFromString(value)
}

// MulFloor returns floor(amount * rate).
func MulFloor(amount int64, rate Rate) int64 {
	return decimal.NewFromInt(amount).Mul(rate).Floor().IntPart()
}

// MulRatioFloor returns floor(amount * num / den) without intermediate rounding.
func MulRatioFloor(amount, num, den int64) int64 {
	if den == 0 {
		return 0
	}
	return decimal.NewFromInt(amount).Mul(decimal.NewFromInt(num)).Div(decimal.NewFromInt(den)).Floor().IntPart()
}

// FloorTo truncates amount down to a multiple of unit.
func FloorTo(amount, unit int64) int64 {
	if unit <= 0 {
		return amount
	}
	q := amount / unit
	if amount%unit != 0 && amount < 0 {
		q--
	}
	return q * unit
}

// FloorDiv is integer division rounding toward negative infinity.
func FloorDiv(amount, div int64) int64 {
	if div == 0 {
		return 0
	}
	q := amount / div
	if (amount%div != 0) && ((amount < 0) != (div < 0)) {
		q--
	}
	return q
}

// RoundDiv divides and rounds half away from zero.
func RoundDiv(amount, div int64) int64 {
	if div == 0 {
		return 0
	}
	return decimal.NewFromInt(amount).Div(decimal.NewFromInt(div)).Round(0).IntPart()
}

func Clamp(value, lo, hi int64) int64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
