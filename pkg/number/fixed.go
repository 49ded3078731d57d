package number

import (
	"errors"

	"dealer/core"

	"github.com/shopspring/decimal"
)

var (
	// WadPrecision precision of token amounts
	WadPrecision int32 = 18
	// RayPrecision precision of price and accrual factors
	RayPrecision int32 = 27

	// Unit smallest representable amount
	Unit = decimal.New(1, -WadPrecision)
	// One 1.0 as a factor
	One = decimal.New(1, 0)
	// MaxAmount largest amount a decimal(64,18) column holds
	MaxAmount = decimal.New(1, 64-WadPrecision).Sub(Unit)

	// ErrOverflow amount exceeds MaxAmount
	ErrOverflow = errors.New("amount overflow")
	// ErrNegative negative operand
	ErrNegative = errors.New("negative amount")
	// ErrZeroFactor division by a zero factor
	ErrZeroFactor = errors.New("zero factor")
)

// Wad truncate x to wad precision
func Wad(x decimal.Decimal) decimal.Decimal {
	return x.Truncate(WadPrecision)
}

// Ray truncate x to ray precision
func Ray(x decimal.Decimal) decimal.Decimal {
	return x.Truncate(RayPrecision)
}

// MulRay x * factor, factor taken at ray precision and the result truncated to wad
func MulRay(x, factor decimal.Decimal) decimal.Decimal {
	return Wad(x.Mul(Ray(factor)))
}

// DivRay x / factor, factor taken at ray precision and the result truncated to wad
func DivRay(x, factor decimal.Decimal) (decimal.Decimal, error) {
	factor = Ray(factor)
	if !factor.IsPositive() {
		return decimal.Zero, ErrZeroFactor
	}

	q, _ := x.QuoRem(factor, WadPrecision)
	return q, nil
}

// DivRoundUp x / y rounded toward positive infinity at the given precision
func DivRoundUp(x, y decimal.Decimal, precision int32) (decimal.Decimal, error) {
	if !y.IsPositive() {
		return decimal.Zero, ErrZeroFactor
	}

	q, r := x.QuoRem(y, precision)
	if r.IsPositive() {
		q = q.Add(decimal.New(1, -precision))
	}

	return q, nil
}

// Add checked addition of two non-negative amounts
func Add(a, b decimal.Decimal) (decimal.Decimal, error) {
	if a.IsNegative() || b.IsNegative() {
		return decimal.Zero, ErrNegative
	}

	sum := a.Add(b)
	if sum.GreaterThan(MaxAmount) {
		return decimal.Zero, ErrOverflow
	}

	return sum, nil
}

// Sub checked subtraction, fails with core.ErrInsufficientBalance if the result is negative
func Sub(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsNegative() {
		return decimal.Zero, ErrNegative
	}

	diff := a.Sub(b)
	if diff.IsNegative() {
		return decimal.Zero, core.ErrInsufficientBalance
	}

	return diff, nil
}
