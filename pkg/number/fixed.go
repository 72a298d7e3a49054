package number

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var (
	// ErrNegative negative amounts have no fixed-point representation
	ErrNegative = errors.New("negative amount")
	// ErrPrecision more fractional digits than the target scale
	ErrPrecision = errors.New("too many decimal places")
	// ErrOverflow value does not fit in 256 bits
	ErrOverflow = errors.New("overflows 256 bits")

	ten = uint256.NewInt(10)
)

// Pow10 returns 10^n
func Pow10(n uint8) *uint256.Int {
	return new(uint256.Int).Exp(ten, uint256.NewInt(uint64(n)))
}

// Add returns x+y, ok is false on overflow
func Add(x, y *uint256.Int) (*uint256.Int, bool) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	return z, !overflow
}

// Sub returns x-y, ok is false on underflow
func Sub(x, y *uint256.Int) (*uint256.Int, bool) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	return z, !underflow
}

// MulDiv returns floor(x*y/d) computed with a 512-bit intermediate product.
// ok is false when d is zero or the quotient does not fit in 256 bits.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, bool) {
	if d.IsZero() {
		return nil, false
	}

	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	return z, !overflow
}

// Parse parses a human readable amount such as "110.5" into its raw integer at the given scale
func Parse(v string, decimals uint8) (*uint256.Int, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", v, err)
	}

	raw := d.Shift(int32(decimals))
	if !raw.Equal(raw.Truncate(0)) {
		return nil, fmt.Errorf("parse amount %q: %w", v, ErrPrecision)
	}

	return FromDecimal(raw)
}

// FromDecimal converts an integral decimal into uint256, fractional digits are truncated
func FromDecimal(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, ErrNegative
	}

	z, overflow := uint256.FromBig(d.Truncate(0).BigInt())
	if overflow {
		return nil, ErrOverflow
	}

	return z, nil
}

// ToDecimal converts a raw integer into a decimal with the given scale applied
func ToDecimal(x *uint256.Int, decimals uint8) decimal.Decimal {
	if x == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(x.ToBig(), -int32(decimals))
}

// Raw converts a raw integer into an integral decimal, suitable for numeric sql columns
func Raw(x *uint256.Int) decimal.Decimal {
	return ToDecimal(x, 0)
}

// Zero returns a fresh zero
func Zero() *uint256.Int {
	return new(uint256.Int)
}
