// Package decimal implements the fixed-precision (18-decimal) arithmetic
// used for every price, amount, and balance in the engine. Values are
// non-negative in this domain: prices, amounts, and balances never go below
// zero, so the scaled representation is an unsigned 256-bit integer
// (github.com/holiman/uint256), exactly the width the EIP-712 hasher needs
// for its uint256 fields. Negative values cannot be represented: Parse
// rejects a sign and Sub fails instead of going below zero.
package decimal

import (
	"strings"

	"github.com/holiman/uint256"

	"clob/internal/coreerr"
)

const scaleDigits = 18

var scale = func() *uint256.Int {
	z, _ := uint256.FromDecimal("1000000000000000000")
	return z
}()

// Decimal is a non-negative value scaled by 10^18, stored exactly as a
// 256-bit unsigned integer. The zero value is 0.
type Decimal struct {
	scaled uint256.Int
}

// Zero is the additive identity.
var Zero = Decimal{}

// Parse accepts a non-negative decimal string with at most 18 fractional
// digits: no sign, no whitespace, no scientific notation, at most one
// decimal point.
func Parse(s string) (Decimal, error) {
	if s == "" {
		return Decimal{}, coreerr.New(coreerr.Malformed, "empty decimal string")
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if strings.Contains(fracPart, ".") {
		return Decimal{}, coreerr.New(coreerr.Malformed, "more than one decimal point")
	}
	if intPart == "" {
		return Decimal{}, coreerr.New(coreerr.Malformed, "missing integer part")
	}
	if hasDot && fracPart == "" {
		return Decimal{}, coreerr.New(coreerr.Malformed, "missing fractional digits after '.'")
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Decimal{}, coreerr.New(coreerr.Malformed, "non-digit character in decimal string")
	}
	if len(fracPart) > scaleDigits {
		return Decimal{}, coreerr.Newf(coreerr.Malformed, "precision error: at most %d fractional digits allowed, got %d", scaleDigits, len(fracPart))
	}

	digits := intPart + fracPart + strings.Repeat("0", scaleDigits-len(fracPart))
	// Strip leading zeros so SetFromDecimal doesn't choke on e.g. "00012".
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		trimmed = "0"
	}

	var z uint256.Int
	if err := z.SetFromDecimal(trimmed); err != nil {
		return Decimal{}, coreerr.Newf(coreerr.Malformed, "range error: value does not fit in 256 bits: %v", err)
	}
	return Decimal{scaled: z}, nil
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// MustParse is for constructing test fixtures and constants; it panics on
// invalid input.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromScaled wraps an already-scaled uint256 value, bypassing string
// parsing.
func FromScaled(scaled *uint256.Int) Decimal {
	var d Decimal
	d.scaled.Set(scaled)
	return d
}

// String renders the canonical minimal form: an integer with trailing
// fractional zeros trimmed, and no decimal point at all when the
// fractional part is zero.
func (d Decimal) String() string {
	var quotient, remainder uint256.Int
	quotient.DivMod(&d.scaled, scale, &remainder)
	fracStr := remainder.Dec()
	fracStr = strings.Repeat("0", scaleDigits-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return quotient.Dec()
	}
	return quotient.Dec() + "." + fracStr
}

// Add returns d + other; it cannot overflow past RangeError territory for
// any value this engine will ever hold, but we check anyway since a bug
// elsewhere should surface as InvariantViolation, not a silently wrapped
// balance.
func (d Decimal) Add(other Decimal) (Decimal, error) {
	var z uint256.Int
	if _, overflow := z.AddOverflow(&d.scaled, &other.scaled); overflow {
		return Decimal{}, coreerr.New(coreerr.InvariantViolation, "decimal addition overflowed 256 bits")
	}
	return Decimal{scaled: z}, nil
}

// Sub returns d - other; fails if the result would be negative.
func (d Decimal) Sub(other Decimal) (Decimal, error) {
	var z uint256.Int
	if _, underflow := z.SubOverflow(&d.scaled, &other.scaled); underflow {
		return Decimal{}, coreerr.New(coreerr.InsufficientBalance, "subtraction would go negative")
	}
	return Decimal{scaled: z}, nil
}

// Mul returns d * other, truncated toward zero after dividing back out the
// scale factor (price * amount is the only product this engine computes).
func (d Decimal) Mul(other Decimal) (Decimal, error) {
	var full uint256.Int
	if _, overflow := full.MulOverflow(&d.scaled, &other.scaled); overflow {
		return Decimal{}, coreerr.New(coreerr.InvariantViolation, "decimal multiplication overflowed 256 bits")
	}
	var z uint256.Int
	z.Div(&full, scale)
	return Decimal{scaled: z}, nil
}

// Cmp returns -1, 0, or 1 as d is less than, equal to, or greater than other.
func (d Decimal) Cmp(other Decimal) int {
	return d.scaled.Cmp(&other.scaled)
}

func (d Decimal) LessThan(other Decimal) bool    { return d.Cmp(other) < 0 }
func (d Decimal) GreaterThan(other Decimal) bool { return d.Cmp(other) > 0 }
func (d Decimal) IsZero() bool                   { return d.scaled.IsZero() }
func (d Decimal) IsPositive() bool               { return !d.scaled.IsZero() }

// Min returns the smaller of d and other.
func Min(a, b Decimal) Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Scaled returns the raw 10^18-scaled integer, the representation used
// internally for storage and arithmetic.
func (d Decimal) Scaled() *uint256.Int {
	var z uint256.Int
	z.Set(&d.scaled)
	return &z
}

// RawUint256 returns the value with the scale divided back out, truncating
// any fractional remainder. This is the integer the EIP-712 hasher encodes
// for amount/price — see internal/hashing for why it is the raw integer
// and not the scaled form.
func (d Decimal) RawUint256() *uint256.Int {
	var z uint256.Int
	z.Div(&d.scaled, scale)
	return &z
}

// MarshalJSON renders the canonical string form.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON parses the canonical string form.
func (d *Decimal) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
