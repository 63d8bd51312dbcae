package precision

import (
	"math/big"
	"math/bits"

	apperrors "github.com/agbru/mpnum/internal/errors"
)

// WordBits is the size of one big.Word limb in bits.
const WordBits = bits.UintSize

// Precisioner is implemented by values that carry their own precision, such
// as the module's real and complex types.
type Precisioner interface {
	Prec() uint
}

// Precisions of the native numeric kinds, equal to the width of their
// integer or significand representation.
const (
	Int64Bits   uint = 64
	Uint64Bits  uint = 64
	Float64Bits uint = 53
	Float32Bits uint = 24
)

// extraDeducer lets optional backends (see gmp.go) teach Deduce about their
// types. It reports ok=false for values it does not recognise.
var extraDeducer func(v any) (prec uint, ok bool, err error)

// Deduce returns the precision needed to represent v exactly (rounded to
// whole limbs for arbitrary-precision integers and rationals), clamped up to
// Min. Unsupported types and deduced precisions above Max are rejected with
// an invalid-argument error.
func Deduce(v any) (uint, error) {
	switch x := v.(type) {
	case int, uint, uintptr:
		return WordBits, nil
	case int8, uint8:
		return 8, nil
	case int16, uint16:
		return 16, nil
	case int32, uint32:
		return 32, nil
	case int64:
		return Int64Bits, nil
	case uint64:
		return Uint64Bits, nil
	case float32:
		return Float32Bits, nil
	case float64:
		return Float64Bits, nil
	case *big.Int:
		return BigInt(x)
	case *big.Rat:
		return BigRat(x)
	case *big.Float:
		return BigFloat(x), nil
	case Precisioner:
		return x.Prec(), nil
	}
	if extraDeducer != nil {
		if prec, ok, err := extraDeducer(v); ok {
			return prec, err
		}
	}
	return 0, apperrors.NewInvalidArgument("deduce precision", "unsupported operand type %T", v)
}

// BigInt returns the number of limb bits used by x, clamped up to Min.
func BigInt(x *big.Int) (uint, error) {
	return limbBits(uint64(len(x.Bits())), "integer")
}

// BigRat returns the sum of the limb bits used by the numerator and the
// denominator of q, clamped up to Min.
func BigRat(q *big.Rat) (uint, error) {
	n := uint64(len(q.Num().Bits()))
	d := uint64(len(q.Denom().Bits()))
	return limbBits(n+d, "rational")
}

// BigFloat returns the precision of x, clamped into the policy range. A
// zero-value big.Float has precision 0 and yields Min.
func BigFloat(x *big.Float) uint {
	return Clamp(x.Prec())
}

// limbBits converts a limb count into a precision, failing when the result
// would exceed Max.
func limbBits(limbs uint64, what string) (uint, error) {
	if limbs > uint64(Max)/WordBits {
		return 0, apperrors.WrapError(
			apperrors.PrecisionError{Requested: limbs * WordBits, Min: Min, Max: Max},
			"the deduced precision for a value constructed from an %s is too large", what)
	}
	return Clamp(uint(limbs) * WordBits), nil
}
