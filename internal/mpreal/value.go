package mpreal

import (
	"fmt"
	"math"
	"math/big"

	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/precision"
)

// extraSetter converts operand types supplied by optional backends (see
// gmp.go). It reports ok=false for values it does not recognise.
var extraSetter func(z *big.Float, v any) (ok bool, err error)

// setValue stores v into z, rounding to z's precision.
func setValue(z *big.Float, v any) error {
	switch x := v.(type) {
	case int:
		z.SetInt64(int64(x))
	case int8:
		z.SetInt64(int64(x))
	case int16:
		z.SetInt64(int64(x))
	case int32:
		z.SetInt64(int64(x))
	case int64:
		z.SetInt64(x)
	case uint:
		z.SetUint64(uint64(x))
	case uint8:
		z.SetUint64(uint64(x))
	case uint16:
		z.SetUint64(uint64(x))
	case uint32:
		z.SetUint64(uint64(x))
	case uint64:
		z.SetUint64(x)
	case uintptr:
		z.SetUint64(uint64(x))
	case float32:
		return setFloat64(z, float64(x))
	case float64:
		return setFloat64(z, x)
	case *big.Int:
		z.SetInt(x)
	case *big.Rat:
		z.SetRat(x)
	case *big.Float:
		z.Set(x)
	case *Real:
		if !x.IsValid() {
			return apperrors.NewInvalidArgument("set", "the source real is in the moved-from state")
		}
		z.Set(x.buf)
	default:
		if extraSetter != nil {
			if ok, err := extraSetter(z, v); ok {
				return err
			}
		}
		return apperrors.NewInvalidArgument("set", "unsupported operand type %T", v)
	}
	return nil
}

func setFloat64(z *big.Float, f float64) error {
	if math.IsNaN(f) {
		return apperrors.NewDomainError("set", "NaN cannot be represented")
	}
	z.SetFloat64(f)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Setters
// ─────────────────────────────────────────────────────────────────────────────

// SetValue stores v into x, rounding to nearest at x's precision. An empty x
// is first allocated at the precision deduced from v.
func (x *Real) SetValue(v any) error {
	if x.buf == nil {
		prec, err := precision.Deduce(v)
		if err != nil {
			return err
		}
		buf := newBuf(prec)
		if err := setValue(buf, v); err != nil {
			return err
		}
		x.buf = buf
		return nil
	}
	return setValue(x.buf, v)
}

// SetInt64 stores v, keeping the precision of x.
func (x *Real) SetInt64(v int64) error { return x.SetValue(v) }

// SetUint64 stores v, keeping the precision of x.
func (x *Real) SetUint64(v uint64) error { return x.SetValue(v) }

// SetFloat64 stores v, keeping the precision of x. NaN is rejected.
func (x *Real) SetFloat64(v float64) error { return x.SetValue(v) }

// SetZero stores a signed zero, keeping the precision of x. A negative sign
// selects -0.
func (x *Real) SetZero(sign int) error {
	if x.buf == nil {
		return apperrors.NewInvalidArgument("set zero", "the real is in the moved-from state")
	}
	x.buf.SetInt64(0)
	if sign < 0 {
		x.buf.Neg(x.buf)
	}
	return nil
}

// SetInf stores a signed infinity, keeping the precision of x.
func (x *Real) SetInf(sign int) error {
	if x.buf == nil {
		return apperrors.NewInvalidArgument("set inf", "the real is in the moved-from state")
	}
	x.buf.SetInf(sign < 0)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Predicates and Conversions
// ─────────────────────────────────────────────────────────────────────────────

// IsZero reports whether x is ±0. An empty x is not zero.
func (x *Real) IsZero() bool { return x.IsValid() && x.buf.Sign() == 0 }

// IsOne reports whether x is exactly 1.
func (x *Real) IsOne() bool {
	return x.IsValid() && !x.buf.IsInf() && x.buf.Cmp(one) == 0
}

// IsInf reports whether x is ±Inf.
func (x *Real) IsInf() bool { return x.IsValid() && x.buf.IsInf() }

// IsInt reports whether x is a finite integer.
func (x *Real) IsInt() bool { return x.IsValid() && x.buf.IsInt() }

// Signbit reports whether x is negative or -0.
func (x *Real) Signbit() bool { return x.IsValid() && x.buf.Signbit() }

// Sign returns -1, 0 or +1 depending on the sign of x. It panics on an empty
// x.
func (x *Real) Sign() int { return x.buf.Sign() }

// Cmp compares x and y and returns -1, 0 or +1. It panics on empty
// operands.
func (x *Real) Cmp(y *Real) int { return x.buf.Cmp(y.buf) }

// Equal reports whether x and y hold the same value, regardless of their
// precisions. Empty values are never equal.
func (x *Real) Equal(y *Real) bool {
	return x.IsValid() && y.IsValid() && x.buf.Cmp(y.buf) == 0
}

// Float64 returns the float64 nearest to x and the accuracy of the
// conversion.
func (x *Real) Float64() (float64, big.Accuracy) {
	if !x.IsValid() {
		return math.NaN(), big.Exact
	}
	return x.buf.Float64()
}

// Text formats x like big.Float.Text.
func (x *Real) Text(format byte, digits int) string {
	if !x.IsValid() {
		return "<empty>"
	}
	return x.buf.Text(format, digits)
}

// String formats x with the shortest decimal representation that rounds
// back to x at its precision.
func (x *Real) String() string { return x.Text('g', -1) }

// Format implements fmt.Formatter with the verbs of big.Float. %s and %v
// print String.
func (x *Real) Format(s fmt.State, verb rune) {
	if !x.IsValid() {
		fmt.Fprint(s, "<empty>")
		return
	}
	if verb == 's' || verb == 'v' {
		fmt.Fprint(s, x.String())
		return
	}
	x.buf.Format(s, verb)
}

var one = big.NewFloat(1)
