package mpreal

import (
	"math/big"
	"sync/atomic"

	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/precision"
)

// Real is an arbitrary-precision binary floating-point number. The zero
// Real is empty; obtain a usable value from New or one of the From
// constructors. A Real must not be copied by value: use Copy or Set.
type Real struct {
	buf *big.Float
}

// Kind selects the special value produced by NewKind.
type Kind int

const (
	// Zero is a signed zero.
	Zero Kind = iota
	// Inf is a signed infinity.
	Inf
)

// ─────────────────────────────────────────────────────────────────────────────
// Engine Wiring
// ─────────────────────────────────────────────────────────────────────────────

// traits adapts Real to the dispatch engine.
type traits struct{}

func (traits) Prec(v *Real) uint {
	if v.buf == nil {
		return 0
	}
	return v.buf.Prec()
}

func (traits) Valid(v *Real) bool { return v.buf != nil }
func (traits) Handle(v *Real) *big.Float { return v.buf }
func (traits) Alloc(v *Real, prec uint) { v.buf = newBuf(prec) }
func (traits) Swap(a, b *Real) { a.buf, b.buf = b.buf, a.buf }
func (traits) Release(v *Real) { v.buf = nil }
func (traits) SameStorage(a, b *Real) bool { return a.buf == b.buf }

func (traits) Discard(v *Real, prec uint) {
	v.buf.SetInt64(0)
	v.buf.SetPrec(prec)
}

func (traits) Resize(v *Real, prec uint) {
	if v.buf == nil {
		v.buf = newBuf(prec)
		return
	}
	v.buf.SetPrec(prec)
}

// Traits returns the dispatch adapter for Real. Composite types built from
// Real use it to manage their fields.
func Traits() dispatch.Traits[Real, *big.Float] { return traits{} }

var engine atomic.Pointer[dispatch.Engine[Real, *big.Float]]

func init() {
	Configure()
}

// Configure replaces the engine used by every Real operation, for instance
// to attach a metrics recorder or a debug logger. It is safe to call
// concurrently with running operations.
func Configure(opts ...dispatch.Option) {
	engine.Store(dispatch.New[Real, *big.Float](traits{}, opts...))
}

// Engine returns the engine currently used by Real operations.
func Engine() *dispatch.Engine[Real, *big.Float] { return engine.Load() }

// Borrow tags x as a read-only operand.
func Borrow(x *Real) dispatch.Operand[Real] { return dispatch.Borrow(x) }

// Move tags x as an operand the caller gives up. If its storage is reused
// for the result, x is left empty.
func Move(x *Real) dispatch.Operand[Real] { return dispatch.Move(x) }

func newBuf(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec)
}

// ─────────────────────────────────────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────────────────────────────────────

// New returns a zero Real of the given precision.
func New(prec uint) (*Real, error) {
	if err := precision.Check(prec); err != nil {
		return nil, err
	}
	return &Real{buf: newBuf(prec)}, nil
}

// NewKind returns a signed zero or infinity of the given precision. A
// negative sign selects the negative value.
func NewKind(kind Kind, sign int, prec uint) (*Real, error) {
	x, err := New(prec)
	if err != nil {
		return nil, err
	}
	switch kind {
	case Zero:
	case Inf:
		x.buf.SetInf(sign < 0)
		return x, nil
	default:
		return nil, apperrors.NewInvalidArgument("new real", "unknown kind %d", int(kind))
	}
	if sign < 0 {
		x.buf.Neg(x.buf)
	}
	return x, nil
}

// FromInt64 returns v at precision 64, which represents it exactly.
func FromInt64(v int64) *Real {
	return &Real{buf: newBuf(precision.Int64Bits).SetInt64(v)}
}

// FromUint64 returns v at precision 64, which represents it exactly.
func FromUint64(v uint64) *Real {
	return &Real{buf: newBuf(precision.Uint64Bits).SetUint64(v)}
}

// FromFloat64 returns v at precision 53. NaN is rejected with a domain
// error since a Real cannot hold it.
func FromFloat64(v float64) (*Real, error) {
	return FromValue(v, 0)
}

// FromBigInt returns x at the precision deduced from its limb count.
func FromBigInt(x *big.Int) (*Real, error) {
	return FromValue(x, 0)
}

// FromBigRat returns q at the precision deduced from its numerator and
// denominator limb counts, rounded to nearest.
func FromBigRat(q *big.Rat) (*Real, error) {
	return FromValue(q, 0)
}

// FromBigFloat returns a copy of x at x's own precision.
func FromBigFloat(x *big.Float) (*Real, error) {
	return FromValue(x, 0)
}

// FromValue converts v into a Real. With prec == 0 the precision is deduced
// from v; otherwise prec is validated and v is rounded to nearest.
//
// Supported operands are the native integer and floating-point kinds,
// *big.Int, *big.Rat, *big.Float and *Real (plus *gmp.Int and *gmp.Rat in
// builds with the gmp tag).
func FromValue(v any, prec uint) (*Real, error) {
	if prec == 0 {
		p, err := precision.Deduce(v)
		if err != nil {
			return nil, err
		}
		prec = p
	} else if err := precision.Check(prec); err != nil {
		return nil, err
	}
	x := &Real{buf: newBuf(prec)}
	if err := setValue(x.buf, v); err != nil {
		return nil, err
	}
	return x, nil
}

// Parse converts the decimal or hexadecimal text s into a Real of the given
// precision, rounding to nearest. The accepted syntax is that of
// big.Float.Parse with base 0, plus "inf" and "-inf".
func Parse(s string, prec uint) (*Real, error) {
	if err := precision.Check(prec); err != nil {
		return nil, err
	}
	f, _, err := big.ParseFloat(s, 0, prec, big.ToNearestEven)
	if err != nil {
		return nil, apperrors.NewInvalidArgument("parse", "cannot parse %q as a real: %v", s, err)
	}
	return &Real{buf: f}, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Ownership
// ─────────────────────────────────────────────────────────────────────────────

// IsValid reports whether x owns storage.
func (x *Real) IsValid() bool { return x != nil && x.buf != nil }

// Release drops the storage of x, leaving it empty. Releasing an empty Real
// is a no-op.
func (x *Real) Release() { x.buf = nil }

// Copy returns a deep copy of x at x's precision. Copying an empty Real
// yields an empty Real.
func (x *Real) Copy() *Real {
	if !x.IsValid() {
		return &Real{}
	}
	return &Real{buf: newBuf(x.buf.Prec()).Set(x.buf)}
}

// Set makes z a deep copy of x, including its precision, and returns z.
// Setting from an empty Real empties z.
func (z *Real) Set(x *Real) *Real {
	switch {
	case z == x:
	case !x.IsValid():
		z.buf = nil
	case z.buf == nil:
		z.buf = newBuf(x.buf.Prec()).Set(x.buf)
	default:
		z.buf.SetPrec(x.buf.Prec()).Set(x.buf)
	}
	return z
}

// Move transfers the storage of x into a new Real and leaves x empty.
func (x *Real) Move() *Real {
	r := &Real{buf: x.buf}
	x.buf = nil
	return r
}

// MoveFrom releases the storage of z and takes over that of x, leaving x
// empty. Moving a Real into itself is a no-op.
func (z *Real) MoveFrom(x *Real) *Real {
	if z != x {
		z.buf, x.buf = x.buf, nil
	}
	return z
}

// Swap exchanges the storage, and thus value and precision, of z and x.
// Either may be empty.
func (z *Real) Swap(x *Real) { z.buf, x.buf = x.buf, z.buf }

// Raw returns the big.Float backing x, or nil when x is empty. Direct
// mutations must keep the precision inside the policy range; call Round
// afterwards when unsure.
func (x *Real) Raw() *big.Float { return x.buf }

// BigFloat returns a copy of x as a big.Float of the same precision.
func (x *Real) BigFloat() *big.Float {
	if !x.IsValid() {
		return nil
	}
	return newBuf(x.buf.Prec()).Set(x.buf)
}

// ─────────────────────────────────────────────────────────────────────────────
// Precision
// ─────────────────────────────────────────────────────────────────────────────

// Prec returns the precision of x in bits, or 0 when x is empty.
func (x *Real) Prec() uint {
	if !x.IsValid() {
		return 0
	}
	return x.buf.Prec()
}

// SetPrec changes the precision of x destructively: the value is reset to
// zero. An empty x is allocated.
func (x *Real) SetPrec(prec uint) error {
	if err := precision.Check(prec); err != nil {
		return err
	}
	if x.buf == nil {
		x.buf = newBuf(prec)
		return nil
	}
	traits{}.Discard(x, prec)
	return nil
}

// PrecRound changes the precision of x, rounding its value to nearest.
func (x *Real) PrecRound(prec uint) error {
	if err := precision.Check(prec); err != nil {
		return err
	}
	if x.buf == nil {
		return apperrors.NewInvalidArgument("prec round", "the real is in the moved-from state")
	}
	x.buf.SetPrec(prec)
	return nil
}

// Round brings the precision of the backing big.Float back into the policy
// range after direct manipulation through Raw, rounding to nearest. It is a
// no-op for an empty x.
func (x *Real) Round() {
	if x.buf == nil {
		return
	}
	if p := x.buf.Prec(); !precision.Valid(p) {
		x.buf.SetPrec(precision.Clamp(p))
	}
}

// MinPrec returns the smallest precision that represents x exactly, never
// below precision.Min. Zero and infinities yield precision.Min.
func (x *Real) MinPrec() uint {
	if !x.IsValid() {
		return 0
	}
	return precision.Clamp(x.buf.MinPrec())
}
