package mpcomplex

import (
	"fmt"
	"math"
	"math/big"
	"sync/atomic"

	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/mpreal"
	"github.com/agbru/mpnum/internal/precision"
)

// Complex is an arbitrary-precision complex number. The zero Complex is
// empty; obtain a usable value from New or one of the From constructors. A
// Complex must not be copied by value: use Copy or Set.
type Complex struct {
	re, im mpreal.Real

	// borrowed is set while a mutable field view is open.
	borrowed bool
}

// Handle is the raw storage of a Complex as seen by kernels.
type Handle struct {
	Re, Im *big.Float
}

// ─────────────────────────────────────────────────────────────────────────────
// Engine Wiring
// ─────────────────────────────────────────────────────────────────────────────

var rt = mpreal.Traits()

// traits adapts Complex to the dispatch engine by applying the real traits
// to both fields.
type traits struct{}

func (traits) Prec(v *Complex) uint { return v.re.Prec() }

func (traits) Valid(v *Complex) bool { return v.re.IsValid() && v.im.IsValid() }

func (traits) Handle(v *Complex) Handle { return Handle{Re: v.re.Raw(), Im: v.im.Raw()} }

func (traits) Alloc(v *Complex, prec uint) {
	rt.Alloc(&v.re, prec)
	rt.Alloc(&v.im, prec)
}

func (traits) Discard(v *Complex, prec uint) {
	rt.Discard(&v.re, prec)
	rt.Discard(&v.im, prec)
}

func (traits) Resize(v *Complex, prec uint) {
	rt.Resize(&v.re, prec)
	rt.Resize(&v.im, prec)
}

func (traits) Swap(a, b *Complex) {
	a.re.Swap(&b.re)
	a.im.Swap(&b.im)
}

func (traits) Release(v *Complex) {
	v.re.Release()
	v.im.Release()
}

func (traits) SameStorage(a, b *Complex) bool { return a.re.Raw() == b.re.Raw() }

var engine atomic.Pointer[dispatch.Engine[Complex, Handle]]

func init() {
	Configure()
}

// Configure replaces the engine used by every Complex operation.
func Configure(opts ...dispatch.Option) {
	engine.Store(dispatch.New[Complex, Handle](traits{}, opts...))
}

// Engine returns the engine currently used by Complex operations.
func Engine() *dispatch.Engine[Complex, Handle] { return engine.Load() }

// Borrow tags x as a read-only operand.
func Borrow(x *Complex) dispatch.Operand[Complex] { return dispatch.Borrow(x) }

// Move tags x as an operand the caller gives up.
func Move(x *Complex) dispatch.Operand[Complex] { return dispatch.Move(x) }

// ─────────────────────────────────────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────────────────────────────────────

// New returns a zero Complex of the given precision.
func New(prec uint) (*Complex, error) {
	if err := precision.Check(prec); err != nil {
		return nil, err
	}
	c := &Complex{}
	traits{}.Alloc(c, prec)
	return c, nil
}

// Zero returns 0+0i at the minimum precision.
func Zero() *Complex {
	c := &Complex{}
	traits{}.Alloc(c, precision.Min)
	return c
}

// deduce extends precision.Deduce with the native complex kinds.
func deduce(v any) (uint, error) {
	switch v.(type) {
	case complex128:
		return precision.Float64Bits, nil
	case complex64:
		return precision.Float32Bits, nil
	}
	return precision.Deduce(v)
}

// FromParts builds re+im·i at the larger of the precisions deduced from re
// and im. Both parts accept anything mpreal.FromValue accepts.
func FromParts(re, im any) (*Complex, error) {
	pr, err := precision.Deduce(re)
	if err != nil {
		return nil, err
	}
	pi, err := precision.Deduce(im)
	if err != nil {
		return nil, err
	}
	return FromPartsPrec(re, im, max(pr, pi))
}

// FromPartsPrec builds re+im·i at prec, rounding both parts to nearest.
func FromPartsPrec(re, im any, prec uint) (*Complex, error) {
	r, err := mpreal.FromValue(re, prec)
	if err != nil {
		return nil, err
	}
	i, err := mpreal.FromValue(im, prec)
	if err != nil {
		return nil, err
	}
	c := &Complex{}
	c.re.MoveFrom(r)
	c.im.MoveFrom(i)
	return c, nil
}

// FromReal returns x+0i at x's precision.
func FromReal(x *mpreal.Real) (*Complex, error) {
	c := &Complex{}
	if err := c.SetReal(x); err != nil {
		return nil, err
	}
	return c, nil
}

// FromComplex128 returns v at precision 53. NaN parts are rejected with a
// domain error.
func FromComplex128(v complex128) (*Complex, error) {
	if math.IsNaN(real(v)) || math.IsNaN(imag(v)) {
		return nil, apperrors.NewDomainError("from complex128", "NaN cannot be represented")
	}
	return FromPartsPrec(real(v), imag(v), precision.Float64Bits)
}

// FromValue converts v into a Complex. Native complex kinds and *Complex
// are taken as is; any other value is treated as a real part with a zero
// imaginary part. With prec == 0 the precision is deduced from v.
func FromValue(v any, prec uint) (*Complex, error) {
	if prec == 0 {
		p, err := deduce(v)
		if err != nil {
			return nil, err
		}
		prec = p
	} else if err := precision.Check(prec); err != nil {
		return nil, err
	}
	c := &Complex{}
	traits{}.Alloc(c, prec)
	if err := c.setValue(v); err != nil {
		return nil, err
	}
	return c, nil
}

// setValue stores v into a valid c, rounding to c's precision.
func (c *Complex) setValue(v any) error {
	switch x := v.(type) {
	case complex64:
		return c.setValue(complex128(x))
	case complex128:
		if math.IsNaN(real(x)) || math.IsNaN(imag(x)) {
			return apperrors.NewDomainError("set", "NaN cannot be represented")
		}
		c.re.Raw().SetFloat64(real(x))
		c.im.Raw().SetFloat64(imag(x))
	case *Complex:
		if !x.IsValid() {
			return apperrors.NewInvalidArgument("set", "the source complex is in the moved-from state")
		}
		c.re.Raw().Set(x.re.Raw())
		c.im.Raw().Set(x.im.Raw())
	default:
		if err := c.re.SetValue(v); err != nil {
			return err
		}
		return c.im.SetZero(1)
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Ownership
// ─────────────────────────────────────────────────────────────────────────────

// IsValid reports whether both fields of c own storage.
func (c *Complex) IsValid() bool { return c != nil && traits{}.Valid(c) }

// Release drops the storage of c, leaving it empty.
func (c *Complex) Release() { traits{}.Release(c) }

// Copy returns a deep copy of c.
func (c *Complex) Copy() *Complex {
	r := &Complex{}
	r.re.Set(&c.re)
	r.im.Set(&c.im)
	return r
}

// Set makes z a deep copy of x, including its precision, and returns z.
func (z *Complex) Set(x *Complex) *Complex {
	if z != x {
		z.re.Set(&x.re)
		z.im.Set(&x.im)
	}
	return z
}

// Move transfers the storage of c into a new Complex and leaves c empty.
func (c *Complex) Move() *Complex {
	r := &Complex{}
	r.MoveFrom(c)
	return r
}

// MoveFrom releases the storage of z and takes over that of x, leaving x
// empty. Moving a Complex into itself is a no-op.
func (z *Complex) MoveFrom(x *Complex) *Complex {
	if z != x {
		z.re.MoveFrom(&x.re)
		z.im.MoveFrom(&x.im)
	}
	return z
}

// Swap exchanges the storage of z and x.
func (z *Complex) Swap(x *Complex) { traits{}.Swap(z, x) }

// ─────────────────────────────────────────────────────────────────────────────
// Precision
// ─────────────────────────────────────────────────────────────────────────────

// Prec returns the precision shared by both fields, or 0 when c is empty.
func (c *Complex) Prec() uint { return c.re.Prec() }

// SetPrec changes the precision of c destructively: both fields are reset
// to zero.
func (c *Complex) SetPrec(prec uint) error {
	if err := c.re.SetPrec(prec); err != nil {
		return err
	}
	return c.im.SetPrec(prec)
}

// PrecRound changes the precision of c, rounding both fields to nearest.
func (c *Complex) PrecRound(prec uint) error {
	if !c.IsValid() {
		return apperrors.NewInvalidArgument("prec round", "the complex is in the moved-from state")
	}
	if err := c.re.PrecRound(prec); err != nil {
		return err
	}
	return c.im.PrecRound(prec)
}

// syncPrec raises the field of lower precision to the precision of the
// other, restoring the shared-precision invariant after a view mutation.
func (c *Complex) syncPrec() error {
	pr, pi := c.re.Prec(), c.im.Prec()
	switch {
	case pr == pi:
		return nil
	case pr > pi:
		return c.im.PrecRound(pr)
	default:
		return c.re.PrecRound(pi)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Parts
// ─────────────────────────────────────────────────────────────────────────────

// SetReal makes c equal to x+0i at x's precision.
func (c *Complex) SetReal(x *mpreal.Real) error {
	if !x.IsValid() {
		return apperrors.NewInvalidArgument("set real", "the source real is in the moved-from state")
	}
	err := c.WithField(RealPart, func(re *mpreal.Real) error {
		re.Set(x)
		return nil
	})
	if err != nil {
		return err
	}
	return c.WithField(ImagPart, func(im *mpreal.Real) error {
		return im.SetPrec(x.Prec())
	})
}

// SetParts stores re and im, rounded to the precision of c. An empty c
// takes the larger of the deduced precisions.
func (c *Complex) SetParts(re, im any) error {
	if !c.IsValid() {
		n, err := FromParts(re, im)
		if err != nil {
			return err
		}
		c.MoveFrom(n)
		return nil
	}
	prec := c.Prec()
	r, err := mpreal.FromValue(re, prec)
	if err != nil {
		return err
	}
	i, err := mpreal.FromValue(im, prec)
	if err != nil {
		return err
	}
	c.re.MoveFrom(r)
	c.im.MoveFrom(i)
	return nil
}

// Re returns a copy of the real part.
func (c *Complex) Re() *mpreal.Real { return c.re.Copy() }

// Im returns a copy of the imaginary part.
func (c *Complex) Im() *mpreal.Real { return c.im.Copy() }

// ToReal returns a copy of the real part and true when the imaginary part is
// zero, and nil and false otherwise.
func (c *Complex) ToReal() (*mpreal.Real, bool) {
	if !c.IsValid() || !c.im.IsZero() {
		return nil, false
	}
	return c.re.Copy(), true
}

// RealValue is ToReal reporting a non-zero imaginary part as a domain error.
func (c *Complex) RealValue() (*mpreal.Real, error) {
	if !c.IsValid() {
		return nil, apperrors.NewInvalidArgument("real value", "the complex is in the moved-from state")
	}
	r, ok := c.ToReal()
	if !ok {
		return nil, apperrors.NewDomainError("real value", "cannot convert %s to a real: the imaginary part is not zero", c)
	}
	return r, nil
}

// Complex128 returns the complex128 nearest to c.
func (c *Complex) Complex128() complex128 {
	re, _ := c.re.Float64()
	im, _ := c.im.Float64()
	return complex(re, im)
}

// ─────────────────────────────────────────────────────────────────────────────
// Predicates
// ─────────────────────────────────────────────────────────────────────────────

// IsZero reports whether both parts are zero.
func (c *Complex) IsZero() bool { return c.re.IsZero() && c.im.IsZero() }

// IsOne reports whether c is exactly 1+0i.
func (c *Complex) IsOne() bool { return c.re.IsOne() && c.im.IsZero() }

// Equal reports whether x and y hold the same value, regardless of their
// precisions.
func (x *Complex) Equal(y *Complex) bool {
	return x.re.Equal(&y.re) && x.im.Equal(&y.im)
}

// EqualReal reports whether x equals y+0i.
func (x *Complex) EqualReal(y *mpreal.Real) bool {
	return x.im.IsZero() && x.re.Equal(y)
}

// String formats c as "(re,im)".
func (c *Complex) String() string {
	if !c.IsValid() {
		return "<empty>"
	}
	return fmt.Sprintf("(%s,%s)", c.re.String(), c.im.String())
}
