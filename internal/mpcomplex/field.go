package mpcomplex

import (
	"math/big"

	"github.com/agbru/mpnum/internal/mpreal"
)

// Field selects one part of a Complex.
type Field int

const (
	// RealPart is the real field.
	RealPart Field = iota
	// ImagPart is the imaginary field.
	ImagPart
)

// String returns "re" or "im".
func (f Field) String() string {
	if f == ImagPart {
		return "im"
	}
	return "re"
}

func (c *Complex) slot(f Field) *mpreal.Real {
	switch f {
	case RealPart:
		return &c.re
	case ImagPart:
		return &c.im
	}
	panic("mpcomplex: unknown field")
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutable Field View
// ─────────────────────────────────────────────────────────────────────────────

// FieldRef is a mutable view of one field of a Complex, presented as an
// ordinary *mpreal.Real. Any mpreal operation may write through it,
// including operations that replace or resize its storage. Return writes
// the current storage back into the owner.
type FieldRef struct {
	owner *Complex
	field Field
	val   mpreal.Real
}

// BorrowField opens a mutable view of field f. It panics if c already has
// an open mutable view. The view must be closed with Return:
//
//	re := c.BorrowField(mpcomplex.RealPart)
//	defer re.Return()
func (c *Complex) BorrowField(f Field) *FieldRef {
	if c.borrowed {
		panic("mpcomplex: a mutable field view is already open")
	}
	r := &FieldRef{owner: c, field: f}
	// Shallow alias: r.val shares the field's big.Float until Return.
	r.val = *c.slot(f)
	c.borrowed = true
	return r
}

// Value returns the borrowed field as a Real. The pointer is valid until
// Return.
func (r *FieldRef) Value() *mpreal.Real { return &r.val }

// Field returns the borrowed field.
func (r *FieldRef) Field() Field { return r.field }

// Return writes the view's storage back into the owner and empties the
// view. Calling it more than once is a no-op.
func (r *FieldRef) Return() {
	if r.owner == nil {
		return
	}
	slot := r.owner.slot(r.field)
	slot.Release()
	slot.Swap(&r.val)
	r.owner.borrowed = false
	r.owner = nil
}

// WithField runs fn on a mutable view of field f and closes the view when
// fn returns, even if it panics. The precision of the sibling field is not
// adjusted.
func (c *Complex) WithField(f Field, fn func(x *mpreal.Real) error) error {
	r := c.BorrowField(f)
	defer r.Return()
	return fn(r.Value())
}

// ─────────────────────────────────────────────────────────────────────────────
// Read-only Field View
// ─────────────────────────────────────────────────────────────────────────────

// FieldCRef is a read-only view of one field of a Complex. It exposes no
// mutators and is never written back. Several read-only views may be open
// at once; they must not outlive a mutation of the owner.
type FieldCRef struct {
	val mpreal.Real
}

// ReadField opens a read-only view of field f.
func (c *Complex) ReadField(f Field) *FieldCRef {
	return &FieldCRef{val: *c.slot(f)}
}

// Operand returns the field as a borrowed operand for mpreal operations.
func (r *FieldCRef) Operand() mpreal.Operand { return mpreal.Borrow(&r.val) }

// Prec returns the precision of the field.
func (r *FieldCRef) Prec() uint { return r.val.Prec() }

// IsZero reports whether the field is zero.
func (r *FieldCRef) IsZero() bool { return r.val.IsZero() }

// Sign returns the sign of the field.
func (r *FieldCRef) Sign() int { return r.val.Sign() }

// Cmp compares the field with y.
func (r *FieldCRef) Cmp(y *mpreal.Real) int { return r.val.Cmp(y) }

// Float64 returns the float64 nearest to the field.
func (r *FieldCRef) Float64() (float64, big.Accuracy) { return r.val.Float64() }

// Copy returns a deep copy of the field.
func (r *FieldCRef) Copy() *mpreal.Real { return r.val.Copy() }

// String formats the field like mpreal.Real.String.
func (r *FieldCRef) String() string { return r.val.String() }

// Return closes the view without writing anything back.
func (r *FieldCRef) Return() { r.val = mpreal.Real{} }
