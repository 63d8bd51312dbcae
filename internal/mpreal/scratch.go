package mpreal

import (
	"math/big"

	"github.com/agbru/mpnum/internal/dispatch"
	"github.com/agbru/mpnum/internal/precision"
)

// Scratch converts foreign operands (native numbers, math/big values) into
// temporary Reals so that binary operations can mix them with Reals. The
// temporaries are recycled through a pool and never escape a call. A
// Scratch is safe for concurrent use.
type Scratch struct {
	pool *dispatch.Pool[Real, *big.Float]
}

// NewScratch creates a Scratch with an empty pool.
func NewScratch() *Scratch {
	return &Scratch{pool: dispatch.NewPool(Traits())}
}

// Into stores op(x, v) into z. v is converted at its deduced precision, so
// the result precision is the larger of x's and v's.
func (s *Scratch) Into(op Binary, z *Real, x Operand, v any) error {
	tmp, err := s.convert(v)
	if err != nil {
		return err
	}
	defer s.pool.Release(tmp)
	return op.Into(z, x, Borrow(tmp))
}

// IntoLeft stores op(v, y) into z, for non-commutative operations whose
// foreign operand comes first.
func (s *Scratch) IntoLeft(op Binary, z *Real, v any, y Operand) error {
	tmp, err := s.convert(v)
	if err != nil {
		return err
	}
	defer s.pool.Release(tmp)
	return op.Into(z, Borrow(tmp), y)
}

// Eval returns op(x, v) as a new Real.
func (s *Scratch) Eval(op Binary, x Operand, v any) (*Real, error) {
	tmp, err := s.convert(v)
	if err != nil {
		return nil, err
	}
	defer s.pool.Release(tmp)
	return op.Eval(x, Borrow(tmp))
}

// EvalLeft returns op(v, y) as a new Real.
func (s *Scratch) EvalLeft(op Binary, v any, y Operand) (*Real, error) {
	tmp, err := s.convert(v)
	if err != nil {
		return nil, err
	}
	defer s.pool.Release(tmp)
	return op.Eval(Borrow(tmp), y)
}

func (s *Scratch) convert(v any) (*Real, error) {
	prec, err := precision.Deduce(v)
	if err != nil {
		return nil, err
	}
	tmp := s.pool.Acquire(prec)
	if err := setValue(tmp.buf, v); err != nil {
		s.pool.Release(tmp)
		return nil, err
	}
	return tmp, nil
}
