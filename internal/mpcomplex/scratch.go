package mpcomplex

import "github.com/agbru/mpnum/internal/dispatch"

// Scratch converts foreign operands (complex128, reals, native numbers,
// math/big values) into temporary Complex values so that binary operations
// can mix them with Complex operands. A Scratch is safe for concurrent use.
type Scratch struct {
	pool *dispatch.Pool[Complex, Handle]
}

// NewScratch creates a Scratch with an empty pool.
func NewScratch() *Scratch {
	return &Scratch{pool: dispatch.NewPool[Complex, Handle](traits{})}
}

// Into stores op(x, v) into z.
func (s *Scratch) Into(op Binary, z *Complex, x Operand, v any) error {
	tmp, err := s.convert(v)
	if err != nil {
		return err
	}
	defer s.pool.Release(tmp)
	return op.Into(z, x, Borrow(tmp))
}

// IntoLeft stores op(v, y) into z.
func (s *Scratch) IntoLeft(op Binary, z *Complex, v any, y Operand) error {
	tmp, err := s.convert(v)
	if err != nil {
		return err
	}
	defer s.pool.Release(tmp)
	return op.Into(z, Borrow(tmp), y)
}

// Eval returns op(x, v) as a new Complex.
func (s *Scratch) Eval(op Binary, x Operand, v any) (*Complex, error) {
	tmp, err := s.convert(v)
	if err != nil {
		return nil, err
	}
	defer s.pool.Release(tmp)
	return op.Eval(x, Borrow(tmp))
}

// EvalLeft returns op(v, y) as a new Complex.
func (s *Scratch) EvalLeft(op Binary, v any, y Operand) (*Complex, error) {
	tmp, err := s.convert(v)
	if err != nil {
		return nil, err
	}
	defer s.pool.Release(tmp)
	return op.Eval(Borrow(tmp), y)
}

func (s *Scratch) convert(v any) (*Complex, error) {
	prec, err := deduce(v)
	if err != nil {
		return nil, err
	}
	tmp := s.pool.Acquire(prec)
	if err := tmp.setValue(v); err != nil {
		s.pool.Release(tmp)
		return nil, err
	}
	return tmp, nil
}
