package dispatch

import (
	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/logging"
	"github.com/agbru/mpnum/internal/precision"
)

// Engine dispatches kernels over values of type T with storage handles of
// type S. An Engine holds no per-call state and is safe for concurrent use
// as long as no value is shared between goroutines.
type Engine[T any, S any] struct {
	traits   Traits[T, S]
	policy   precision.Policy
	recorder Recorder
	logger   logging.Logger
}

type options struct {
	policy   precision.Policy
	recorder Recorder
	logger   logging.Logger
}

// Option configures an Engine during construction.
type Option func(*options)

// WithRecorder attaches a Recorder notified after every dispatch.
func WithRecorder(r Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// WithLogger attaches a logger receiving one debug record per dispatch.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPolicy overrides the precision policy used to validate floors.
func WithPolicy(p precision.Policy) Option {
	return func(o *options) { o.policy = p }
}

// New creates an engine over the given traits.
func New[T any, S any](traits Traits[T, S], opts ...Option) *Engine[T, S] {
	o := options{policy: precision.Default}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T, S]{traits: traits, policy: o.policy, recorder: o.recorder, logger: o.logger}
}

// With returns a copy of e with additional options applied. The traits are
// shared.
func (e *Engine[T, S]) With(opts ...Option) *Engine[T, S] {
	o := options{policy: e.policy, recorder: e.recorder, logger: e.logger}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine[T, S]{traits: e.traits, policy: o.policy, recorder: o.recorder, logger: o.logger}
}

// Traits returns the traits the engine was built with.
func (e *Engine[T, S]) Traits() Traits[T, S] { return e.traits }

// candidate is the transient steal descriptor of one dispatch.
type candidate[T any] struct {
	v      *T
	prec   uint
	target uint
}

// usable reports whether the candidate can host the result.
func (c candidate[T]) usable() bool {
	return c.v != nil && c.prec == c.target
}

// selectCandidate is phase A: it computes the target precision and the
// movable operand of largest precision, the first one winning on ties.
func (e *Engine[T, S]) selectCandidate(op string, minPrec uint, ops []Operand[T]) (candidate[T], error) {
	var c candidate[T]
	if minPrec != 0 {
		if err := e.policy.Check(minPrec); err != nil {
			return c, apperrors.WrapError(err, "%s", op)
		}
	} else if len(ops) == 0 {
		return c, apperrors.NewInvalidArgument(op, "no operands and no precision floor")
	}
	c.target = minPrec
	for i, o := range ops {
		if o.v == nil || !e.traits.Valid(o.v) {
			return c, apperrors.NewInvalidArgument(op, "operand %d is in the moved-from state", i)
		}
		p := e.traits.Prec(o.v)
		if p > c.target {
			c.target = p
		}
		if o.movable && (c.v == nil || p > c.prec) {
			c.v, c.prec = o.v, p
		}
	}
	return c, nil
}

// Into runs f with out as the destination (explicit-output form). out may be
// empty; it may also be one of the operands.
func (e *Engine[T, S]) Into(op string, out *T, f Kernel[S], minPrec uint, ops ...Operand[T]) error {
	if out == nil {
		return apperrors.NewInvalidArgument(op, "nil output")
	}
	c, err := e.selectCandidate(op, minPrec, ops)
	if err != nil {
		return err
	}

	outPrec := e.traits.Prec(out)
	switch {
	case outPrec == c.target:
		if err := f(e.traits.Handle(out), e.handles(ops)...); err != nil {
			return err
		}
		e.observe(op, BranchDirect, c.target)
	case outPrec > c.target:
		// An out that is also an operand has precision <= target, so out
		// cannot overlap any input here.
		e.traits.Discard(out, c.target)
		if err := f(e.traits.Handle(out), e.handles(ops)...); err != nil {
			return err
		}
		e.observe(op, BranchShrink, c.target)
	case c.usable():
		if err := f(e.traits.Handle(c.v), e.handles(ops)...); err != nil {
			return err
		}
		e.traits.Swap(c.v, out)
		e.traits.Release(c.v)
		e.observe(op, BranchSteal, c.target)
	default:
		// out may overlap an operand, so its value must survive the resize.
		e.traits.Resize(out, c.target)
		if err := f(e.traits.Handle(out), e.handles(ops)...); err != nil {
			return err
		}
		e.observe(op, BranchResize, c.target)
	}
	return nil
}

// Return runs f and returns its result as a new value (return-value form).
func (e *Engine[T, S]) Return(op string, f Kernel[S], minPrec uint, ops ...Operand[T]) (*T, error) {
	c, err := e.selectCandidate(op, minPrec, ops)
	if err != nil {
		return nil, err
	}
	handles := e.handles(ops)

	res := new(T)
	if c.usable() {
		if err := f(e.traits.Handle(c.v), handles...); err != nil {
			return nil, err
		}
		e.traits.Swap(res, c.v)
		e.observe(op, BranchReturnSteal, c.target)
		return res, nil
	}
	e.traits.Alloc(res, c.target)
	if err := f(e.traits.Handle(res), handles...); err != nil {
		return nil, err
	}
	e.observe(op, BranchReturnFresh, c.target)
	return res, nil
}

// Into2 runs a two-output kernel. out1 and out2 must be distinct storage;
// otherwise an invalid-argument error is returned before anything changes.
// Both outputs are resized, keeping their values, to the precision of in.
func (e *Engine[T, S]) Into2(op string, out1, out2 *T, f Kernel2[S], in Operand[T]) error {
	if out1 == nil || out2 == nil {
		return apperrors.NewInvalidArgument(op, "nil output")
	}
	if out1 == out2 || (e.traits.Valid(out1) && e.traits.Valid(out2) && e.traits.SameStorage(out1, out2)) {
		return apperrors.NewInvalidArgument(op, "the two outputs must not share storage")
	}
	if in.v == nil || !e.traits.Valid(in.v) {
		return apperrors.NewInvalidArgument(op, "operand 0 is in the moved-from state")
	}
	target := e.traits.Prec(in.v)
	if e.traits.Prec(out1) != target {
		e.traits.Resize(out1, target)
	}
	if e.traits.Prec(out2) != target {
		e.traits.Resize(out2, target)
	}
	if err := f(e.traits.Handle(out1), e.traits.Handle(out2), e.traits.Handle(in.v)); err != nil {
		return err
	}
	e.observe(op, BranchSplit, target)
	return nil
}

// Return2 runs a two-output kernel into two fresh values at the precision
// of in.
func (e *Engine[T, S]) Return2(op string, f Kernel2[S], in Operand[T]) (*T, *T, error) {
	if in.v == nil || !e.traits.Valid(in.v) {
		return nil, nil, apperrors.NewInvalidArgument(op, "operand 0 is in the moved-from state")
	}
	target := e.traits.Prec(in.v)
	out1, out2 := new(T), new(T)
	e.traits.Alloc(out1, target)
	e.traits.Alloc(out2, target)
	if err := f(e.traits.Handle(out1), e.traits.Handle(out2), e.traits.Handle(in.v)); err != nil {
		return nil, nil, err
	}
	e.observe(op, BranchSplit, target)
	return out1, out2, nil
}

func (e *Engine[T, S]) handles(ops []Operand[T]) []S {
	hs := make([]S, len(ops))
	for i, o := range ops {
		hs[i] = e.traits.Handle(o.v)
	}
	return hs
}

func (e *Engine[T, S]) observe(op string, b Branch, prec uint) {
	if e.recorder != nil {
		e.recorder.Record(op, b, prec)
	}
	if e.logger != nil {
		e.logger.Debug("dispatch",
			logging.String("op", op),
			logging.String("branch", b.String()),
			logging.Uint("prec", prec))
	}
}
