package rpn

import (
	"context"

	"github.com/agbru/mpnum/internal/mpreal"
)

type realEvaluator struct {
	opts    Options
	scratch *mpreal.Scratch
	binary  map[string]mpreal.Binary
	unary   map[string]mpreal.Unary
}

func newRealEvaluator(opts Options) *realEvaluator {
	e := &realEvaluator{
		opts:    opts,
		scratch: mpreal.NewScratch(),
		binary: map[string]mpreal.Binary{
			"+": mpreal.Add, "-": mpreal.Sub, "*": mpreal.Mul, "/": mpreal.Quo,
		},
		unary: map[string]mpreal.Unary{
			"neg": mpreal.Neg, "abs": mpreal.Abs, "sqr": mpreal.Sqr, "sqrt": mpreal.Sqrt,
			"trunc": mpreal.Trunc, "floor": mpreal.Floor, "ceil": mpreal.Ceil, "frac": mpreal.Frac,
		},
	}
	for k, op := range e.binary {
		e.binary[k] = op.WithMode(opts.Mode)
	}
	for k, op := range e.unary {
		e.unary[k] = op.WithMode(opts.Mode)
	}
	return e
}

// Eval implements Evaluator.
func (e *realEvaluator) Eval(ctx context.Context, expr string) (Result, error) {
	var st stack[mpreal.Real]
	err := run(ctx, expr, false, func(toks []Token, i int) (int, error) {
		return e.step(&st, toks, i)
	})
	if err != nil {
		return Result{}, wrap(expr, err)
	}
	res := Result{Expr: expr, Values: make([]string, 0, st.len())}
	for _, v := range st.items {
		res.Values = append(res.Values, v.String())
	}
	if st.len() > 0 {
		res.Prec = st.top().Prec()
	}
	return res, nil
}

func (e *realEvaluator) step(st *stack[mpreal.Real], toks []Token, i int) (int, error) {
	tok := toks[i]
	if fusable(toks, i, st.len()) {
		lit, err := parseLiteral(tok, e.opts.Prec)
		if err != nil {
			return 0, err
		}
		opTok := toks[i+1]
		xs, err := st.pop(opTok, 1)
		if err != nil {
			return 0, err
		}
		z, err := e.scratch.Eval(e.binary[opTok.Text], mpreal.Move(xs[0]), lit)
		if err != nil {
			return 0, err
		}
		st.push(z)
		return 2, nil
	}

	switch tok.Kind {
	case Number:
		lit, err := parseLiteral(tok, e.opts.Prec)
		if err != nil {
			return 0, err
		}
		x, err := mpreal.FromBigFloat(lit)
		if err != nil {
			return 0, err
		}
		st.push(x)
		return 1, nil
	case Imaginary:
		return 0, unsupported(tok, "real")
	}

	if ok, err := st.manipulate(tok, (*mpreal.Real).Copy); ok {
		return 1, err
	}
	if op, ok := e.binary[tok.Text]; ok {
		xs, err := st.pop(tok, 2)
		if err != nil {
			return 0, err
		}
		z, err := op.Eval(mpreal.Move(xs[0]), mpreal.Move(xs[1]))
		if err != nil {
			return 0, err
		}
		st.push(z)
		return 1, nil
	}
	if op, ok := e.unary[tok.Text]; ok {
		xs, err := st.pop(tok, 1)
		if err != nil {
			return 0, err
		}
		if err := op.Apply(xs[0]); err != nil {
			return 0, err
		}
		st.push(xs[0])
		return 1, nil
	}
	if tok.Text == "modf" {
		xs, err := st.pop(tok, 1)
		if err != nil {
			return 0, err
		}
		fp := &mpreal.Real{}
		if err := mpreal.Modf.Into(xs[0], fp, mpreal.Borrow(xs[0])); err != nil {
			return 0, err
		}
		st.push(xs[0], fp)
		return 1, nil
	}
	return 0, unsupported(tok, "real")
}
