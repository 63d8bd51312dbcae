package rpn

import (
	"context"

	"github.com/agbru/mpnum/internal/mpcomplex"
)

type complexEvaluator struct {
	opts    Options
	scratch *mpcomplex.Scratch
	binary  map[string]mpcomplex.Binary
	unary   map[string]mpcomplex.Unary
}

func newComplexEvaluator(opts Options) *complexEvaluator {
	e := &complexEvaluator{
		opts:    opts,
		scratch: mpcomplex.NewScratch(),
		binary: map[string]mpcomplex.Binary{
			"+": mpcomplex.Add, "-": mpcomplex.Sub, "*": mpcomplex.Mul, "/": mpcomplex.Quo,
		},
		unary: map[string]mpcomplex.Unary{
			"neg": mpcomplex.Neg, "conj": mpcomplex.Conj, "sqr": mpcomplex.Sqr, "sqrt": mpcomplex.Sqrt,
			"abs": mpcomplex.Abs, "norm": mpcomplex.Norm, "proj": mpcomplex.Proj,
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
func (e *complexEvaluator) Eval(ctx context.Context, expr string) (Result, error) {
	var st stack[mpcomplex.Complex]
	err := run(ctx, expr, true, func(toks []Token, i int) (int, error) {
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

func (e *complexEvaluator) step(st *stack[mpcomplex.Complex], toks []Token, i int) (int, error) {
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
		z, err := e.scratch.Eval(e.binary[opTok.Text], mpcomplex.Move(xs[0]), lit)
		if err != nil {
			return 0, err
		}
		st.push(z)
		return 2, nil
	}

	switch tok.Kind {
	case Number, Imaginary:
		lit, err := parseLiteral(tok, e.opts.Prec)
		if err != nil {
			return 0, err
		}
		re, im := any(lit), any(0)
		if tok.Kind == Imaginary {
			re, im = 0, lit
		}
		c, err := mpcomplex.FromPartsPrec(re, im, e.opts.Prec)
		if err != nil {
			return 0, err
		}
		st.push(c)
		return 1, nil
	}

	if ok, err := st.manipulate(tok, (*mpcomplex.Complex).Copy); ok {
		return 1, err
	}
	if op, ok := e.binary[tok.Text]; ok {
		xs, err := st.pop(tok, 2)
		if err != nil {
			return 0, err
		}
		z, err := op.Eval(mpcomplex.Move(xs[0]), mpcomplex.Move(xs[1]))
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
	return 0, unsupported(tok, "complex")
}
