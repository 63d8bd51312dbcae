package rpn

import (
	"context"
	"math/big"

	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/precision"
)

// Options configures an evaluator.
type Options struct {
	// Prec is the precision of numeric literals.
	Prec uint
	// Mode is the rounding mode of every arithmetic operation.
	Mode big.RoundingMode
	// Complex selects complex arithmetic and enables imaginary literals.
	Complex bool
}

// Result is the final stack of an evaluation.
type Result struct {
	Expr string
	// Values holds the formatted stack, bottom first.
	Values []string
	// Prec is the precision of the top value.
	Prec uint
}

// Evaluator evaluates expressions. Implementations are not safe for
// concurrent use; create one per goroutine.
type Evaluator interface {
	Eval(ctx context.Context, expr string) (Result, error)
}

// New returns an evaluator for opts.
func New(opts Options) (Evaluator, error) {
	if err := precision.Check(opts.Prec); err != nil {
		return nil, err
	}
	if opts.Complex {
		return newComplexEvaluator(opts), nil
	}
	return newRealEvaluator(opts), nil
}

// run drives the token loop shared by both evaluators. step handles tokens
// at index i and returns how many tokens it consumed.
func run(ctx context.Context, expr string, complexMode bool, step func(toks []Token, i int) (int, error)) error {
	toks, err := Tokenize(expr, complexMode)
	if err != nil {
		return err
	}
	for i := 0; i < len(toks); {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := step(toks, i)
		if err != nil {
			return err
		}
		i += n
	}
	return nil
}

// fusable reports whether toks[i] is a real literal immediately consumed by
// a binary operator with an operand already on the stack.
func fusable(toks []Token, i, depth int) bool {
	return depth > 0 && toks[i].Kind == Number && i+1 < len(toks) &&
		toks[i+1].Kind == Operator && binary(toks[i+1].Text)
}

// parseLiteral parses a real literal at prec. An empty imaginary literal
// ("i") stands for one.
func parseLiteral(tok Token, prec uint) (*big.Float, error) {
	text := tok.Text
	if tok.Kind == Imaginary && (text == "" || text == "+" || text == "-") {
		text += "1"
	}
	f, _, err := big.ParseFloat(text, 0, prec, big.ToNearestEven)
	if err != nil {
		return nil, apperrors.ValidationError{Field: tok.Text, Message: "not a number or operator"}
	}
	return f, nil
}

func unsupported(tok Token, mode string) error {
	return apperrors.ValidationError{Field: tok.Text, Message: "not supported in " + mode + " mode"}
}

func wrap(expr string, err error) error {
	if err == nil || apperrors.IsContextError(err) {
		return err
	}
	return apperrors.CalculationError{Expr: expr, Cause: err}
}
