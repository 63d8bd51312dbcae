package mpreal

import (
	"math/big"

	"github.com/agbru/mpnum/internal/dispatch"
)

// Operand is a Real tagged with its ownership mode; see Borrow and Move.
type Operand = dispatch.Operand[Real]

// Unary is an operation of one operand.
type Unary struct {
	name   string
	kernel dispatch.ModeKernel[*big.Float]
	mode   big.RoundingMode
}

// Binary is an operation of two operands.
type Binary struct {
	name   string
	kernel dispatch.ModeKernel[*big.Float]
	mode   big.RoundingMode
}

// Ternary is an operation of three operands.
type Ternary struct {
	name   string
	kernel dispatch.ModeKernel[*big.Float]
	mode   big.RoundingMode
}

// Split is an operation producing two results from one operand.
type Split struct {
	name   string
	kernel dispatch.Kernel2[*big.Float]
}

// Arithmetic operations. Results are rounded to nearest even unless an
// operation is rebound with WithMode.
var (
	Add = Binary{name: "add", kernel: withMode("add", addKernel)}
	Sub = Binary{name: "sub", kernel: withMode("sub", subKernel)}
	Mul = Binary{name: "mul", kernel: withMode("mul", mulKernel)}
	Quo = Binary{name: "quo", kernel: withMode("quo", quoKernel)}

	Neg  = Unary{name: "neg", kernel: withMode("neg", negKernel)}
	Abs  = Unary{name: "abs", kernel: withMode("abs", absKernel)}
	Sqr  = Unary{name: "sqr", kernel: withMode("sqr", sqrKernel)}
	Sqrt = Unary{name: "sqrt", kernel: withMode("sqrt", sqrtKernel)}

	// Fma computes a*b + c and Fms computes a*b - c, rounding once.
	Fma = Ternary{name: "fma", kernel: withMode("fma", fused(false))}
	Fms = Ternary{name: "fms", kernel: withMode("fms", fused(true))}
)

// Integer rounding operations.
var (
	Trunc = Unary{name: "trunc", kernel: withMode("trunc", rounding(0))}
	Floor = Unary{name: "floor", kernel: withMode("floor", rounding(-1))}
	Ceil  = Unary{name: "ceil", kernel: withMode("ceil", rounding(1))}
	Frac  = Unary{name: "frac", kernel: withMode("frac", fracKernel)}

	// Modf splits a value into its integer and fractional parts, both
	// carrying the sign of the operand.
	Modf = Split{name: "modf", kernel: modfKernel}
)

// Name returns the operation name used in errors and metrics.
func (op Unary) Name() string { return op.name }

// WithMode returns op rounding its results with mode.
func (op Unary) WithMode(mode big.RoundingMode) Unary {
	op.mode = mode
	return op
}

// Into stores op(x) into z.
func (op Unary) Into(z *Real, x Operand) error {
	return Engine().Into(op.name, z, dispatch.Rounded(op.kernel, op.mode), 0, x)
}

// Eval returns op(x) as a new Real.
func (op Unary) Eval(x Operand) (*Real, error) {
	return Engine().Return(op.name, dispatch.Rounded(op.kernel, op.mode), 0, x)
}

// Apply replaces z with op(z).
func (op Unary) Apply(z *Real) error { return op.Into(z, Borrow(z)) }

// Name returns the operation name used in errors and metrics.
func (op Binary) Name() string { return op.name }

// WithMode returns op rounding its results with mode.
func (op Binary) WithMode(mode big.RoundingMode) Binary {
	op.mode = mode
	return op
}

// Into stores op(x, y) into z.
func (op Binary) Into(z *Real, x, y Operand) error {
	return Engine().Into(op.name, z, dispatch.Rounded(op.kernel, op.mode), 0, x, y)
}

// Eval returns op(x, y) as a new Real.
func (op Binary) Eval(x, y Operand) (*Real, error) {
	return Engine().Return(op.name, dispatch.Rounded(op.kernel, op.mode), 0, x, y)
}

// Apply replaces z with op(z, y).
func (op Binary) Apply(z, y *Real) error { return op.Into(z, Borrow(z), Borrow(y)) }

// Name returns the operation name used in errors and metrics.
func (op Ternary) Name() string { return op.name }

// WithMode returns op rounding its results with mode.
func (op Ternary) WithMode(mode big.RoundingMode) Ternary {
	op.mode = mode
	return op
}

// Into stores op(a, b, c) into z.
func (op Ternary) Into(z *Real, a, b, c Operand) error {
	return Engine().Into(op.name, z, dispatch.Rounded(op.kernel, op.mode), 0, a, b, c)
}

// Eval returns op(a, b, c) as a new Real.
func (op Ternary) Eval(a, b, c Operand) (*Real, error) {
	return Engine().Return(op.name, dispatch.Rounded(op.kernel, op.mode), 0, a, b, c)
}

// Name returns the operation name used in errors and metrics.
func (op Split) Name() string { return op.name }

// Into stores the two results of op(x) into r1 and r2, which are resized to
// the precision of x. r1 and r2 must be distinct; either may be x itself.
func (op Split) Into(r1, r2 *Real, x Operand) error {
	return Engine().Into2(op.name, r1, r2, op.kernel, x)
}

// Eval returns the two results of op(x) as new Reals.
func (op Split) Eval(x Operand) (*Real, *Real, error) {
	return Engine().Return2(op.name, op.kernel, x)
}
