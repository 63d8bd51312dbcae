package mpcomplex

import (
	"math/big"

	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
	"github.com/agbru/mpnum/internal/mpreal"
)

// Operand is a Complex tagged with its ownership mode; see Borrow and Move.
type Operand = dispatch.Operand[Complex]

// Unary is an operation of one operand.
type Unary struct {
	name   string
	kernel dispatch.ModeKernel[Handle]
	mode   big.RoundingMode
}

// Binary is an operation of two operands.
type Binary struct {
	name   string
	kernel dispatch.ModeKernel[Handle]
	mode   big.RoundingMode
}

var (
	Add = Binary{name: "add", kernel: withMode("add", addKernel)}
	Sub = Binary{name: "sub", kernel: withMode("sub", subKernel)}
	Mul = Binary{name: "mul", kernel: withMode("mul", mulKernel)}
	// Quo fails with a domain error when the divisor is zero.
	Quo = Binary{name: "quo", kernel: withMode("quo", quoKernel)}

	Neg  = Unary{name: "neg", kernel: withMode("neg", negKernel)}
	Conj = Unary{name: "conj", kernel: withMode("conj", conjKernel)}
	Sqr  = Unary{name: "sqr", kernel: withMode("sqr", sqrKernel)}
	// Sqrt is the principal square root, with a non-negative real part.
	Sqrt = Unary{name: "sqrt", kernel: withMode("sqrt", sqrtKernel)}
	// Proj is the projection onto the Riemann sphere.
	Proj = Unary{name: "proj", kernel: withMode("proj", projKernel)}

	// Abs and Norm produce |z| and |z|² as a Complex with a zero
	// imaginary part. RealValue extracts the real result.
	Abs  = Unary{name: "abs", kernel: withMode("abs", absKernel)}
	Norm = Unary{name: "norm", kernel: withMode("norm", normKernel)}
)

// Name returns the operation name used in errors and metrics.
func (op Unary) Name() string { return op.name }

// WithMode returns op rounding its results with mode.
func (op Unary) WithMode(mode big.RoundingMode) Unary {
	op.mode = mode
	return op
}

// Into stores op(x) into z.
func (op Unary) Into(z *Complex, x Operand) error {
	if err := checkOut(op.name, z); err != nil {
		return err
	}
	return Engine().Into(op.name, z, dispatch.Rounded(op.kernel, op.mode), 0, x)
}

// Eval returns op(x) as a new Complex.
func (op Unary) Eval(x Operand) (*Complex, error) {
	return Engine().Return(op.name, dispatch.Rounded(op.kernel, op.mode), 0, x)
}

// Apply replaces z with op(z).
func (op Unary) Apply(z *Complex) error { return op.Into(z, Borrow(z)) }

// Name returns the operation name used in errors and metrics.
func (op Binary) Name() string { return op.name }

// WithMode returns op rounding its results with mode.
func (op Binary) WithMode(mode big.RoundingMode) Binary {
	op.mode = mode
	return op
}

// Into stores op(x, y) into z.
func (op Binary) Into(z *Complex, x, y Operand) error {
	if err := checkOut(op.name, z); err != nil {
		return err
	}
	return Engine().Into(op.name, z, dispatch.Rounded(op.kernel, op.mode), 0, x, y)
}

// Eval returns op(x, y) as a new Complex.
func (op Binary) Eval(x, y Operand) (*Complex, error) {
	return Engine().Return(op.name, dispatch.Rounded(op.kernel, op.mode), 0, x, y)
}

// Apply replaces z with op(z, y).
func (op Binary) Apply(z, y *Complex) error { return op.Into(z, Borrow(z), Borrow(y)) }

// checkOut rejects an output whose fields disagree on validity, which only
// happens while a field view is open.
func checkOut(op string, z *Complex) error {
	if z != nil && (z.borrowed || z.re.IsValid() != z.im.IsValid()) {
		return apperrors.NewInvalidArgument(op, "the output has an open field view")
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Mixed Complex/Real Operations
// ─────────────────────────────────────────────────────────────────────────────

// These operate on the fields through views, so only the fields a real
// operand affects are touched. The result precision is the larger of z's
// and y's.

// AddReal replaces z with z + y.
func (z *Complex) AddReal(y *mpreal.Real) error {
	return z.throughViews("add real", mpreal.Add, y, RealPart)
}

// SubReal replaces z with z - y.
func (z *Complex) SubReal(y *mpreal.Real) error {
	return z.throughViews("sub real", mpreal.Sub, y, RealPart)
}

// MulReal replaces z with z·y.
func (z *Complex) MulReal(y *mpreal.Real) error {
	return z.throughViews("mul real", mpreal.Mul, y, RealPart, ImagPart)
}

// QuoReal replaces z with z/y.
func (z *Complex) QuoReal(y *mpreal.Real) error {
	return z.throughViews("quo real", mpreal.Quo, y, RealPart, ImagPart)
}

func (z *Complex) throughViews(name string, op mpreal.Binary, y *mpreal.Real, fields ...Field) error {
	if !z.IsValid() {
		return apperrors.NewInvalidArgument(name, "the complex is in the moved-from state")
	}
	if !y.IsValid() {
		return apperrors.NewInvalidArgument(name, "the real operand is in the moved-from state")
	}
	var err error
	for _, f := range fields {
		err = z.WithField(f, func(x *mpreal.Real) error {
			return op.Apply(x, y)
		})
		if err != nil {
			break
		}
	}
	if serr := z.syncPrec(); err == nil {
		err = serr
	}
	return err
}
