package mpreal

import (
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func newParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

func sameResult(got, want *Real) bool {
	return got.Equal(want) && got.Prec() == want.Prec()
}

// nonZero builds a Real from v at prec, replacing zero by one so that every
// operation stays inside its domain.
func nonZero(v float64, prec uint) *Real {
	if v == 0 {
		v = 1
	}
	x, _ := FromValue(v, prec)
	return x
}

// TestAliasing_PropertyBased verifies that writing a result over one or all
// of the operands gives the same value as writing it to a fresh Real, for
// every operation.
func TestAliasing_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(newParameters())
	value := gen.Float64Range(-1e12, 1e12)
	prec := gen.UIntRange(2, 300)

	for _, op := range []Binary{Add, Sub, Mul, Quo} {
		properties.Property(op.Name()+" tolerates output aliasing", prop.ForAll(
			func(vx, vy float64, px, py uint) bool {
				x, y := nonZero(vx, px), nonZero(vy, py)
				want, err := op.Eval(Borrow(x), Borrow(y))
				if err != nil {
					return false
				}
				square, err := op.Eval(Borrow(x), Borrow(x))
				if err != nil {
					return false
				}

				outX, outY, both := x.Copy(), y.Copy(), x.Copy()
				if op.Into(outX, Borrow(outX), Borrow(y)) != nil ||
					op.Into(outY, Borrow(x), Borrow(outY)) != nil ||
					op.Into(both, Borrow(both), Borrow(both)) != nil {
					return false
				}
				return sameResult(outX, want) && sameResult(outY, want) && sameResult(both, square)
			},
			value, value, prec, prec,
		))
	}

	for _, op := range []Ternary{Fma, Fms} {
		properties.Property(op.Name()+" tolerates output aliasing", prop.ForAll(
			func(va, vb, vc float64, pa, pb, pc uint) bool {
				a, b, c := nonZero(va, pa), nonZero(vb, pb), nonZero(vc, pc)
				want, err := op.Eval(Borrow(a), Borrow(b), Borrow(c))
				if err != nil {
					return false
				}
				cube, err := op.Eval(Borrow(a), Borrow(a), Borrow(a))
				if err != nil {
					return false
				}

				outA, outB, outC, all := a.Copy(), b.Copy(), c.Copy(), a.Copy()
				if op.Into(outA, Borrow(outA), Borrow(b), Borrow(c)) != nil ||
					op.Into(outB, Borrow(a), Borrow(outB), Borrow(c)) != nil ||
					op.Into(outC, Borrow(a), Borrow(b), Borrow(outC)) != nil ||
					op.Into(all, Borrow(all), Borrow(all), Borrow(all)) != nil {
					return false
				}
				return sameResult(outA, want) && sameResult(outB, want) &&
					sameResult(outC, want) && sameResult(all, cube)
			},
			value, value, value, prec, prec, prec,
		))
	}

	for _, op := range []Unary{Neg, Abs, Sqr, Sqrt, Trunc, Floor, Ceil, Frac} {
		properties.Property(op.Name()+" tolerates output aliasing", prop.ForAll(
			func(v float64, p uint) bool {
				if op.Name() == "sqrt" && v < 0 {
					v = -v
				}
				x, _ := FromValue(v, p)
				want, err := op.Eval(Borrow(x))
				if err != nil {
					return false
				}
				if err := op.Into(x, Borrow(x)); err != nil {
					return false
				}
				return sameResult(x, want)
			},
			gen.Float64Range(-1e6, 1e6), prec,
		))
	}

	properties.TestingRun(t)
}

// TestPrecisionUnification_PropertyBased verifies that every result carries
// the largest operand precision, whether or not an operand was moved.
func TestPrecisionUnification_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(newParameters())

	properties.Property("mul result precision is max(px, py)", prop.ForAll(
		func(px, py uint, move bool) bool {
			x, _ := FromValue(3, px)
			y, _ := FromValue(5, py)
			ox := Borrow(x)
			if move {
				ox = Move(x)
			}
			z, err := Mul.Eval(ox, Borrow(y))
			if err != nil {
				return false
			}
			return z.Prec() == max(px, py) && z.Cmp(FromInt64(15)) == 0
		},
		gen.UIntRange(4, 1000),
		gen.UIntRange(4, 1000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

// TestOwnership_PropertyBased verifies the move and swap invariants.
func TestOwnership_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(newParameters())

	properties.Property("double swap is the identity", prop.ForAll(
		func(va, vb float64, pa, pb uint) bool {
			a, _ := FromValue(va, pa)
			b, _ := FromValue(vb, pb)
			ca, cb := a.Copy(), b.Copy()
			a.Swap(b)
			if !a.Equal(cb) || a.Prec() != cb.Prec() {
				return false
			}
			a.Swap(b)
			return a.Equal(ca) && b.Equal(cb) && a.Prec() == pa && b.Prec() == pb
		},
		gen.Float64Range(-1e9, 1e9),
		gen.Float64Range(-1e9, 1e9),
		gen.UIntRange(2, 200),
		gen.UIntRange(2, 200),
	))

	properties.Property("move empties the source and keeps the value", prop.ForAll(
		func(v float64, p uint) bool {
			a, _ := FromValue(v, p)
			want := a.Copy()
			b := a.Move()
			return !a.IsValid() && b.Equal(want) && b.Prec() == p
		},
		gen.Float64Range(-1e9, 1e9),
		gen.UIntRange(2, 200),
	))

	properties.TestingRun(t)
}

// TestModf_PropertyBased verifies that the integer and fractional parts sum
// back to the operand exactly.
func TestModf_PropertyBased(t *testing.T) {
	properties := gopter.NewProperties(newParameters())

	properties.Property("ip + fp == x", prop.ForAll(
		func(v float64) bool {
			x, _ := FromFloat64(v)
			ip, fp, err := Modf.Eval(Borrow(x))
			if err != nil {
				return false
			}
			sum := new(big.Float).SetPrec(2 * x.Prec()).Add(ip.Raw(), fp.Raw())
			return sum.Cmp(x.Raw()) == 0 && ip.IsInt() && fp.Raw().MantExp(nil) <= 0
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.TestingRun(t)
}
