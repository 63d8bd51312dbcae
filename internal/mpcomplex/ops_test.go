package mpcomplex

import (
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
)

func TestAdd_UnifiesPrecision(t *testing.T) {
	t.Parallel()
	a, b := mustComplex(t, 1+2i, 8), mustComplex(t, 3+4i, 16)
	z, err := Add.Eval(Borrow(a), Borrow(b))
	if err != nil {
		t.Fatal(err)
	}
	if z.Complex128() != 4+6i || z.Prec() != 16 || z.im.Prec() != 16 {
		t.Errorf("got %v at %d", z, z.Prec())
	}
}

func TestAdd_StealsMovedTemporary(t *testing.T) {
	t.Parallel()
	x := mustComplex(t, 0, 8)
	a, b := mustComplex(t, 1+1i, 16), mustComplex(t, 2+2i, 8)
	reRaw, imRaw := a.re.Raw(), a.im.Raw()

	if err := Add.Into(x, Move(a), Borrow(b)); err != nil {
		t.Fatal(err)
	}
	if x.re.Raw() != reRaw || x.im.Raw() != imRaw {
		t.Error("x should hold both fields of the moved operand")
	}
	if a.IsValid() || a.re.IsValid() || a.im.IsValid() {
		t.Error("the stolen operand should be fully empty")
	}
	if x.Complex128() != 3+3i {
		t.Errorf("got %v", x)
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		eval func(x, y *Complex) (*Complex, error)
		x, y complex128
		want complex128
	}{
		{"sub", func(x, y *Complex) (*Complex, error) { return Sub.Eval(Borrow(x), Borrow(y)) }, 1 + 2i, 3 + 5i, -2 - 3i},
		{"mul", func(x, y *Complex) (*Complex, error) { return Mul.Eval(Borrow(x), Borrow(y)) }, 1 + 2i, 3 + 4i, -5 + 10i},
		{"quo", func(x, y *Complex) (*Complex, error) { return Quo.Eval(Borrow(x), Borrow(y)) }, -5 + 10i, 3 + 4i, 1 + 2i},
		{"neg", func(x, _ *Complex) (*Complex, error) { return Neg.Eval(Borrow(x)) }, 1 - 2i, 0, -1 + 2i},
		{"conj", func(x, _ *Complex) (*Complex, error) { return Conj.Eval(Borrow(x)) }, 1 - 2i, 0, 1 + 2i},
		{"sqr", func(x, _ *Complex) (*Complex, error) { return Sqr.Eval(Borrow(x)) }, 1 + 2i, 0, -3 + 4i},
		{"sqrt right half-plane", func(x, _ *Complex) (*Complex, error) { return Sqrt.Eval(Borrow(x)) }, 3 + 4i, 0, 2 + 1i},
		{"sqrt left half-plane", func(x, _ *Complex) (*Complex, error) { return Sqrt.Eval(Borrow(x)) }, -3 + 4i, 0, 1 + 2i},
		{"sqrt negative real", func(x, _ *Complex) (*Complex, error) { return Sqrt.Eval(Borrow(x)) }, -4, 0, 2i},
		{"sqrt zero", func(x, _ *Complex) (*Complex, error) { return Sqrt.Eval(Borrow(x)) }, 0, 0, 0},
		{"abs", func(x, _ *Complex) (*Complex, error) { return Abs.Eval(Borrow(x)) }, 3 - 4i, 0, 5},
		{"norm", func(x, _ *Complex) (*Complex, error) { return Norm.Eval(Borrow(x)) }, 3 - 4i, 0, 25},
		{"proj finite", func(x, _ *Complex) (*Complex, error) { return Proj.Eval(Borrow(x)) }, 3 - 4i, 0, 3 - 4i},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z, err := tt.eval(mustComplex(t, tt.x, 53), mustComplex(t, tt.y, 53))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, z.Complex128()); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSqrt_BranchCut(t *testing.T) {
	t.Parallel()
	x, err := FromPartsPrec(-4, math.Copysign(0, -1), 53)
	if err != nil {
		t.Fatal(err)
	}
	z, err := Sqrt.Eval(Borrow(x))
	if err != nil {
		t.Fatal(err)
	}
	if z.Complex128() != -2i {
		t.Errorf("sqrt(-4-0i) = %v, want -2i", z)
	}
}

func TestProj_Infinity(t *testing.T) {
	t.Parallel()
	x, err := FromPartsPrec(math.Inf(-1), -1.0, 53)
	if err != nil {
		t.Fatal(err)
	}
	if err := Proj.Apply(x); err != nil {
		t.Fatal(err)
	}
	re, _ := x.re.Float64()
	im, _ := x.im.Float64()
	if !math.IsInf(re, 1) || im != 0 || !math.Signbit(im) {
		t.Errorf("proj(-inf-1i) = %v", x)
	}
}

func TestDomainErrors(t *testing.T) {
	t.Parallel()
	if _, err := Quo.Eval(Borrow(mustComplex(t, 1, 53)), Borrow(mustComplex(t, 0, 53))); !apperrors.IsDomain(err) {
		t.Errorf("division by zero should be a domain error, got %v", err)
	}
	inf, _ := FromPartsPrec(math.Inf(1), 0, 53)
	if _, err := Mul.Eval(Borrow(inf), Borrow(mustComplex(t, 0, 53))); !apperrors.IsDomain(err) {
		t.Errorf("inf*0 should be a domain error, got %v", err)
	}
}

func TestMulAliasing(t *testing.T) {
	t.Parallel()
	x := mustComplex(t, 1+2i, 64)
	if err := Mul.Into(x, Borrow(x), Borrow(x)); err != nil {
		t.Fatal(err)
	}
	if x.Complex128() != -3+4i {
		t.Errorf("x*x into x = %v", x)
	}
	if err := Quo.Apply(x, x); err != nil {
		t.Fatal(err)
	}
	if !x.IsOne() {
		t.Errorf("x/x into x = %v", x)
	}
}

func TestWithMode(t *testing.T) {
	t.Parallel()
	one, three := mustComplex(t, 1+1i, 8), mustComplex(t, 3, 8)
	down, err := Quo.WithMode(big.ToZero).Eval(Borrow(one), Borrow(three))
	if err != nil {
		t.Fatal(err)
	}
	up, err := Quo.WithMode(big.AwayFromZero).Eval(Borrow(one), Borrow(three))
	if err != nil {
		t.Fatal(err)
	}
	if down.re.Cmp(&up.re) >= 0 || down.im.Cmp(&up.im) >= 0 {
		t.Errorf("ToZero %v should be below AwayFromZero %v", down, up)
	}
	if down.re.Raw().Mode() != big.ToNearestEven || down.im.Raw().Mode() != big.ToNearestEven {
		t.Error("kernels must restore the rounding mode")
	}
	if Sqrt.WithMode(big.ToZero).Name() != "sqrt" || Add.Name() != "add" {
		t.Error("names")
	}
}

func TestMovedFromOperand(t *testing.T) {
	t.Parallel()
	x := mustComplex(t, 1, 16)
	_ = x.Move()
	if _, err := Add.Eval(Borrow(x), Borrow(mustComplex(t, 1, 16))); !apperrors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument error, got %v", err)
	}
}

type countRecorder struct{ n map[dispatch.Branch]int }

func (c *countRecorder) Record(_ string, b dispatch.Branch, _ uint) { c.n[b]++ }

func TestConfigure(t *testing.T) {
	rec := &countRecorder{n: map[dispatch.Branch]int{}}
	Configure(dispatch.WithRecorder(rec))
	t.Cleanup(func() { Configure() })

	z, err := Add.Eval(Move(mustComplex(t, 1, 32)), Borrow(mustComplex(t, 1i, 16)))
	if err != nil {
		t.Fatal(err)
	}
	if err := Sqr.Apply(z); err != nil {
		t.Fatal(err)
	}
	want := map[dispatch.Branch]int{dispatch.BranchReturnSteal: 1, dispatch.BranchDirect: 1}
	if diff := cmp.Diff(want, rec.n); diff != "" {
		t.Errorf("branch counts mismatch (-want +got):\n%s", diff)
	}
}

func TestFailedKernelKeepsOperands(t *testing.T) {
	t.Parallel()
	infPlusI := complex(math.Inf(1), 1)

	t.Run("apply", func(t *testing.T) {
		t.Parallel()
		z := mustComplex(t, infPlusI, 53)
		if err := Add.Apply(z, mustComplex(t, complex(math.Inf(-1), 0), 53)); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if got := z.Complex128(); got != infPlusI {
			t.Errorf("z = %v, want %v", got, infPlusI)
		}
	})

	t.Run("moved operand", func(t *testing.T) {
		t.Parallel()
		out := mustComplex(t, 0, 16)
		a := mustComplex(t, infPlusI, 64)
		b := mustComplex(t, complex(math.Inf(-1), 2), 32)
		if err := Sub.Into(out, Move(a), Borrow(mustComplex(t, infPlusI, 32))); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if !a.IsValid() || a.Complex128() != infPlusI || a.Prec() != 64 {
			t.Errorf("moved operand = %v at prec %d", a, a.Prec())
		}
		if err := Add.Into(out, Move(a), Borrow(b)); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if !a.IsValid() || a.Complex128() != infPlusI {
			t.Errorf("moved operand = %v after a second failure", a)
		}
	})

	t.Run("self product", func(t *testing.T) {
		t.Parallel()
		z := mustComplex(t, complex(math.Inf(1), 0), 53)
		if err := Sub.Into(z, Borrow(z), Borrow(z)); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if got := z.Complex128(); got != complex(math.Inf(1), 0) {
			t.Errorf("z = %v", got)
		}
	})
}
