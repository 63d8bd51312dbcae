package mpreal

import (
	"math"
	"math/big"
	"sync"
	"testing"

	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
)

func TestAdd_UnifiesPrecision(t *testing.T) {
	t.Parallel()
	a, b := mustFloat(t, 3, 8), mustFloat(t, 5, 16)

	z, err := Add.Eval(Borrow(a), Borrow(b))
	if err != nil {
		t.Fatal(err)
	}
	if z.Prec() != 16 || f64(z) != 8 {
		t.Errorf("got %v at prec %d, want 8 at prec 16", z, z.Prec())
	}
	if !a.IsValid() || !b.IsValid() {
		t.Error("borrowed operands must survive")
	}
}

func TestAdd_StealsMovedTemporary(t *testing.T) {
	t.Parallel()
	x := mustFloat(t, 0, 8)
	a, b := mustFloat(t, 3, 16), mustFloat(t, 5, 8)
	raw := a.Raw()

	if err := Add.Into(x, Move(a), Borrow(b)); err != nil {
		t.Fatal(err)
	}
	if x.Raw() != raw {
		t.Error("x should hold the moved operand's storage")
	}
	if a.IsValid() {
		t.Error("the stolen operand should be empty")
	}
	if x.Prec() != 16 || f64(x) != 8 {
		t.Errorf("got %v at prec %d", x, x.Prec())
	}
}

func TestArithmetic(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		eval func(x, y *Real) (*Real, error)
		x, y float64
		want float64
	}{
		{"add", func(x, y *Real) (*Real, error) { return Add.Eval(Borrow(x), Borrow(y)) }, 1.5, 2.25, 3.75},
		{"sub", func(x, y *Real) (*Real, error) { return Sub.Eval(Borrow(x), Borrow(y)) }, 1.5, 2.25, -0.75},
		{"mul", func(x, y *Real) (*Real, error) { return Mul.Eval(Borrow(x), Borrow(y)) }, 1.5, -4, -6},
		{"quo", func(x, y *Real) (*Real, error) { return Quo.Eval(Borrow(x), Borrow(y)) }, 3, 4, 0.75},
		{"quo by zero", func(x, y *Real) (*Real, error) { return Quo.Eval(Borrow(x), Borrow(y)) }, 1, 0, math.Inf(1)},
		{"neg", func(x, _ *Real) (*Real, error) { return Neg.Eval(Borrow(x)) }, 2, 0, -2},
		{"abs", func(x, _ *Real) (*Real, error) { return Abs.Eval(Borrow(x)) }, -2, 0, 2},
		{"sqr", func(x, _ *Real) (*Real, error) { return Sqr.Eval(Borrow(x)) }, -3, 0, 9},
		{"sqrt", func(x, _ *Real) (*Real, error) { return Sqrt.Eval(Borrow(x)) }, 2.25, 0, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z, err := tt.eval(mustFloat(t, tt.x, 53), mustFloat(t, tt.y, 53))
			if err != nil {
				t.Fatal(err)
			}
			if f64(z) != tt.want {
				t.Errorf("got %v, want %v", z, tt.want)
			}
		})
	}
}

func TestDomainErrors(t *testing.T) {
	t.Parallel()
	inf, _ := NewKind(Inf, 1, 53)
	negInf, _ := NewKind(Inf, -1, 53)
	zero := mustFloat(t, 0, 53)
	negOne := mustFloat(t, -1, 53)

	tests := []struct {
		name string
		run  func() error
	}{
		{"sqrt of negative", func() error { _, err := Sqrt.Eval(Borrow(negOne)); return err }},
		{"zero over zero", func() error { _, err := Quo.Eval(Borrow(zero), Borrow(zero)); return err }},
		{"inf minus inf", func() error { _, err := Add.Eval(Borrow(inf), Borrow(negInf)); return err }},
		{"zero times inf", func() error { _, err := Mul.Eval(Borrow(zero), Borrow(inf)); return err }},
		{"frac of inf", func() error { _, err := Frac.Eval(Borrow(inf)); return err }},
		{"fma with inf", func() error { _, err := Fma.Eval(Borrow(inf), Borrow(zero), Borrow(zero)); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.run()
			if !apperrors.IsDomain(err) {
				t.Fatalf("expected a domain error, got %v", err)
			}
		})
	}
}

func TestIntegerRounding(t *testing.T) {
	t.Parallel()
	inf := math.Inf(1)
	tests := []struct {
		x                      float64
		trunc, floor, ceil, fr float64
	}{
		{2.5, 2, 2, 3, 0.5},
		{-2.5, -2, -3, -2, -0.5},
		{0.5, 0, 0, 1, 0.5},
		{-0.5, math.Copysign(0, -1), -1, math.Copysign(0, -1), -0.5},
		{3, 3, 3, 3, 0},
		{-3, -3, -3, -3, math.Copysign(0, -1)},
		{1e300, 1e300, 1e300, 1e300, 0},
	}
	ops := []struct {
		op   Unary
		want func(i int) float64
	}{
		{Trunc, func(i int) float64 { return tests[i].trunc }},
		{Floor, func(i int) float64 { return tests[i].floor }},
		{Ceil, func(i int) float64 { return tests[i].ceil }},
		{Frac, func(i int) float64 { return tests[i].fr }},
	}
	for _, o := range ops {
		for i, tt := range tests {
			z, err := o.op.Eval(Borrow(mustFloat(t, tt.x, 53)))
			if err != nil {
				t.Fatalf("%s(%v): %v", o.op.Name(), tt.x, err)
			}
			want := o.want(i)
			got := f64(z)
			if got != want || math.Signbit(got) != math.Signbit(want) {
				t.Errorf("%s(%v) = %v, want %v", o.op.Name(), tt.x, got, want)
			}
		}
		if o.op.Name() != "frac" {
			z, err := o.op.Eval(Borrow(mustFloat(t, inf, 53)))
			if err != nil || !z.IsInf() {
				t.Errorf("%s(+Inf) = %v, %v", o.op.Name(), z, err)
			}
		}
	}
}

func TestModf(t *testing.T) {
	t.Parallel()

	t.Run("outputs alias the input", func(t *testing.T) {
		x := mustFloat(t, 3.75, 64)
		fp := mustFloat(t, 0, 8)
		if err := Modf.Into(x, fp, Borrow(x)); err != nil {
			t.Fatal(err)
		}
		if f64(x) != 3 || f64(fp) != 0.75 {
			t.Errorf("got %v and %v", x, fp)
		}
		if x.Prec() != 64 || fp.Prec() != 64 {
			t.Errorf("outputs should carry the input precision, got %d and %d", x.Prec(), fp.Prec())
		}
	})

	t.Run("identical outputs", func(t *testing.T) {
		x := mustFloat(t, 3.75, 64)
		out := mustFloat(t, 1, 8)
		err := Modf.Into(out, out, Borrow(x))
		if !apperrors.IsInvalidArgument(err) {
			t.Fatalf("expected an invalid-argument error, got %v", err)
		}
		if f64(x) != 3.75 || f64(out) != 1 || out.Prec() != 8 {
			t.Error("nothing may change when the outputs alias")
		}
	})

	t.Run("negative", func(t *testing.T) {
		ip, fp, err := Modf.Eval(Borrow(mustFloat(t, -1.25, 20)))
		if err != nil {
			t.Fatal(err)
		}
		if f64(ip) != -1 || f64(fp) != -0.25 || ip.Prec() != 20 {
			t.Errorf("got %v and %v", ip, fp)
		}
	})

	t.Run("infinity", func(t *testing.T) {
		x, _ := NewKind(Inf, -1, 20)
		ip, fp, err := Modf.Eval(Borrow(x))
		if err != nil {
			t.Fatal(err)
		}
		if !ip.IsInf() || !ip.Signbit() || !fp.IsZero() || !fp.Signbit() {
			t.Errorf("got %v and %v", ip, fp)
		}
	})
}

func TestFma_RoundsOnce(t *testing.T) {
	t.Parallel()
	// (1+2^-30)^2 - (1+2^-29) is 2^-60, which a separately rounded product
	// at 53 bits loses.
	a := mustFloat(t, 1+math.Ldexp(1, -30), 53)
	c := mustFloat(t, 1+math.Ldexp(1, -29), 53)

	z, err := Fms.Eval(Borrow(a), Borrow(a), Borrow(c))
	if err != nil {
		t.Fatal(err)
	}
	if f64(z) != math.Ldexp(1, -60) {
		t.Errorf("fms = %v, want 2^-60", z)
	}

	negC, _ := Neg.Eval(Borrow(c))
	z, err = Fma.Eval(Borrow(a), Borrow(a), Move(negC))
	if err != nil {
		t.Fatal(err)
	}
	if f64(z) != math.Ldexp(1, -60) {
		t.Errorf("fma = %v, want 2^-60", z)
	}

	p, _ := Mul.Eval(Borrow(a), Borrow(a))
	d, _ := Sub.Eval(Borrow(p), Borrow(c))
	if !d.IsZero() {
		t.Errorf("separate rounding should cancel to zero, got %v", d)
	}
}

func TestWithMode(t *testing.T) {
	t.Parallel()
	one, three := mustFloat(t, 1, 8), mustFloat(t, 3, 8)

	down, err := Quo.WithMode(big.ToZero).Eval(Borrow(one), Borrow(three))
	if err != nil {
		t.Fatal(err)
	}
	up, err := Quo.WithMode(big.AwayFromZero).Eval(Borrow(one), Borrow(three))
	if err != nil {
		t.Fatal(err)
	}
	if down.Cmp(up) >= 0 {
		t.Errorf("rounding toward zero (%v) should be below rounding away (%v)", down, up)
	}
	if down.Raw().Mode() != big.ToNearestEven || up.Raw().Mode() != big.ToNearestEven {
		t.Error("kernels must restore the output rounding mode")
	}
	if Quo.Name() != "quo" {
		t.Errorf("Name() = %q", Quo.Name())
	}
}

func TestApply(t *testing.T) {
	t.Parallel()
	z := mustFloat(t, 3, 16)
	if err := Sqr.Apply(z); err != nil {
		t.Fatal(err)
	}
	y := mustFloat(t, 0.5, 64)
	if err := Add.Apply(z, y); err != nil {
		t.Fatal(err)
	}
	if f64(z) != 9.5 || z.Prec() != 64 {
		t.Errorf("got %v at prec %d", z, z.Prec())
	}
}

func TestMovedFromOperand(t *testing.T) {
	t.Parallel()
	x := mustFloat(t, 1, 16)
	y := x.Move()
	if _, err := Add.Eval(Borrow(x), Borrow(y)); !apperrors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument error, got %v", err)
	}
	if err := Neg.Apply(x); !apperrors.IsInvalidArgument(err) {
		t.Errorf("expected an invalid-argument error, got %v", err)
	}
}

type branchLog struct {
	mu      sync.Mutex
	entries []dispatch.Branch
}

func (b *branchLog) Record(_ string, branch dispatch.Branch, _ uint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, branch)
}

func TestConfigure(t *testing.T) {
	log := &branchLog{}
	Configure(dispatch.WithRecorder(log))
	t.Cleanup(func() { Configure() })

	tmp := mustFloat(t, 1, 32)
	z, err := Add.Eval(Move(tmp), Borrow(mustFloat(t, 2, 8)))
	if err != nil {
		t.Fatal(err)
	}
	if err := Neg.Apply(z); err != nil {
		t.Fatal(err)
	}
	want := []dispatch.Branch{dispatch.BranchReturnSteal, dispatch.BranchDirect}
	if len(log.entries) != len(want) {
		t.Fatalf("recorded %v, want %v", log.entries, want)
	}
	for i := range want {
		if log.entries[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, log.entries[i], want[i])
		}
	}
}

func TestFailedKernelKeepsOperands(t *testing.T) {
	t.Parallel()

	t.Run("apply", func(t *testing.T) {
		t.Parallel()
		z, _ := NewKind(Inf, 1, 53)
		inf, _ := NewKind(Inf, 1, 53)
		if err := Sub.Apply(z, inf); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if !z.IsInf() || z.Signbit() {
			t.Errorf("z = %v, want +Inf", z)
		}
	})

	t.Run("moved operand", func(t *testing.T) {
		t.Parallel()
		out := mustFloat(t, 7, 16)
		a, _ := NewKind(Inf, 1, 64)
		b, _ := NewKind(Inf, -1, 32)
		if err := Add.Into(out, Move(a), Borrow(b)); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if !a.IsValid() || !a.IsInf() || a.Signbit() || a.Prec() != 64 {
			t.Errorf("moved operand = %v at prec %d, want +Inf at 64", a, a.Prec())
		}
		if !b.IsInf() || !b.Signbit() {
			t.Errorf("borrowed operand = %v, want -Inf", b)
		}
	})

	t.Run("self division", func(t *testing.T) {
		t.Parallel()
		z := mustFloat(t, 0, 53)
		if err := Quo.Into(z, Borrow(z), Borrow(z)); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if !z.IsZero() || z.Prec() != 53 {
			t.Errorf("z = %v at prec %d", z, z.Prec())
		}
	})

	t.Run("resized output", func(t *testing.T) {
		t.Parallel()
		z, _ := NewKind(Inf, 1, 24)
		negInf, _ := NewKind(Inf, -1, 53)
		if err := Add.Into(z, Borrow(z), Borrow(negInf)); !apperrors.IsDomain(err) {
			t.Fatalf("expected a domain error, got %v", err)
		}
		if !z.IsInf() || z.Signbit() || z.Prec() != 53 {
			t.Errorf("z = %v at prec %d, want +Inf at 53", z, z.Prec())
		}
	})
}
