package mpreal

import (
	"math/big"

	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
)

// Kernels operate on raw big.Float storage. They compute at the precision
// of out, tolerate out aliasing any input and never resize out. Kernels
// built by withMode leave an aliased out unchanged when they fail.

// recoverNaN turns the big.ErrNaN panic raised by math/big for NaN-producing
// operations into a domain error.
func recoverNaN(op string, err *error) {
	if r := recover(); r != nil {
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		*err = apperrors.NewDomainError(op, "%s", nan.Error())
	}
}

// withMode builds a ModeKernel from f. out's rounding mode is set for the
// duration of f and restored afterwards. When out aliases an input, f
// writes to a scratch value copied into out on success, so a failing
// kernel leaves its inputs intact.
func withMode(op string, f func(z *big.Float, in []*big.Float) error) dispatch.ModeKernel[*big.Float] {
	return func(out *big.Float, mode big.RoundingMode, in ...*big.Float) (err error) {
		z := out
		if aliases(out, in) {
			z = new(big.Float).SetPrec(out.Prec())
		}
		prev := z.Mode()
		z.SetMode(mode)
		defer z.SetMode(prev)
		defer recoverNaN(op, &err)
		if err = f(z, in); err != nil || z == out {
			return err
		}
		out.Set(z)
		return nil
	}
}

func aliases(out *big.Float, in []*big.Float) bool {
	for _, x := range in {
		if x == out {
			return true
		}
	}
	return false
}

func addKernel(z *big.Float, in []*big.Float) error { z.Add(in[0], in[1]); return nil }
func subKernel(z *big.Float, in []*big.Float) error { z.Sub(in[0], in[1]); return nil }
func mulKernel(z *big.Float, in []*big.Float) error { z.Mul(in[0], in[1]); return nil }
func negKernel(z *big.Float, in []*big.Float) error { z.Neg(in[0]); return nil }
func absKernel(z *big.Float, in []*big.Float) error { z.Abs(in[0]); return nil }
func sqrKernel(z *big.Float, in []*big.Float) error { z.Mul(in[0], in[0]); return nil }
func sqrtKernel(z *big.Float, in []*big.Float) error { z.Sqrt(in[0]); return nil }

func quoKernel(z *big.Float, in []*big.Float) error {
	z.Quo(in[0], in[1])
	return nil
}

// fused computes in[0]*in[1] ± in[2] with a single rounding: the product is
// formed exactly before the addition.
func fused(sub bool) func(z *big.Float, in []*big.Float) error {
	return func(z *big.Float, in []*big.Float) error {
		a, b, c := in[0], in[1], in[2]
		prec := uint64(a.Prec()) + uint64(b.Prec())
		if prec > big.MaxPrec {
			prec = big.MaxPrec
		}
		p := new(big.Float).SetPrec(uint(prec)).Mul(a, b)
		if sub {
			z.Sub(p, c)
		} else {
			z.Add(p, c)
		}
		return nil
	}
}

// integral stores into z the integer neighbour of x selected by dir: toward
// zero (0), toward -Inf (-1) or toward +Inf (+1). A zero result keeps the
// sign of x.
func integral(z, x *big.Float, dir int) {
	if x.IsInf() || x.IsInt() {
		z.Set(x)
		return
	}
	// x is finite and not an integer, so its exponent is below its
	// precision and the truncated integer stays small.
	neg := x.Signbit()
	i, _ := x.Int(nil)
	switch {
	case dir < 0 && neg:
		i.Sub(i, bigOne)
	case dir > 0 && !neg:
		i.Add(i, bigOne)
	}
	z.SetInt(i)
	if i.Sign() == 0 && neg {
		z.Neg(z)
	}
}

func rounding(dir int) func(z *big.Float, in []*big.Float) error {
	return func(z *big.Float, in []*big.Float) error {
		integral(z, in[0], dir)
		return nil
	}
}

// fraction stores x - trunc(x) into z. The result keeps the sign of x.
func fraction(z, x *big.Float) error {
	if x.IsInf() {
		return apperrors.NewDomainError("frac", "the fractional part of an infinity is undefined")
	}
	if x.IsInt() {
		neg := x.Signbit()
		z.SetInt64(0)
		if neg {
			z.Neg(z)
		}
		return nil
	}
	t := new(big.Float).SetPrec(x.Prec())
	integral(t, x, 0)
	z.Sub(x, t)
	return nil
}

func fracKernel(z *big.Float, in []*big.Float) error { return fraction(z, in[0]) }

// modfKernel splits x into its integer part ip and fractional part fp. An
// infinity splits into itself and a zero of the same sign.
func modfKernel(ip, fp, x *big.Float) error {
	if x.IsInf() {
		neg := x.Signbit()
		fp.SetInt64(0)
		if neg {
			fp.Neg(fp)
		}
		ip.SetInf(neg)
		return nil
	}
	t := new(big.Float).SetPrec(x.Prec())
	integral(t, x, 0)
	f := new(big.Float).SetPrec(x.Prec())
	if err := fraction(f, x); err != nil {
		return err
	}
	ip.Set(t)
	fp.Set(f)
	return nil
}

var bigOne = big.NewInt(1)
