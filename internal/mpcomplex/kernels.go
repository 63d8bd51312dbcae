package mpcomplex

import (
	"math/big"

	"github.com/agbru/mpnum/internal/dispatch"
	apperrors "github.com/agbru/mpnum/internal/errors"
)

// guardBits is the extra working precision of kernels that round more than
// once.
const guardBits = 32

func recoverNaN(op string, err *error) {
	if r := recover(); r != nil {
		nan, ok := r.(big.ErrNaN)
		if !ok {
			panic(r)
		}
		*err = apperrors.NewDomainError(op, "%s", nan.Error())
	}
}

// withMode builds a ModeKernel from f. The rounding mode of both output
// fields is set for the duration of f. When out shares a field with an
// input, f writes to scratch fields copied into out on success, so a
// failing kernel leaves its inputs intact.
func withMode(op string, f func(z Handle, in []Handle) error) dispatch.ModeKernel[Handle] {
	return func(out Handle, mode big.RoundingMode, in ...Handle) (err error) {
		z := out
		if aliases(out, in) {
			z = Handle{
				Re: new(big.Float).SetPrec(out.Re.Prec()),
				Im: new(big.Float).SetPrec(out.Im.Prec()),
			}
		}
		prevRe, prevIm := z.Re.Mode(), z.Im.Mode()
		z.Re.SetMode(mode)
		z.Im.SetMode(mode)
		defer func() {
			z.Re.SetMode(prevRe)
			z.Im.SetMode(prevIm)
		}()
		defer recoverNaN(op, &err)
		if err = f(z, in); err != nil || z == out {
			return err
		}
		out.Re.Set(z.Re)
		out.Im.Set(z.Im)
		return nil
	}
}

func aliases(out Handle, in []Handle) bool {
	for _, x := range in {
		if x.Re == out.Re || x.Im == out.Im || x.Re == out.Im || x.Im == out.Re {
			return true
		}
	}
	return false
}

func clampPrec(p uint64) uint {
	if p > big.MaxPrec {
		return big.MaxPrec
	}
	return uint(p)
}

// exactMul returns a*b without rounding.
func exactMul(a, b *big.Float) *big.Float {
	return new(big.Float).SetPrec(clampPrec(uint64(a.Prec()) + uint64(b.Prec()))).Mul(a, b)
}

func working(z Handle) *big.Float {
	return new(big.Float).SetPrec(clampPrec(uint64(z.Re.Prec()) + guardBits))
}

// hypot returns sqrt(x²+y²) at precision w.Prec(), stored in w.
func hypot(w, x, y *big.Float) *big.Float {
	w.Add(exactMul(x, x), exactMul(y, y))
	return w.Sqrt(w)
}

func addKernel(z Handle, in []Handle) error {
	z.Re.Add(in[0].Re, in[1].Re)
	z.Im.Add(in[0].Im, in[1].Im)
	return nil
}

func subKernel(z Handle, in []Handle) error {
	z.Re.Sub(in[0].Re, in[1].Re)
	z.Im.Sub(in[0].Im, in[1].Im)
	return nil
}

// mulKernel forms every partial product exactly, so each part is rounded
// once.
func mulKernel(z Handle, in []Handle) error {
	a, b := in[0], in[1]
	rr, ii := exactMul(a.Re, b.Re), exactMul(a.Im, b.Im)
	ri, ir := exactMul(a.Re, b.Im), exactMul(a.Im, b.Re)
	z.Re.Sub(rr, ii)
	z.Im.Add(ri, ir)
	return nil
}

func quoKernel(z Handle, in []Handle) error {
	a, b := in[0], in[1]
	if b.Re.Sign() == 0 && b.Im.Sign() == 0 {
		return apperrors.NewDomainError("quo", "division by zero")
	}
	d := working(z).Add(exactMul(b.Re, b.Re), exactMul(b.Im, b.Im))
	nr := working(z).Add(exactMul(a.Re, b.Re), exactMul(a.Im, b.Im))
	ni := working(z).Sub(exactMul(a.Im, b.Re), exactMul(a.Re, b.Im))
	z.Re.Quo(nr, d)
	z.Im.Quo(ni, d)
	return nil
}

func negKernel(z Handle, in []Handle) error {
	z.Re.Neg(in[0].Re)
	z.Im.Neg(in[0].Im)
	return nil
}

func conjKernel(z Handle, in []Handle) error {
	z.Re.Set(in[0].Re)
	z.Im.Neg(in[0].Im)
	return nil
}

func sqrKernel(z Handle, in []Handle) error {
	a := in[0]
	rr, ii := exactMul(a.Re, a.Re), exactMul(a.Im, a.Im)
	ri := exactMul(a.Re, a.Im)
	ri.SetMantExp(ri, 1)
	z.Re.Sub(rr, ii)
	z.Im.Set(ri)
	return nil
}

// sqrtKernel computes the principal square root, choosing the formula that
// avoids cancellation for the sign of the real part.
func sqrtKernel(z Handle, in []Handle) error {
	a := in[0]
	if a.Re.Sign() == 0 && a.Im.Sign() == 0 {
		z.Im.Set(a.Im)
		z.Re.SetInt64(0)
		return nil
	}
	r := hypot(working(z), a.Re, a.Im)
	t := working(z)
	o := working(z)
	if a.Re.Sign() >= 0 {
		t.Add(r, a.Re)
	} else {
		t.Sub(r, a.Re)
	}
	t.SetMantExp(t, -1)
	t.Sqrt(t)
	o.Quo(a.Im, t)
	o.SetMantExp(o, -1)
	if a.Re.Sign() >= 0 {
		z.Re.Set(t)
		z.Im.Set(o)
		return nil
	}
	o.Abs(o)
	if a.Im.Signbit() {
		t.Neg(t)
	}
	z.Re.Set(o)
	z.Im.Set(t)
	return nil
}

func absKernel(z Handle, in []Handle) error {
	h := hypot(working(z), in[0].Re, in[0].Im)
	z.Re.Set(h)
	z.Im.SetInt64(0)
	return nil
}

func normKernel(z Handle, in []Handle) error {
	rr, ii := exactMul(in[0].Re, in[0].Re), exactMul(in[0].Im, in[0].Im)
	z.Re.Add(rr, ii)
	z.Im.SetInt64(0)
	return nil
}

// projKernel maps every infinity onto +Inf, keeping the sign of the
// imaginary part on the resulting zero.
func projKernel(z Handle, in []Handle) error {
	a := in[0]
	if !a.Re.IsInf() && !a.Im.IsInf() {
		z.Re.Set(a.Re)
		z.Im.Set(a.Im)
		return nil
	}
	neg := a.Im.Signbit()
	z.Re.SetInf(false)
	z.Im.SetInt64(0)
	if neg {
		z.Im.Neg(z.Im)
	}
	return nil
}
