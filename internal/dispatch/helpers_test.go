package dispatch

import (
	"errors"
	"math"
)

// cell is the storage of a testNum. Its address identifies the buffer, which
// lets the tests observe stealing and aliasing directly.
type cell struct {
	prec uint
	val  float64

	// kernelPrec records the precision the last kernel ran at.
	kernelPrec uint
}

type testNum struct {
	c *cell
}

func newNum(prec uint, val float64) *testNum {
	return &testNum{c: &cell{prec: prec, val: val}}
}

type testTraits struct{}

func (testTraits) Prec(v *testNum) uint {
	if v.c == nil {
		return 0
	}
	return v.c.prec
}
func (testTraits) Valid(v *testNum) bool { return v.c != nil }
func (testTraits) Handle(v *testNum) *cell { return v.c }
func (testTraits) Alloc(v *testNum, p uint) { v.c = &cell{prec: p} }
func (testTraits) Release(v *testNum) { v.c = nil }
func (testTraits) Swap(a, b *testNum) { a.c, b.c = b.c, a.c }
func (testTraits) SameStorage(a, b *testNum) bool { return a.c == b.c }

// Discard poisons the value so a kernel reading a discarded output is caught.
func (testTraits) Discard(v *testNum, p uint) {
	v.c.prec = p
	v.c.val = math.NaN()
}

func (testTraits) Resize(v *testNum, p uint) {
	if v.c == nil {
		v.c = &cell{prec: p}
		return
	}
	v.c.prec = p
}

var _ Traits[testNum, *cell] = testTraits{}

// sumKernel adds every input. It reads all inputs before writing out, so it
// tolerates aliasing.
func sumKernel(out *cell, in ...*cell) error {
	var s float64
	for _, c := range in {
		s += c.val
	}
	out.val = s
	out.kernelPrec = out.prec
	return nil
}

// splitKernel stores the integer part in out1 and the fractional part in out2.
func splitKernel(out1, out2, in *cell) error {
	v := in.val
	ip, fp := math.Modf(v)
	out1.val, out2.val = ip, fp
	return nil
}

var errKernel = errors.New("kernel failure")

func failingKernel(out *cell, in ...*cell) error { return errKernel }

func newTestEngine(opts ...Option) *Engine[testNum, *cell] {
	return New[testNum, *cell](testTraits{}, opts...)
}
