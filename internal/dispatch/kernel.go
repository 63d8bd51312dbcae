package dispatch

import "math/big"

// Traits adapts a value type T, whose kernels operate on storage handles of
// type S, to the engine. Implementations never validate precisions: every
// precision they receive has already been checked by the engine or by the
// value type's public API.
type Traits[T any, S any] interface {
	// Prec returns the precision of v, or 0 when v is empty.
	Prec(v *T) uint
	// Valid reports whether v owns storage.
	Valid(v *T) bool
	// Handle returns the raw storage handle passed to kernels.
	Handle(v *T) S
	// Alloc gives v fresh storage at prec holding zero, dropping any storage
	// v held.
	Alloc(v *T, prec uint)
	// Discard changes the precision of a valid v, discarding its value.
	Discard(v *T, prec uint)
	// Resize changes the precision of v, rounding its value to nearest. An
	// empty v is allocated instead.
	Resize(v *T, prec uint)
	// Swap exchanges the storage of a and b. Either may be empty.
	Swap(a, b *T)
	// Release drops the storage of v, leaving it empty.
	Release(v *T)
	// SameStorage reports whether two valid values share storage.
	SameStorage(a, b *T) bool
}

// Kernel computes out from in at out's current precision. It must tolerate
// out sharing storage with any input and must not resize out. It reports
// domain failures as errors, leaving any input that out aliases unchanged.
type Kernel[S any] func(out S, in ...S) error

// Kernel2 computes two results from one input. The outputs are distinct;
// either may share storage with in.
type Kernel2[S any] func(out1, out2, in S) error

// ModeKernel is a kernel whose result depends on a rounding direction.
type ModeKernel[S any] func(out S, mode big.RoundingMode, in ...S) error

// Rounded fixes the rounding mode of f, producing a plain Kernel. The mode
// is a static property of the resulting operation.
func Rounded[S any](f ModeKernel[S], mode big.RoundingMode) Kernel[S] {
	return func(out S, in ...S) error {
		return f(out, mode, in...)
	}
}
