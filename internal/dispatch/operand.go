package dispatch

// Operand is a reference to an input value tagged with its ownership mode.
type Operand[T any] struct {
	v       *T
	movable bool
}

// Borrow tags v as a read-only operand. Its storage is never reused.
func Borrow[T any](v *T) Operand[T] {
	return Operand[T]{v: v}
}

// Move tags v as a disposable operand. When the engine steals its storage,
// v is left in the moved-from (empty) state. Otherwise, or when the
// operation fails, v keeps its value. Kernels must then write to scratch
// storage while their output aliases an input.
func Move[T any](v *T) Operand[T] {
	return Operand[T]{v: v, movable: true}
}

// Value returns the referenced value.
func (o Operand[T]) Value() *T { return o.v }

// Movable reports whether the operand was tagged with Move.
func (o Operand[T]) Movable() bool { return o.movable }
