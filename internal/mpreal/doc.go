// Package mpreal provides Real, a mutable-precision binary floating-point
// number backed by math/big.Float, together with the arithmetic operations
// that dispatch through the shared precision-unifying engine.
//
// A Real owns its storage. Ownership is transferred explicitly with Move,
// MoveFrom and Swap; a Real whose storage was moved away is empty, reports
// IsValid() == false, and may only be reassigned, swapped or released.
// Operations reject empty operands with an invalid-argument error.
//
// Each operation is a value (Add, Mul, Sqrt, ...) offering three forms:
//
//	err := mpreal.Add.Into(z, mpreal.Borrow(x), mpreal.Borrow(y)) // z = x + y
//	z, err := mpreal.Add.Eval(mpreal.Move(x), mpreal.Borrow(y))   // x may be recycled
//	err := mpreal.Add.Apply(z, y)                                 // z += y
//
// The result precision is always the largest operand precision. Operands
// tagged with Move may have their storage reused for the result.
package mpreal
