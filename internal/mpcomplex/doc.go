// Package mpcomplex provides Complex, an arbitrary-precision complex number
// made of two mpreal.Real fields that always share one precision.
//
// Complex operations dispatch through the same engine as mpreal, so the
// precision of a result is the largest operand precision and operands
// tagged with Move may donate their storage.
//
// A single field can be borrowed as an ordinary *mpreal.Real with
// BorrowField (or the closure form WithField) and mutated by any mpreal
// operation in place. Only one mutable field view may be open per Complex.
// When a mutation through a view changes the precision of one field, the
// caller must bring the sibling field to the same precision before using
// the Complex again; the entry points of this package that work through
// views (SetReal, AddReal, MulReal, ...) do so themselves.
package mpcomplex
