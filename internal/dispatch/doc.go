// Package dispatch implements the precision-unified, resource-stealing
// dispatch engine that every arithmetic operation of the module funnels
// through.
//
// An operation hands the engine an alias-tolerant kernel, an optional
// precision floor and its operands, each tagged either Borrow (read only) or
// Move (the caller gives the value up and the engine may cannibalise its
// storage). The engine computes the target precision as the maximum of the
// floor and every operand precision, picks the movable operand of largest
// precision (first one wins on ties) as a steal candidate, and then resolves
// where the kernel writes:
//
//	Into(out, ...)     out at target       -> kernel writes out directly
//	                   out above target    -> out is shrunk (value discarded)
//	                   candidate at target -> kernel writes the candidate, which
//	                                          is swapped into out and released
//	                   otherwise           -> out is resized keeping its value
//
//	Return(...)        candidate at target -> kernel writes the candidate, which
//	                                          is moved out as the result
//	                   otherwise           -> a fresh value at target
//
// The engine is generic over the value type through Traits, so real and
// complex values share one implementation. Value types keep their storage
// primitives unexported and implement Traits with an unexported adapter.
package dispatch
