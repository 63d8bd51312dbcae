// Package precision owns the precision policy shared by every value type in
// the module: the accepted [Min, Max] range of significand bits, the
// validating Check used by public constructors and resizers, and the
// deduction rules that derive a precision from a foreign numeric value.
//
// Public entry points never clamp a caller-supplied precision; they reject
// it with an apperrors.PrecisionError. Only the deduction helpers clamp
// upward to Min, since a deduced precision describes the source value
// rather than a caller request.
package precision
