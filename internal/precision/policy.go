package precision

import (
	"math/big"

	apperrors "github.com/agbru/mpnum/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Precision Range
// ─────────────────────────────────────────────────────────────────────────────

const (
	// Min is the smallest precision, in bits, of any value in the module.
	// A single-bit significand cannot round to nearest meaningfully, so the
	// floor is two bits.
	Min uint = 2

	// Max is the largest precision, in bits, accepted for any value. It is
	// bounded by what math/big.Float can represent.
	Max uint = big.MaxPrec
)

// Policy is a precision range. The zero Policy is not usable; start from
// Default.
type Policy struct {
	Min uint
	Max uint
}

// Default is the policy used by every value type in the module.
var Default = Policy{Min: Min, Max: Max}

// Valid reports whether prec lies in [p.Min, p.Max].
func (p Policy) Valid(prec uint) bool {
	return prec >= p.Min && prec <= p.Max
}

// Check returns a PrecisionError when prec lies outside [p.Min, p.Max].
func (p Policy) Check(prec uint) error {
	if !p.Valid(prec) {
		return apperrors.PrecisionError{Requested: uint64(prec), Min: p.Min, Max: p.Max}
	}
	return nil
}

// Clamp forces prec into [p.Min, p.Max]. Only deduction helpers use it.
func (p Policy) Clamp(prec uint) uint {
	switch {
	case prec < p.Min:
		return p.Min
	case prec > p.Max:
		return p.Max
	}
	return prec
}

// Valid reports whether prec is accepted by the Default policy.
func Valid(prec uint) bool { return Default.Valid(prec) }

// Check validates prec against the Default policy.
func Check(prec uint) error { return Default.Check(prec) }

// Clamp forces prec into the Default policy's range.
func Clamp(prec uint) uint { return Default.Clamp(prec) }
