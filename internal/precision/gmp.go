//go:build gmp

package precision

import "github.com/ncw/gmp"

func init() {
	extraDeducer = func(v any) (uint, bool, error) {
		switch x := v.(type) {
		case *gmp.Int:
			prec, err := GMPInt(x)
			return prec, true, err
		case *gmp.Rat:
			prec, err := GMPRat(x)
			return prec, true, err
		}
		return 0, false, nil
	}
}

// GMPInt returns the number of limb bits used by x, clamped up to Min.
func GMPInt(x *gmp.Int) (uint, error) {
	return limbBits(limbsForBitLen(x.BitLen()), "integer")
}

// GMPRat returns the sum of the limb bits used by the numerator and the
// denominator of q, clamped up to Min.
func GMPRat(q *gmp.Rat) (uint, error) {
	n := limbsForBitLen(q.Num().BitLen())
	d := limbsForBitLen(q.Denom().BitLen())
	return limbBits(n+d, "rational")
}

// limbsForBitLen rounds a bit length up to whole limbs.
func limbsForBitLen(bitLen int) uint64 {
	return (uint64(bitLen) + WordBits - 1) / WordBits
}
