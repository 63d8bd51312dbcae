//go:build gmp

package mpreal

import (
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	extraSetter = func(z *big.Float, v any) (bool, error) {
		switch x := v.(type) {
		case *gmp.Int:
			z.SetInt(gmpToBig(x))
			return true, nil
		case *gmp.Rat:
			z.SetRat(new(big.Rat).SetFrac(gmpToBig(x.Num()), gmpToBig(x.Denom())))
			return true, nil
		}
		return false, nil
	}
}

// FromGMPInt returns x at the precision deduced from its limb count.
func FromGMPInt(x *gmp.Int) (*Real, error) { return FromValue(x, 0) }

// FromGMPRat returns q at the precision deduced from its numerator and
// denominator limb counts, rounded to nearest.
func FromGMPRat(q *gmp.Rat) (*Real, error) { return FromValue(q, 0) }

func gmpToBig(x *gmp.Int) *big.Int {
	b, _ := new(big.Int).SetString(x.String(), 10)
	return b
}
