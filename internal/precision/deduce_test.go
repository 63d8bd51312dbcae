package precision

import (
	"math/big"
	"testing"

	apperrors "github.com/agbru/mpnum/internal/errors"
)

type fixedPrec uint

func (f fixedPrec) Prec() uint { return uint(f) }

func TestDeduce(t *testing.T) {
	t.Parallel()

	huge := new(big.Int).Lsh(big.NewInt(1), 3*WordBits) // needs 4 limbs
	tests := []struct {
		name string
		v    any
		want uint
	}{
		{"int64", int64(-5), 64},
		{"uint64", uint64(5), 64},
		{"int32", int32(5), 32},
		{"int8", int8(5), 8},
		{"int", 5, WordBits},
		{"float64", 1.5, 53},
		{"float32", float32(1.5), 24},
		{"zero big.Int", new(big.Int), Min},
		{"one-limb big.Int", big.NewInt(7), WordBits},
		{"multi-limb big.Int", huge, 4 * WordBits},
		{"big.Rat", big.NewRat(1, 3), 2 * WordBits},
		{"big.Float", new(big.Float).SetPrec(200), 200},
		{"zero-value big.Float", new(big.Float), Min},
		{"precisioner", fixedPrec(77), 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Deduce(tt.v)
			if err != nil {
				t.Fatalf("Deduce(%v) unexpected error: %v", tt.v, err)
			}
			if got != tt.want {
				t.Errorf("Deduce(%v) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}

func TestDeduce_UnsupportedType(t *testing.T) {
	t.Parallel()
	_, err := Deduce("3.5")
	if !apperrors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid-argument error, got %v", err)
	}
}

func TestLimbBits_TooLarge(t *testing.T) {
	t.Parallel()
	_, err := limbBits(uint64(Max)/WordBits+1, "integer")
	if !apperrors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid-argument error, got %v", err)
	}
}
