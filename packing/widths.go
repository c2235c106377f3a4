package packing

import (
	"fmt"

	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/scalar"
)

const (
	// Vec3x32Bits is the required width sum of the Vector3_32 layout.
	Vec3x32Bits = 32
	// VariableMaxBits is the largest width sum of a variable-width sample.
	VariableMaxBits = 64
	// VariableWordSize is the number of bytes PackVec3N writes.
	VariableWordSize = 8
)

// Widths holds the per-component bit widths of the Vector3_32 and variable layouts.
type Widths struct {
	X, Y, Z uint8
}

// Sum returns X + Y + Z.
func (w Widths) Sum() int {
	return int(w.X) + int(w.Y) + int(w.Z)
}

// Validate checks the variable layout invariant: every width within the
// scalar quantizer's range and a total of at most 64 bits.
//
// Both limits apply independently. A width above 32 fails the per-width check
// first, so 32+16+16 is the widest accepted layout and 32+32+1 fails the sum.
func (w Widths) Validate() error {
	for _, bits := range [3]uint8{w.X, w.Y, w.Z} {
		if err := scalar.ValidateBits(bits); err != nil {
			return err
		}
	}
	if w.Sum() > VariableMaxBits {
		return fmt.Errorf("%w: %d+%d+%d exceeds %d", errs.ErrInvalidWidthSum, w.X, w.Y, w.Z, VariableMaxBits)
	}

	return nil
}

// Validate32 checks the Vector3_32 invariant X + Y + Z == 32.
func (w Widths) Validate32() error {
	if w.Sum() != Vec3x32Bits {
		return fmt.Errorf("%w: %d+%d+%d != %d", errs.ErrInvalidWidthSum, w.X, w.Y, w.Z, Vec3x32Bits)
	}

	return w.Validate()
}

func (w Widths) String() string {
	return fmt.Sprintf("%d/%d/%d", w.X, w.Y, w.Z)
}

func mask(bits uint8) uint64 {
	return (uint64(1) << bits) - 1
}

// compose lays the three codes out MSB-first: x | y | z.
func (w Widths) compose(x, y, z uint32) uint64 {
	return uint64(x)<<(w.Y+w.Z) | uint64(y)<<w.Z | uint64(z)
}

// split reverses compose.
func (w Widths) split(word uint64) (x, y, z uint32) {
	x = uint32((word >> (w.Y + w.Z)) & mask(w.X)) //nolint:gosec // masked to <= 32 bits
	y = uint32((word >> w.Z) & mask(w.Y))         //nolint:gosec // masked to <= 32 bits
	z = uint32(word & mask(w.Z))                  //nolint:gosec // masked to <= 32 bits

	return x, y, z
}

// VariableSize returns the number of bytes spanned by one variable-width sample
// in a bit stream, rounded up to whole bytes.
func VariableSize(w Widths) (int, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}

	return (w.Sum() + 7) / 8, nil
}
