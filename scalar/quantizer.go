// Package scalar maps a single normalized float to an N-bit integer code and back.
//
// Two domains are supported:
//
//	unsigned: value in [0, 1]  -> code = round(value * (2^n - 1))
//	signed:   value in [-1, 1] -> code = round((value + 1) / 2 * (2^n - 1))
//
// Reconstruction is code / (2^n - 1) for unsigned codes and
// code / (2^n - 1) * 2 - 1 for signed codes, so a round trip is off by at
// most one quantization step, 1 / (2^n - 1), in the component's domain.
//
// Rounding is half away from zero (math.Round). Arithmetic is carried out in
// float64 so every width up to 32 bits maps exactly onto its code range.
//
// Out-of-range bit widths and out-of-domain values are caller bugs; they
// return errors wrapping errs.ErrInvalidArgument and are never clamped.
package scalar

import (
	"fmt"
	"math"

	"github.com/arloliu/vecpack/errs"
)

const (
	// MinBits is the narrowest supported code width.
	MinBits = 1
	// MaxBits is the widest supported code width.
	MaxBits = 32
)

// MaxCode returns the largest code representable in numBits bits, 2^numBits - 1.
func MaxCode(numBits uint8) (uint32, error) {
	if err := ValidateBits(numBits); err != nil {
		return 0, err
	}

	return uint32((uint64(1) << numBits) - 1), nil
}

// StepSize returns the quantization step 1 / (2^numBits - 1) of the unsigned domain.
// The signed domain is twice as wide, so its step is twice this value.
func StepSize(numBits uint8) (float64, error) {
	maxCode, err := MaxCode(numBits)
	if err != nil {
		return 0, err
	}

	return 1 / float64(maxCode), nil
}

// ValidateBits checks that numBits is within [MinBits, MaxBits].
func ValidateBits(numBits uint8) error {
	if numBits < MinBits || numBits > MaxBits {
		return fmt.Errorf("%w: %d bits, want %d..%d", errs.ErrInvalidBitWidth, numBits, MinBits, MaxBits)
	}

	return nil
}

// PackUnsigned quantizes value in [0, 1] to a numBits-bit code.
func PackUnsigned(value float32, numBits uint8) (uint32, error) {
	maxCode, err := MaxCode(numBits)
	if err != nil {
		return 0, err
	}

	v := float64(value)
	// the negated form also rejects NaN
	if !(v >= 0 && v <= 1) {
		return 0, fmt.Errorf("%w: %v not in [0, 1]", errs.ErrValueOutOfRange, value)
	}

	return quantize(v, maxCode), nil
}

// PackSigned quantizes value in [-1, 1] to a numBits-bit code.
func PackSigned(value float32, numBits uint8) (uint32, error) {
	maxCode, err := MaxCode(numBits)
	if err != nil {
		return 0, err
	}

	v := float64(value)
	if !(v >= -1 && v <= 1) {
		return 0, fmt.Errorf("%w: %v not in [-1, 1]", errs.ErrValueOutOfRange, value)
	}

	return quantize((v+1)*0.5, maxCode), nil
}

// UnpackUnsigned reconstructs a [0, 1] value from a numBits-bit code.
func UnpackUnsigned(code uint32, numBits uint8) (float32, error) {
	maxCode, err := checkCode(code, numBits)
	if err != nil {
		return 0, err
	}

	return float32(float64(code) / float64(maxCode)), nil
}

// UnpackSigned reconstructs a [-1, 1] value from a numBits-bit code.
func UnpackSigned(code uint32, numBits uint8) (float32, error) {
	maxCode, err := checkCode(code, numBits)
	if err != nil {
		return 0, err
	}

	return float32(float64(code)/float64(maxCode)*2 - 1), nil
}

// Pack quantizes value with the signed or unsigned mapping.
func Pack(value float32, numBits uint8, signed bool) (uint32, error) {
	if signed {
		return PackSigned(value, numBits)
	}

	return PackUnsigned(value, numBits)
}

// Unpack reverses Pack.
func Unpack(code uint32, numBits uint8, signed bool) (float32, error) {
	if signed {
		return UnpackSigned(code, numBits)
	}

	return UnpackUnsigned(code, numBits)
}

// PackUnsigned24 is PackUnsigned at the 24-bit width of the Vector3_72 layout.
func PackUnsigned24(value float32) (uint32, error) {
	return PackUnsigned(value, 24)
}

// PackSigned24 is PackSigned at the 24-bit width of the Vector3_72 layout.
func PackSigned24(value float32) (uint32, error) {
	return PackSigned(value, 24)
}

// UnpackUnsigned24 is UnpackUnsigned at 24 bits.
func UnpackUnsigned24(code uint32) (float32, error) {
	return UnpackUnsigned(code, 24)
}

// UnpackSigned24 is UnpackSigned at 24 bits.
func UnpackSigned24(code uint32) (float32, error) {
	return UnpackSigned(code, 24)
}

func quantize(normalized float64, maxCode uint32) uint32 {
	// normalized is in [0, 1], so the rounded product never exceeds maxCode
	return uint32(math.Round(normalized * float64(maxCode)))
}

func checkCode(code uint32, numBits uint8) (uint32, error) {
	maxCode, err := MaxCode(numBits)
	if err != nil {
		return 0, err
	}
	if code > maxCode {
		return 0, fmt.Errorf("%w: code %d exceeds %d-bit range", errs.ErrValueOutOfRange, code, numBits)
	}

	return maxCode, nil
}
