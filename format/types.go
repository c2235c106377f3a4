package format

import (
	"fmt"

	"github.com/arloliu/vecpack/errs"
)

type (
	// VectorFormat identifies the binary layout of a packed vector sample.
	VectorFormat uint8
	// RangeReductionFlags records which channel categories were range reduced.
	RangeReductionFlags uint8
	// CompressionType identifies the block compression applied to a track payload.
	CompressionType uint8
)

// BE CAREFUL WHEN CHANGING VALUES BELOW.
// Formats and range reduction flags are serialized in track streams. Changing a
// value invalidates every stream produced so far; add new values instead and
// bump the track container version for any semantic change.
const (
	Vector3_96       VectorFormat = 0x00 // Vector3_96 stores three raw float32 components.
	Vector3_48       VectorFormat = 0x01 // Vector3_48 stores three 16-bit quantized components.
	Vector3_32       VectorFormat = 0x02 // Vector3_32 stores three components with widths summing to 32 bits.
	Vector3_Variable VectorFormat = 0x03 // Vector3_Variable uses widths supplied per track or segment.
	Vector4_128      VectorFormat = 0x04 // Vector4_128 stores four raw float32 components.
	Vector4_64       VectorFormat = 0x05 // Vector4_64 stores four 16-bit quantized components.
	Vector4_32       VectorFormat = 0x06 // Vector4_32 stores four 8-bit quantized components.
	Vector3_24       VectorFormat = 0x07 // Vector3_24 stores three 8-bit quantized components.
	Vector3_72       VectorFormat = 0x08 // Vector3_72 stores three 24-bit quantized components.

	RangeReductionNone         RangeReductionFlags = 0x00 // RangeReductionNone means no channel is range reduced.
	RangeReductionRotations    RangeReductionFlags = 0x01 // RangeReductionRotations marks rotation channels.
	RangeReductionTranslations RangeReductionFlags = 0x02 // RangeReductionTranslations marks translation channels.
	// 0x04 scales and 0x08 properties are reserved.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	rangeReductionMask = RangeReductionRotations | RangeReductionTranslations

	// rangeReductionVectorSize is min and extent, three float32 each.
	rangeReductionVectorSize = 4 * 6
)

var packedVectorSizes = map[VectorFormat]int{
	Vector4_128: 16,
	Vector4_64:  8,
	Vector4_32:  4,
	Vector3_96:  12,
	Vector3_72:  9,
	Vector3_48:  6,
	Vector3_32:  4,
	Vector3_24:  3,
}

func (f VectorFormat) String() string {
	switch f {
	case Vector3_96:
		return "Vector3_96"
	case Vector3_48:
		return "Vector3_48"
	case Vector3_32:
		return "Vector3_32"
	case Vector3_Variable:
		return "Vector3_Variable"
	case Vector4_128:
		return "Vector4_128"
	case Vector4_64:
		return "Vector4_64"
	case Vector4_32:
		return "Vector4_32"
	case Vector3_24:
		return "Vector3_24"
	case Vector3_72:
		return "Vector3_72"
	default:
		return "Unknown"
	}
}

// IsValid reports whether f is a known format.
func (f VectorFormat) IsValid() bool {
	return f <= Vector3_72
}

// IsVariable reports whether f is the variable-width sentinel.
func (f VectorFormat) IsVariable() bool {
	return f == Vector3_Variable
}

// NumComponents returns 4 for Vector4 layouts and 3 otherwise.
func (f VectorFormat) NumComponents() int {
	switch f {
	case Vector4_128, Vector4_64, Vector4_32:
		return 4
	default:
		return 3
	}
}

// IsQuantized reports whether f maps components through the scalar quantizer.
func (f VectorFormat) IsQuantized() bool {
	return f != Vector4_128 && f != Vector3_96
}

// PackedVectorSize returns the encoded byte size of one sample of format f.
//
// Returns:
//   - int: size in bytes
//   - error: ErrVariableFormatSize for Vector3_Variable, ErrInvalidFormat for unknown values
func PackedVectorSize(f VectorFormat) (int, error) {
	if f == Vector3_Variable {
		return 0, errs.ErrVariableFormatSize
	}

	size, ok := packedVectorSizes[f]
	if !ok {
		return 0, fmt.Errorf("%w: %d", errs.ErrInvalidFormat, uint8(f))
	}

	return size, nil
}

// RangeReductionVectorSize returns the byte size reserved for the range
// reduction metadata of one channel category: a min and an extent vector.
func RangeReductionVectorSize() int {
	return rangeReductionVectorSize
}

// Has reports whether every bit of other is set in r.
func (r RangeReductionFlags) Has(other RangeReductionFlags) bool {
	return r&other == other
}

// IsValid reports whether only defined bits are set.
func (r RangeReductionFlags) IsValid() bool {
	return r&^rangeReductionMask == 0
}

func (r RangeReductionFlags) String() string {
	switch r {
	case RangeReductionNone:
		return "RangeReduction::None"
	case RangeReductionRotations:
		return "RangeReduction::Rotations"
	case RangeReductionTranslations:
		return "RangeReduction::Translations"
	case RangeReductionRotations | RangeReductionTranslations:
		return "RangeReduction::Rotations | RangeReduction::Translations"
	default:
		return "<Invalid>"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
