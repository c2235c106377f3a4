package track

import (
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/packing"
)

// Bit sizes of the samples stored as big-endian bit streams.
const (
	vec3x96Bits = 96
	vec3x72Bits = 72
)

// streamBits returns the bits per sample of the formats stored as bit
// streams. Every other format is stored as byte-aligned records.
func streamBits(f format.VectorFormat, w packing.Widths) (uint64, bool) {
	switch f { //nolint: exhaustive
	case format.Vector3_96:
		return vec3x96Bits, true
	case format.Vector3_72:
		return vec3x72Bits, true
	case format.Vector3_Variable:
		return uint64(w.Sum()), true //nolint: gosec // sum is validated to be at most 64
	default:
		return 0, false
	}
}

// rawPayloadSize returns the uncompressed payload size of count samples.
func rawPayloadSize(f format.VectorFormat, w packing.Widths, count uint64) (uint64, error) {
	if bits, ok := streamBits(f, w); ok {
		return (count*bits + 7) / 8, nil
	}

	size, err := format.PackedVectorSize(f)
	if err != nil {
		return 0, err
	}

	return count * uint64(size), nil //nolint: gosec // sizes are positive
}
