package packing

import (
	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/vec"
)

// PackVec3N quantizes x, y and z at the caller-chosen widths and writes the
// composed word (x<<(Y+Z))|(y<<Z)|z as one 8-byte word into out[0:8].
//
// Only the low w.Sum() bits of the word carry data; the remaining high bits
// are zero. out must hold VariableWordSize bytes even when fewer are used.
//
// Parameters:
//   - v: sample to pack, components in [0, 1] (or [-1, 1] when signed)
//   - w: per-component widths, each in [1, 32], summing to at most 64
//   - signed: selects the signed quantizer domain
//   - out: destination, at least 8 bytes
//
// Returns:
//   - error: errs.ErrInvalidBitWidth, errs.ErrInvalidWidthSum,
//     errs.ErrValueOutOfRange or errs.ErrBufferTooSmall
func PackVec3N(v vec.Reader, w Widths, signed bool, out []byte) error {
	return packVec3N(endian.GetNativeEngine(), v, w, signed, out)
}

// UnpackVec3N reverses PackVec3N using the same widths.
func UnpackVec3N(in []byte, w Widths, signed bool) (vec.Vector4, error) {
	return unpackVec3N(endian.GetNativeEngine(), in, w, signed)
}

// UnpackVec3NStream reads x, y and z at the given widths from a big-endian
// bit stream starting at bitOffset. Samples written back-to-back occupy
// w.Sum() bits each, so sample i starts at bitOffset + i*w.Sum().
func UnpackVec3NStream(in []byte, w Widths, signed bool, bitOffset uint64) (vec.Vector4, error) {
	if err := w.Validate(); err != nil {
		return vec.Vector4{}, err
	}

	codes, err := readCodes(in, bitOffset, w)
	if err != nil {
		return vec.Vector4{}, err
	}

	return dequantize3(codes, w, signed)
}

func packVec3N(engine endian.EndianEngine, v vec.Reader, w Widths, signed bool, out []byte) error {
	if err := w.Validate(); err != nil {
		return err
	}
	if err := checkLen(out, VariableWordSize, "Vector3_Variable"); err != nil {
		return err
	}

	codes, err := quantize3(v, w, signed)
	if err != nil {
		return err
	}

	engine.PutUint64(out[0:8], w.compose(codes[0], codes[1], codes[2]))

	return nil
}

func unpackVec3N(engine endian.EndianEngine, in []byte, w Widths, signed bool) (vec.Vector4, error) {
	if err := w.Validate(); err != nil {
		return vec.Vector4{}, err
	}
	if err := checkLen(in, VariableWordSize, "Vector3_Variable"); err != nil {
		return vec.Vector4{}, err
	}

	x, y, z := w.split(engine.Uint64(in[0:8]))

	return dequantize3([3]uint32{x, y, z}, w, signed)
}
