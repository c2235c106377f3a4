package packing

import (
	"math"

	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/internal/bitstream"
	"github.com/arloliu/vecpack/vec"
)

// PackVec3x96 writes the raw float32 x, y and z components of v into out[0:12].
func PackVec3x96(v vec.Reader, out []byte) error {
	return packVec3x96(endian.GetNativeEngine(), v, out)
}

// UnpackVec3x96 reads three raw float32 components from in[0:12]. W is zero.
func UnpackVec3x96(in []byte) (vec.Vector4, error) {
	return unpackVec3x96(endian.GetNativeEngine(), in)
}

// UnpackVec3x96Stream reads three 32-bit IEEE 754 fields from a big-endian
// bit stream starting at bitOffset.
//
// Parameters:
//   - in: big-endian bit stream
//   - bitOffset: position of the first bit of x, not necessarily byte aligned
//
// Returns:
//   - vec.Vector4: the decoded sample with W set to zero
//   - error: errs.ErrBufferTooSmall if the 96 bits do not fit in the stream
func UnpackVec3x96Stream(in []byte, bitOffset uint64) (vec.Vector4, error) {
	r := bitstream.NewReader(in, bitOffset)

	var c [3]float32
	for i := range c {
		bits, err := r.Read(32)
		if err != nil {
			return vec.Vector4{}, err
		}
		c[i] = math.Float32frombits(uint32(bits)) //nolint:gosec // 32-bit field
	}

	return vec.New3(c[0], c[1], c[2]), nil
}

// PackVec3x48 quantizes x, y and z to 16 bits each and writes out[0:6].
func PackVec3x48(v vec.Reader, signed bool, out []byte) error {
	return packVec3x48(endian.GetNativeEngine(), v, signed, out)
}

// UnpackVec3x48 reverses PackVec3x48.
func UnpackVec3x48(in []byte, signed bool) (vec.Vector4, error) {
	return unpackVec3x48(endian.GetNativeEngine(), in, signed)
}

// PackVec3x32 quantizes x, y and z at the widths in w, which must sum to 32,
// and writes the composed word into out[0:4] as a high and a low 16-bit unit.
func PackVec3x32(v vec.Reader, w Widths, signed bool, out []byte) error {
	return packVec3x32(endian.GetNativeEngine(), v, w, signed, out)
}

// UnpackVec3x32 reverses PackVec3x32 using the same widths.
func UnpackVec3x32(in []byte, w Widths, signed bool) (vec.Vector4, error) {
	return unpackVec3x32(endian.GetNativeEngine(), in, w, signed)
}

// PackVec3x24 quantizes x, y and z to one byte each and writes out[0:3].
func PackVec3x24(v vec.Reader, signed bool, out []byte) error {
	if err := checkLen(out, 3, "Vector3_24"); err != nil {
		return err
	}

	codes, err := quantize3(v, widths8, signed)
	if err != nil {
		return err
	}

	out[0] = byte(codes[0])
	out[1] = byte(codes[1])
	out[2] = byte(codes[2])

	return nil
}

// UnpackVec3x24 reverses PackVec3x24.
func UnpackVec3x24(in []byte, signed bool) (vec.Vector4, error) {
	if err := checkLen(in, 3, "Vector3_24"); err != nil {
		return vec.Vector4{}, err
	}

	return dequantize3([3]uint32{uint32(in[0]), uint32(in[1]), uint32(in[2])}, widths8, signed)
}

// PackVec3x72 quantizes x, y and z to 24 bits each and writes every code as
// three bytes, most significant first, into out[0:9]. The layout does not
// depend on the host byte order.
func PackVec3x72(v vec.Reader, signed bool, out []byte) error {
	if err := checkLen(out, 9, "Vector3_72"); err != nil {
		return err
	}

	codes, err := quantize3(v, widths24, signed)
	if err != nil {
		return err
	}

	for i, c := range codes {
		o := out[i*3 : i*3+3]
		o[0] = byte(c >> 16)
		o[1] = byte(c >> 8)
		o[2] = byte(c)
	}

	return nil
}

// UnpackVec3x72 reverses PackVec3x72.
func UnpackVec3x72(in []byte, signed bool) (vec.Vector4, error) {
	if err := checkLen(in, 9, "Vector3_72"); err != nil {
		return vec.Vector4{}, err
	}

	var codes [3]uint32
	for i := range codes {
		b := in[i*3 : i*3+3]
		codes[i] = uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
	}

	return dequantize3(codes, widths24, signed)
}

// UnpackVec3x72Stream reads three 24-bit codes from a big-endian bit stream
// starting at bitOffset. At a byte-aligned offset the result equals
// UnpackVec3x72 on the same bytes.
func UnpackVec3x72Stream(in []byte, bitOffset uint64, signed bool) (vec.Vector4, error) {
	codes, err := readCodes(in, bitOffset, widths24)
	if err != nil {
		return vec.Vector4{}, err
	}

	return dequantize3(codes, widths24, signed)
}

// readCodes reads x, y and z in order; a field may straddle a word boundary.
func readCodes(in []byte, bitOffset uint64, w Widths) (codes [3]uint32, err error) {
	r := bitstream.NewReader(in, bitOffset)

	for i, bits := range [3]uint8{w.X, w.Y, w.Z} {
		field, err := r.Read(bits)
		if err != nil {
			return codes, err
		}
		codes[i] = uint32(field) //nolint:gosec // field width <= 32
	}

	return codes, nil
}

func packVec3x96(engine endian.EndianEngine, v vec.Reader, out []byte) error {
	if err := checkLen(out, 12, "Vector3_96"); err != nil {
		return err
	}

	endian.PutFloat32(engine, out[0:4], v.X())
	endian.PutFloat32(engine, out[4:8], v.Y())
	endian.PutFloat32(engine, out[8:12], v.Z())

	return nil
}

func unpackVec3x96(engine endian.EndianEngine, in []byte) (vec.Vector4, error) {
	if err := checkLen(in, 12, "Vector3_96"); err != nil {
		return vec.Vector4{}, err
	}

	return vec.New3(
		endian.Float32(engine, in[0:4]),
		endian.Float32(engine, in[4:8]),
		endian.Float32(engine, in[8:12]),
	), nil
}

func packVec3x48(engine endian.EndianEngine, v vec.Reader, signed bool, out []byte) error {
	if err := checkLen(out, 6, "Vector3_48"); err != nil {
		return err
	}

	codes, err := quantize3(v, widths16, signed)
	if err != nil {
		return err
	}

	engine.PutUint16(out[0:2], uint16(codes[0])) //nolint:gosec // 16-bit code
	engine.PutUint16(out[2:4], uint16(codes[1])) //nolint:gosec // 16-bit code
	engine.PutUint16(out[4:6], uint16(codes[2])) //nolint:gosec // 16-bit code

	return nil
}

func unpackVec3x48(engine endian.EndianEngine, in []byte, signed bool) (vec.Vector4, error) {
	if err := checkLen(in, 6, "Vector3_48"); err != nil {
		return vec.Vector4{}, err
	}

	codes := [3]uint32{
		uint32(engine.Uint16(in[0:2])),
		uint32(engine.Uint16(in[2:4])),
		uint32(engine.Uint16(in[4:6])),
	}

	return dequantize3(codes, widths16, signed)
}

func packVec3x32(engine endian.EndianEngine, v vec.Reader, w Widths, signed bool, out []byte) error {
	if err := w.Validate32(); err != nil {
		return err
	}
	if err := checkLen(out, 4, "Vector3_32"); err != nil {
		return err
	}

	codes, err := quantize3(v, w, signed)
	if err != nil {
		return err
	}

	word := uint32(w.compose(codes[0], codes[1], codes[2])) //nolint:gosec // widths sum to 32
	engine.PutUint16(out[0:2], uint16(word>>16))
	engine.PutUint16(out[2:4], uint16(word)) //nolint:gosec // low half

	return nil
}

func unpackVec3x32(engine endian.EndianEngine, in []byte, w Widths, signed bool) (vec.Vector4, error) {
	if err := w.Validate32(); err != nil {
		return vec.Vector4{}, err
	}
	if err := checkLen(in, 4, "Vector3_32"); err != nil {
		return vec.Vector4{}, err
	}

	word := uint32(engine.Uint16(in[0:2]))<<16 | uint32(engine.Uint16(in[2:4]))
	x, y, z := w.split(uint64(word))

	return dequantize3([3]uint32{x, y, z}, w, signed)
}
