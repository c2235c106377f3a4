package packing

import (
	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/vec"
)

// PackVec4x128 writes the four raw float32 components of v into out[0:16].
func PackVec4x128(v vec.Reader, out []byte) error {
	return packVec4x128(endian.GetNativeEngine(), v, out)
}

// UnpackVec4x128 reads four raw float32 components from in[0:16].
func UnpackVec4x128(in []byte) (vec.Vector4, error) {
	return unpackVec4x128(endian.GetNativeEngine(), in)
}

// PackVec4x64 quantizes v to 16 bits per component and writes out[0:8].
func PackVec4x64(v vec.Reader, signed bool, out []byte) error {
	return packVec4x64(endian.GetNativeEngine(), v, signed, out)
}

// UnpackVec4x64 reverses PackVec4x64.
func UnpackVec4x64(in []byte, signed bool) (vec.Vector4, error) {
	return unpackVec4x64(endian.GetNativeEngine(), in, signed)
}

// PackVec4x32 quantizes v to 8 bits per component and writes out[0:4].
func PackVec4x32(v vec.Reader, signed bool, out []byte) error {
	if err := checkLen(out, 4, "Vector4_32"); err != nil {
		return err
	}

	codes, err := quantize4(v, 8, signed)
	if err != nil {
		return err
	}

	for i, c := range codes {
		out[i] = byte(c)
	}

	return nil
}

// UnpackVec4x32 reverses PackVec4x32.
func UnpackVec4x32(in []byte, signed bool) (vec.Vector4, error) {
	if err := checkLen(in, 4, "Vector4_32"); err != nil {
		return vec.Vector4{}, err
	}

	return dequantize4([4]uint32{uint32(in[0]), uint32(in[1]), uint32(in[2]), uint32(in[3])}, 8, signed)
}

func packVec4x128(engine endian.EndianEngine, v vec.Reader, out []byte) error {
	if err := checkLen(out, 16, "Vector4_128"); err != nil {
		return err
	}

	endian.PutFloat32(engine, out[0:4], v.X())
	endian.PutFloat32(engine, out[4:8], v.Y())
	endian.PutFloat32(engine, out[8:12], v.Z())
	endian.PutFloat32(engine, out[12:16], v.W())

	return nil
}

func unpackVec4x128(engine endian.EndianEngine, in []byte) (vec.Vector4, error) {
	if err := checkLen(in, 16, "Vector4_128"); err != nil {
		return vec.Vector4{}, err
	}

	return vec.New(
		endian.Float32(engine, in[0:4]),
		endian.Float32(engine, in[4:8]),
		endian.Float32(engine, in[8:12]),
		endian.Float32(engine, in[12:16]),
	), nil
}

func packVec4x64(engine endian.EndianEngine, v vec.Reader, signed bool, out []byte) error {
	if err := checkLen(out, 8, "Vector4_64"); err != nil {
		return err
	}

	codes, err := quantize4(v, 16, signed)
	if err != nil {
		return err
	}

	for i, c := range codes {
		engine.PutUint16(out[i*2:], uint16(c)) //nolint:gosec // 16-bit code
	}

	return nil
}

func unpackVec4x64(engine endian.EndianEngine, in []byte, signed bool) (vec.Vector4, error) {
	if err := checkLen(in, 8, "Vector4_64"); err != nil {
		return vec.Vector4{}, err
	}

	var codes [4]uint32
	for i := range codes {
		codes[i] = uint32(engine.Uint16(in[i*2:]))
	}

	return dequantize4(codes, 16, signed)
}
