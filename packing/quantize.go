package packing

import (
	"fmt"

	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/scalar"
	"github.com/arloliu/vecpack/vec"
)

var componentNames = [4]string{"x", "y", "z", "w"}

var (
	widths8  = Widths{X: 8, Y: 8, Z: 8}
	widths16 = Widths{X: 16, Y: 16, Z: 16}
	widths24 = Widths{X: 24, Y: 24, Z: 24}
)

// quantize3 maps x, y and z through the scalar quantizer at their own widths.
func quantize3(v vec.Reader, w Widths, signed bool) (codes [3]uint32, err error) {
	values := [3]float32{v.X(), v.Y(), v.Z()}
	bits := [3]uint8{w.X, w.Y, w.Z}

	for i := range codes {
		codes[i], err = scalar.Pack(values[i], bits[i], signed)
		if err != nil {
			return codes, fmt.Errorf("component %s: %w", componentNames[i], err)
		}
	}

	return codes, nil
}

// quantize4 maps all four components at a single width.
func quantize4(v vec.Reader, bits uint8, signed bool) (codes [4]uint32, err error) {
	values := [4]float32{v.X(), v.Y(), v.Z(), v.W()}

	for i := range codes {
		codes[i], err = scalar.Pack(values[i], bits, signed)
		if err != nil {
			return codes, fmt.Errorf("component %s: %w", componentNames[i], err)
		}
	}

	return codes, nil
}

func dequantize3(codes [3]uint32, w Widths, signed bool) (vec.Vector4, error) {
	bits := [3]uint8{w.X, w.Y, w.Z}

	var out [3]float32
	for i := range out {
		f, err := scalar.Unpack(codes[i], bits[i], signed)
		if err != nil {
			return vec.Vector4{}, fmt.Errorf("component %s: %w", componentNames[i], err)
		}
		out[i] = f
	}

	return vec.New3(out[0], out[1], out[2]), nil
}

func dequantize4(codes [4]uint32, bits uint8, signed bool) (vec.Vector4, error) {
	var out [4]float32
	for i := range out {
		f, err := scalar.Unpack(codes[i], bits, signed)
		if err != nil {
			return vec.Vector4{}, fmt.Errorf("component %s: %w", componentNames[i], err)
		}
		out[i] = f
	}

	return vec.New(out[0], out[1], out[2], out[3]), nil
}

func checkLen(buf []byte, need int, layout string) error {
	if len(buf) < need {
		return fmt.Errorf("%w: %s needs %d bytes, have %d", errs.ErrBufferTooSmall, layout, need, len(buf))
	}

	return nil
}
