package packing

import (
	"fmt"

	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/internal/options"
	"github.com/arloliu/vecpack/vec"
)

// Params carries the per-call inputs some layouts need besides the sample.
type Params struct {
	// Widths is used by Vector3_32 (sum must be 32) and Vector3_Variable.
	Widths Widths
	// Signed selects the [-1, 1] quantizer domain instead of [0, 1].
	Signed bool
}

// Codec packs and unpacks samples of any VectorFormat with a pinned byte order.
//
// A Codec is immutable after construction and safe for concurrent use.
type Codec struct {
	engine endian.EndianEngine
}

// CodecOption configures a Codec.
type CodecOption = options.Option[*Codec]

// WithLittleEndian pins little-endian 2-byte units, words and floats.
func WithLittleEndian() CodecOption {
	return options.NoError(func(c *Codec) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian pins big-endian 2-byte units, words and floats.
func WithBigEndian() CodecOption {
	return options.NoError(func(c *Codec) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithNativeEndian uses the host byte order. It is the default option.
func WithNativeEndian() CodecOption {
	return options.NoError(func(c *Codec) {
		c.engine = endian.GetNativeEngine()
	})
}

// WithEngine uses an explicit engine.
func WithEngine(engine endian.EndianEngine) CodecOption {
	return options.New(func(c *Codec) error {
		if engine == nil {
			return fmt.Errorf("%w: nil endian engine", errs.ErrInvalidOption)
		}
		c.engine = engine

		return nil
	})
}

// NewCodec creates a Codec. Without options it uses the host byte order,
// which makes it equivalent to the package-level functions.
func NewCodec(opts ...CodecOption) (*Codec, error) {
	c := &Codec{engine: endian.GetNativeEngine()}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Engine returns the byte order the codec writes.
func (c *Codec) Engine() endian.EndianEngine {
	return c.engine
}

// PackedSize returns the number of bytes Pack writes for one sample of f.
// For Vector3_Variable this is VariableWordSize once the widths are valid.
func (c *Codec) PackedSize(f format.VectorFormat, params Params) (int, error) {
	switch f {
	case format.Vector3_Variable:
		if err := params.Widths.Validate(); err != nil {
			return 0, err
		}

		return VariableWordSize, nil
	case format.Vector3_32:
		if err := params.Widths.Validate32(); err != nil {
			return 0, err
		}
	}

	return format.PackedVectorSize(f)
}

// Pack writes v in layout f to the start of out.
//
// Parameters:
//   - f: target layout
//   - v: sample to pack
//   - params: widths and signedness; ignored by layouts that do not use them
//   - out: destination with at least PackedSize(f, params) bytes
//
// Returns:
//   - error: errs.ErrInvalidFormat for unknown layouts, or the layout's own error
func (c *Codec) Pack(f format.VectorFormat, v vec.Reader, params Params, out []byte) error {
	switch f {
	case format.Vector4_128:
		return packVec4x128(c.engine, v, out)
	case format.Vector4_64:
		return packVec4x64(c.engine, v, params.Signed, out)
	case format.Vector4_32:
		return PackVec4x32(v, params.Signed, out)
	case format.Vector3_96:
		return packVec3x96(c.engine, v, out)
	case format.Vector3_72:
		return PackVec3x72(v, params.Signed, out)
	case format.Vector3_48:
		return packVec3x48(c.engine, v, params.Signed, out)
	case format.Vector3_32:
		return packVec3x32(c.engine, v, params.Widths, params.Signed, out)
	case format.Vector3_24:
		return PackVec3x24(v, params.Signed, out)
	case format.Vector3_Variable:
		return packVec3N(c.engine, v, params.Widths, params.Signed, out)
	default:
		return fmt.Errorf("%w: %v", errs.ErrInvalidFormat, f)
	}
}

// Unpack reads one sample in layout f from the start of in.
func (c *Codec) Unpack(f format.VectorFormat, in []byte, params Params) (vec.Vector4, error) {
	switch f {
	case format.Vector4_128:
		return unpackVec4x128(c.engine, in)
	case format.Vector4_64:
		return unpackVec4x64(c.engine, in, params.Signed)
	case format.Vector4_32:
		return UnpackVec4x32(in, params.Signed)
	case format.Vector3_96:
		return unpackVec3x96(c.engine, in)
	case format.Vector3_72:
		return UnpackVec3x72(in, params.Signed)
	case format.Vector3_48:
		return unpackVec3x48(c.engine, in, params.Signed)
	case format.Vector3_32:
		return unpackVec3x32(c.engine, in, params.Widths, params.Signed)
	case format.Vector3_24:
		return UnpackVec3x24(in, params.Signed)
	case format.Vector3_Variable:
		return unpackVec3N(c.engine, in, params.Widths, params.Signed)
	default:
		return vec.Vector4{}, fmt.Errorf("%w: %v", errs.ErrInvalidFormat, f)
	}
}
