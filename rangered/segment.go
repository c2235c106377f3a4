package rangered

import (
	"fmt"

	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/internal/options"
	"github.com/arloliu/vecpack/scalar"
	"github.com/arloliu/vecpack/vec"
)

// DefaultComponentBits is the segment range component width used when no
// option overrides it.
const DefaultComponentBits = 8

// unitSlack is how far a normalized segment bound may overshoot [0, 1]
// through float32 rounding before it is treated as lying outside the clip.
const unitSlack = 1e-5

// SegmentConfig describes how segment ranges are quantized relative to the
// clip range. It is immutable after construction.
type SegmentConfig struct {
	componentBits uint8
}

// SegmentOption configures a SegmentConfig.
type SegmentOption = options.Option[*SegmentConfig]

// WithComponentBits sets the width of every quantized segment range
// component. Only 8 and 16 are supported.
func WithComponentBits(bits uint8) SegmentOption {
	return options.New(func(c *SegmentConfig) error {
		if bits != 8 && bits != 16 {
			return fmt.Errorf("%w: segment range component bits must be 8 or 16, got %d", errs.ErrInvalidOption, bits)
		}
		c.componentBits = bits

		return nil
	})
}

// NewSegmentConfig creates a SegmentConfig with DefaultComponentBits unless
// overridden.
func NewSegmentConfig(opts ...SegmentOption) (*SegmentConfig, error) {
	c := &SegmentConfig{componentBits: DefaultComponentBits}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// ComponentBits returns the configured component width.
func (c *SegmentConfig) ComponentBits() uint8 {
	return c.componentBits
}

// SegmentMetadataSize returns the bytes one packed segment range occupies:
// min and extent, three components each.
func (c *SegmentConfig) SegmentMetadataSize() int {
	return 2 * 3 * int(c.componentBits) / 8
}

// PackSegmentRange quantizes segment relative to clip and writes min codes
// followed by extent codes into out.
//
// The minimum is rounded down and the maximum up, so the decoded segment
// range always contains the encoded one. Each decoded bound is within one
// quantization step (scaled by the clip extent) of the original.
//
// Parameters:
//   - segment: range of the segment samples, contained in clip
//   - clip: range of the whole track
//   - out: destination with at least SegmentMetadataSize() bytes
//   - engine: byte order of 16-bit codes
//
// Returns:
//   - error: errs.ErrValueOutOfRange when segment is not inside clip,
//     errs.ErrBufferTooSmall for a short out
func (c *SegmentConfig) PackSegmentRange(segment, clip Range, out []byte, engine endian.EndianEngine) error {
	size := c.SegmentMetadataSize()
	if len(out) < size {
		return fmt.Errorf("%w: segment range needs %d bytes, have %d", errs.ErrBufferTooSmall, size, len(out))
	}

	lo := clip.Normalize(segment.Min).Components()
	hi := clip.Normalize(segment.Max()).Components()

	for i := range 3 {
		minN, err := unitClamp(lo[i])
		if err != nil {
			return fmt.Errorf("segment min component %d: %w", i, err)
		}
		maxN, err := unitClamp(hi[i])
		if err != nil {
			return fmt.Errorf("segment max component %d: %w", i, err)
		}

		minCode, err := c.floorCode(minN)
		if err != nil {
			return err
		}
		decodedMin, err := scalar.UnpackUnsigned(minCode, c.componentBits)
		if err != nil {
			return err
		}

		extCode, err := c.ceilCode(max(maxN-decodedMin, 0))
		if err != nil {
			return err
		}

		c.putCode(out, i, minCode, engine)
		c.putCode(out, 3+i, extCode, engine)
	}

	return nil
}

// UnpackSegmentRange reverses PackSegmentRange.
func (c *SegmentConfig) UnpackSegmentRange(in []byte, clip Range, engine endian.EndianEngine) (Range, error) {
	size := c.SegmentMetadataSize()
	if len(in) < size {
		return Range{}, fmt.Errorf("%w: segment range needs %d bytes, have %d", errs.ErrBufferTooSmall, size, len(in))
	}

	var lo, ext [3]float32
	for i := range 3 {
		var err error
		lo[i], err = scalar.UnpackUnsigned(c.code(in, i, engine), c.componentBits)
		if err != nil {
			return Range{}, err
		}
		ext[i], err = scalar.UnpackUnsigned(c.code(in, 3+i, engine), c.componentBits)
		if err != nil {
			return Range{}, err
		}
	}

	segMin := clip.Denormalize(vec.New3(lo[0], lo[1], lo[2]))
	segExt := vec.New3(ext[0], ext[1], ext[2]).Mul(clip.Extent)

	return Range{Min: segMin, Extent: segExt}, nil
}

// floorCode returns the largest code whose decoded value does not exceed v.
func (c *SegmentConfig) floorCode(v float32) (uint32, error) {
	code, err := scalar.PackUnsigned(v, c.componentBits)
	if err != nil {
		return 0, err
	}
	decoded, _ := scalar.UnpackUnsigned(code, c.componentBits)
	if decoded > v && code > 0 {
		code--
	}

	return code, nil
}

// ceilCode returns the smallest code whose decoded value is not below v.
func (c *SegmentConfig) ceilCode(v float32) (uint32, error) {
	code, err := scalar.PackUnsigned(v, c.componentBits)
	if err != nil {
		return 0, err
	}
	maxCode, _ := scalar.MaxCode(c.componentBits)
	decoded, _ := scalar.UnpackUnsigned(code, c.componentBits)
	if decoded < v && code < maxCode {
		code++
	}

	return code, nil
}

func (c *SegmentConfig) putCode(out []byte, slot int, code uint32, engine endian.EndianEngine) {
	if c.componentBits == 8 {
		out[slot] = byte(code)
		return
	}
	engine.PutUint16(out[slot*2:], uint16(code)) //nolint:gosec // 16-bit code
}

func (c *SegmentConfig) code(in []byte, slot int, engine endian.EndianEngine) uint32 {
	if c.componentBits == 8 {
		return uint32(in[slot])
	}

	return uint32(engine.Uint16(in[slot*2:]))
}

// unitClamp pulls values that overshoot [0, 1] by float rounding back into it.
func unitClamp(v float32) (float32, error) {
	switch {
	case v >= 0 && v <= 1:
		return v, nil
	case v < 0 && v >= -unitSlack:
		return 0, nil
	case v > 1 && v <= 1+unitSlack:
		return 1, nil
	default:
		return 0, fmt.Errorf("%w: normalized bound %v outside clip range", errs.ErrValueOutOfRange, v)
	}
}
