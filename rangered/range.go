// Package rangered holds the range reduction metadata persisted next to
// quantized samples.
//
// Range reduction maps every sample of a track (or of one segment of it) into
// [0, 1] using the per-component minimum and extent of the samples, so the
// scalar quantizer spends its codes on the range actually used:
//
//	r, _ := rangered.FromSamples(samples)
//	normalized := r.Normalize(v)       // (v - min) / extent
//	restored := r.Denormalize(decoded) // decoded * extent + min
//
// Ranges cover x, y and z; w is always zero in the results.
//
// Track streams store one clip range per track. Segment ranges
// (SegmentConfig.PackSegmentRange) are not written by the track package: they
// are a building block for callers that split a track into segments and keep
// each segment's range, quantized relative to the clip range, next to their
// own segment layout. track.Decoder.Range provides the clip range to quantize
// against.
package rangered

import (
	"fmt"

	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/vec"
)

// Range is the per-component minimum and extent of a set of samples.
type Range struct {
	Min    vec.Vector4
	Extent vec.Vector4
}

var xyz = vec.New3(1, 1, 1)

// FromSamples computes the range of x, y and z over samples.
//
// Returns:
//   - Range: minimum and extent (max - min) of every component, w zero
//   - error: errs.ErrInvalidArgument for an empty slice or a non-finite sample
func FromSamples(samples []vec.Vector4) (Range, error) {
	if len(samples) == 0 {
		return Range{}, fmt.Errorf("%w: no samples to compute a range from", errs.ErrInvalidArgument)
	}

	lo := samples[0]
	hi := samples[0]
	for i, s := range samples {
		if !s.IsFinite() {
			return Range{}, fmt.Errorf("%w: sample %d is not finite", errs.ErrInvalidArgument, i)
		}
		lo = lo.Min(s)
		hi = hi.Max(s)
	}

	lo = lo.Mul(xyz)
	hi = hi.Mul(xyz)

	return Range{Min: lo, Extent: hi.Sub(lo)}, nil
}

// Max returns Min + Extent.
func (r Range) Max() vec.Vector4 {
	return r.Min.Add(r.Extent)
}

// Normalize maps v into the unit range: (v - Min) / Extent per component.
// Components with a zero extent map to 0.
func (r Range) Normalize(v vec.Vector4) vec.Vector4 {
	n := v.Sub(r.Min).Div(r.Extent).Components()
	ext := r.Extent.Components()
	for i := range 3 {
		if ext[i] == 0 {
			n[i] = 0
		}
	}

	return vec.New3(n[0], n[1], n[2])
}

// Denormalize reverses Normalize: v * Extent + Min.
func (r Range) Denormalize(v vec.Vector4) vec.Vector4 {
	return v.Mul(r.Extent).Add(r.Min).Mul(xyz)
}

// MarshalTo writes min x, y, z followed by extent x, y, z as float32 values
// into out[0:format.RangeReductionVectorSize()].
func (r Range) MarshalTo(out []byte, engine endian.EndianEngine) error {
	size := format.RangeReductionVectorSize()
	if len(out) < size {
		return fmt.Errorf("%w: range needs %d bytes, have %d", errs.ErrBufferTooSmall, size, len(out))
	}

	for i := range 3 {
		endian.PutFloat32(engine, out[i*4:], r.Min.Get(i))
		endian.PutFloat32(engine, out[12+i*4:], r.Extent.Get(i))
	}

	return nil
}

// ParseRange reads a Range written by MarshalTo.
func ParseRange(in []byte, engine endian.EndianEngine) (Range, error) {
	size := format.RangeReductionVectorSize()
	if len(in) < size {
		return Range{}, fmt.Errorf("%w: range needs %d bytes, have %d", errs.ErrBufferTooSmall, size, len(in))
	}

	var lo, ext [3]float32
	for i := range 3 {
		lo[i] = endian.Float32(engine, in[i*4:])
		ext[i] = endian.Float32(engine, in[12+i*4:])
	}

	return Range{
		Min:    vec.New3(lo[0], lo[1], lo[2]),
		Extent: vec.New3(ext[0], ext[1], ext[2]),
	}, nil
}
