// Package vecpack packs 3- and 4-component float vectors (positions,
// rotations, scales) into compact fixed or variable bit-width binary layouts.
//
// Components are mapped onto unsigned integer codes by a uniform scalar
// quantizer over [0, 1] or [-1, 1], then laid out in one of nine formats
// ranging from raw float32 (Vector4_128, Vector3_96) down to 8 bits per
// component (Vector4_32, Vector3_24), plus a caller-chosen per-component
// width layout (Vector3_Variable).
//
// # Core Features
//
//   - Round-to-nearest scalar quantization at any width from 1 to 32 bits
//   - Nine frozen sample layouts, with native or pinned byte order
//   - Bit streams of back-to-back variable-width samples
//   - Range reduction of whole tracks and of segments against a clip range
//   - Self-describing track streams with xxHash64 checksums and optional
//     compression (Zstd, S2, LZ4)
//
// # Basic Usage
//
// Packing a single sample:
//
//	buf := make([]byte, 6)
//	err := vecpack.Pack(format.Vector3_48, vec.New3(0.5, 0.25, 1), packing.Params{}, buf)
//	v, err := vecpack.Unpack(format.Vector3_48, buf, packing.Params{})
//
// Encoding a track of positions:
//
//	encoder, _ := vecpack.NewDefaultTrackEncoder(format.Vector3_48)
//	for _, p := range positions {
//	    encoder.Add(p)
//	}
//	data, _ := encoder.Finish()
//
//	decoder, _ := vecpack.NewTrackDecoder(data)
//	for i, v := range decoder.All() {
//	    fmt.Printf("%d: %v\n", i, v)
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The building blocks
// live in scalar (quantizer), packing (layouts and the Codec), rangered
// (range reduction), section and track (container), and compress.
package vecpack

import (
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/packing"
	"github.com/arloliu/vecpack/track"
	"github.com/arloliu/vecpack/vec"
)

var defaultTrackOptions = []track.EncoderOption{
	track.WithLittleEndian(),
	track.WithCompression(format.CompressionZstd),
}

// defaultCodec uses the host byte order, like the package-level packers.
var defaultCodec, _ = packing.NewCodec(packing.WithNativeEndian())

// NewCodec creates a packing codec.
//
// Available options:
//   - packing.WithNativeEndian() (default)
//   - packing.WithLittleEndian() / packing.WithBigEndian()
//   - packing.WithEngine(engine)
func NewCodec(opts ...packing.CodecOption) (*packing.Codec, error) {
	return packing.NewCodec(opts...)
}

// PackedSize returns the number of bytes Pack writes for one sample of f.
func PackedSize(f format.VectorFormat, params packing.Params) (int, error) {
	return defaultCodec.PackedSize(f, params)
}

// Pack writes v in layout f to the start of out using the host byte order.
func Pack(f format.VectorFormat, v vec.Reader, params packing.Params, out []byte) error {
	return defaultCodec.Pack(f, v, params, out)
}

// Unpack reads one sample of layout f from the start of in using the host byte order.
func Unpack(f format.VectorFormat, in []byte, params packing.Params) (vec.Vector4, error) {
	return defaultCodec.Unpack(f, in, params)
}

// NewTrackEncoder creates a track encoder with custom options.
//
// Parameters:
//   - f: layout of every sample in the track
//   - opts: Optional configuration functions (see track.EncoderOption)
//
// Returns:
//   - *track.Encoder: The created track encoder.
//   - error: An error if the configuration is invalid.
//
// Available options:
//   - track.WithLittleEndian() / track.WithBigEndian()
//   - track.WithSigned(true|false)
//   - track.WithWidths(packing.Widths{...}) for Vector3_32 and Vector3_Variable
//   - track.WithRangeReduction(format.RangeReductionRotations|RangeReductionTranslations)
//   - track.WithCompression(format.CompressionNone|Zstd|S2|LZ4)
//   - track.WithLogger(logger), track.WithWorkers(n)
//
// Example:
//
//	encoder, err := vecpack.NewTrackEncoder(format.Vector3_Variable,
//	    track.WithWidths(packing.Widths{X: 12, Y: 12, Z: 10}),
//	    track.WithCompression(format.CompressionS2),
//	)
func NewTrackEncoder(f format.VectorFormat, opts ...track.EncoderOption) (*track.Encoder, error) {
	return track.NewEncoder(f, opts...)
}

// NewDefaultTrackEncoder creates a little-endian, unsigned, Zstd compressed
// track encoder.
func NewDefaultTrackEncoder(f format.VectorFormat) (*track.Encoder, error) {
	return track.NewEncoder(f, defaultTrackOptions...)
}

// NewRangeReducedTrackEncoder creates a default track encoder that normalizes
// samples against the clip range of the track before quantizing them.
//
// The format must be a quantized Vector3 layout. Later options override the
// defaults.
func NewRangeReducedTrackEncoder(f format.VectorFormat, flags format.RangeReductionFlags, opts ...track.EncoderOption) (*track.Encoder, error) {
	allOpts := make([]track.EncoderOption, 0, len(defaultTrackOptions)+len(opts)+1)
	allOpts = append(allOpts, defaultTrackOptions...)
	allOpts = append(allOpts, track.WithRangeReduction(flags))
	allOpts = append(allOpts, opts...)

	return track.NewEncoder(f, allOpts...)
}

// NewTrackDecoder creates a decoder for a track produced by any track encoder.
//
// The decoder verifies the header and the payload checksum and reads the
// format, byte order and compression from the header.
func NewTrackDecoder(data []byte) (*track.Decoder, error) {
	return track.NewDecoder(data)
}
