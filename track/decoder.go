package track

import (
	"context"
	"fmt"
	"iter"

	"github.com/arloliu/vecpack/compress"
	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/internal/bitstream"
	"github.com/arloliu/vecpack/internal/hash"
	"github.com/arloliu/vecpack/packing"
	"github.com/arloliu/vecpack/rangered"
	"github.com/arloliu/vecpack/section"
	"github.com/arloliu/vecpack/vec"
)

// Decoder gives random access to the samples of a track stream.
//
// The header, payload size and checksum are verified and the payload is
// decompressed once in NewDecoder; samples are unpacked on demand.
//
// Note: The Decoder is safe for concurrent reads once created. For uncompressed
// tracks it references the input slice, which must not be modified while the
// decoder is in use.
type Decoder struct {
	header  section.TrackHeader
	codec   *packing.Codec
	params  packing.Params
	clip    rangered.Range
	payload []byte
	size    int    // record size of byte-aligned formats
	bits    uint64 // sample size of bit stream formats
	count   int
}

// NewDecoder parses and verifies a track stream produced by Encoder.Finish.
//
// Parameters:
//   - data: the encoded track
//
// Returns:
//   - *Decoder: decoder over the decompressed payload
//   - error: errs.ErrInvalidHeaderSize, errs.ErrInvalidHeaderFlags, errs.ErrBufferTooSmall,
//     errs.ErrPayloadSize, errs.ErrChecksumMismatch or a decompression error
func NewDecoder(data []byte) (*Decoder, error) {
	header, err := section.ParseTrackHeader(data)
	if err != nil {
		return nil, err
	}

	engine := header.Flag.GetEndianEngine()
	codec, err := packing.NewCodec(packing.WithEngine(engine))
	if err != nil {
		return nil, err
	}

	d := &Decoder{
		header: header,
		codec:  codec,
		params: header.Params(),
		count:  int(header.SampleCount),
	}

	offset := header.PayloadOffset()
	if len(data) < offset {
		return nil, fmt.Errorf("%w: track of %d bytes ends before payload offset %d", errs.ErrBufferTooSmall, len(data), offset)
	}
	if header.Flag.HasRangeReduction() {
		if d.clip, err = rangered.ParseRange(data[section.HeaderSize:offset], engine); err != nil {
			return nil, err
		}
	}

	stored := data[offset:]
	if uint64(len(stored)) != uint64(header.PayloadSize) {
		return nil, fmt.Errorf("%w: header says %d bytes, found %d", errs.ErrPayloadSize, header.PayloadSize, len(stored))
	}
	if !hash.Verify(stored, header.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	if err := d.decompress(stored); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Decoder) decompress(stored []byte) error {
	f := d.header.Flag.Format

	codec, err := compress.GetCodec(d.header.Flag.Compression)
	if err != nil {
		return err
	}
	raw, err := codec.Decompress(stored)
	if err != nil {
		return fmt.Errorf("failed to decompress payload: %w", err)
	}

	want, err := rawPayloadSize(f, d.header.Widths, uint64(d.count))
	if err != nil {
		return err
	}
	if uint64(len(raw)) != want {
		return fmt.Errorf("%w: %d samples of %s need %d bytes, payload has %d",
			errs.ErrPayloadSize, d.count, f, want, len(raw))
	}

	if bits, ok := streamBits(f, d.header.Widths); ok {
		d.bits = bits
		// pad so every field load stays on the 8-byte fast path
		if padded := bitstream.PaddedSize(uint64(d.count) * bits); len(raw) < padded {
			buf := make([]byte, padded)
			copy(buf, raw)
			raw = buf
		}
	} else if d.size, err = format.PackedVectorSize(f); err != nil {
		return err
	}
	d.payload = raw

	return nil
}

// Header returns the parsed track header.
func (d *Decoder) Header() section.TrackHeader {
	return d.header
}

// Range returns the clip range of a range reduced track, the zero Range otherwise.
func (d *Decoder) Range() rangered.Range {
	return d.clip
}

// Len returns the number of samples in the track.
func (d *Decoder) Len() int {
	return d.count
}

// At returns sample i, denormalized when the track is range reduced.
//
// Returns:
//   - vec.Vector4: the decoded sample
//   - error: errs.ErrIndexOutOfRange when i is not in [0, Len())
func (d *Decoder) At(i int) (vec.Vector4, error) {
	if i < 0 || i >= d.count {
		return vec.Vector4{}, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, i, d.count)
	}

	v, err := d.unpack(i)
	if err != nil {
		return vec.Vector4{}, err
	}

	if d.header.Flag.HasRangeReduction() {
		v = d.clip.Denormalize(v)
	}

	return v, nil
}

func (d *Decoder) unpack(i int) (vec.Vector4, error) {
	f := d.header.Flag.Format
	if d.size > 0 {
		return d.codec.Unpack(f, d.payload[i*d.size:], d.params)
	}

	offset := uint64(i) * d.bits //nolint: gosec // i is non-negative
	switch f { //nolint: exhaustive
	case format.Vector3_96:
		return packing.UnpackVec3x96Stream(d.payload, offset)
	case format.Vector3_72:
		return packing.UnpackVec3x72Stream(d.payload, offset, d.params.Signed)
	case format.Vector3_Variable:
		return packing.UnpackVec3NStream(d.payload, d.params.Widths, d.params.Signed, offset)
	default:
		return vec.Vector4{}, fmt.Errorf("%w: %s", errs.ErrInvalidFormat, f)
	}
}

// All returns an iterator over the index and value of every sample.
//
// The payload size is verified in NewDecoder, so unpacking cannot fail for a
// decoder that was created successfully; iteration stops early if it does.
func (d *Decoder) All() iter.Seq2[int, vec.Vector4] {
	return func(yield func(int, vec.Vector4) bool) {
		for i := range d.count {
			v, err := d.At(i)
			if err != nil {
				return
			}
			if !yield(i, v) {
				return
			}
		}
	}
}

// Samples decodes every sample into a new slice.
//
// Byte-aligned formats are unpacked concurrently by at most workers goroutines
// (GOMAXPROCS when workers <= 0); bit stream formats are read sequentially.
func (d *Decoder) Samples(ctx context.Context, workers int) ([]vec.Vector4, error) {
	var samples []vec.Vector4
	if d.size > 0 {
		var err error
		samples, err = d.codec.UnpackBatch(ctx, d.header.Flag.Format, d.payload, d.count, d.params, workers)
		if err != nil {
			return nil, err
		}
	} else {
		samples = make([]vec.Vector4, d.count)
		for i := range samples {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			v, err := d.unpack(i)
			if err != nil {
				return nil, fmt.Errorf("sample %d: %w", i, err)
			}
			samples[i] = v
		}
	}

	if d.header.Flag.HasRangeReduction() {
		for i := range samples {
			samples[i] = d.clip.Denormalize(samples[i])
		}
	}

	return samples, nil
}
