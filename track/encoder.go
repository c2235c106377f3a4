package track

import (
	"context"
	"fmt"

	"github.com/arloliu/vecpack/compress"
	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/internal/bitstream"
	"github.com/arloliu/vecpack/internal/hash"
	"github.com/arloliu/vecpack/internal/options"
	"github.com/arloliu/vecpack/internal/pool"
	"github.com/arloliu/vecpack/packing"
	"github.com/arloliu/vecpack/rangered"
	"github.com/arloliu/vecpack/section"
	"github.com/arloliu/vecpack/vec"
)

// scratchSize fits the widest record written through the bit stream (Vector3_96).
const scratchSize = 12

// Encoder packs a sequence of samples into a track stream.
//
// Byte-aligned formats are packed record by record with the header's byte
// order. Vector3_96, Vector3_72 and Vector3_Variable samples are appended to
// a big-endian bit stream, back to back and without padding.
//
// Note: The Encoder is NOT thread-safe. Each encoder instance should be used by a single goroutine at a time.
//
// Note: The Encoder is NOT reusable. After calling Finish, a new encoder must be created for further encoding.
type Encoder struct {
	*EncoderConfig

	codec  *packing.Codec
	params packing.Params
	size   int // record size of byte-aligned formats
	bits   int // sample size of bit stream formats

	buf    *pool.ByteBuffer
	stream *bitstream.Writer

	// range reduced samples are held until Finish, when the clip range is known
	pending []vec.Vector4

	count    int
	finished bool
	scratch  [scratchSize]byte
}

// NewEncoder creates an Encoder for samples of format f.
//
// Parameters:
//   - f: layout of every sample in the track
//   - opts: byte order, signedness, widths, range reduction, compression and logging
//
// Returns:
//   - *Encoder: encoder ready to accept samples
//   - error: errs.ErrInvalidOption wrapping the header problem when the options do
//     not form a valid track (bad widths, range reduction on an unsupported format...)
func NewEncoder(f format.VectorFormat, opts ...EncoderOption) (*Encoder, error) {
	config := NewEncoderConfig(f)
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	if err := config.header.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidOption, err)
	}

	codec, err := packing.NewCodec(packing.WithEngine(config.header.Flag.GetEndianEngine()))
	if err != nil {
		return nil, err
	}

	e := &Encoder{
		EncoderConfig: config,
		codec:         codec,
		params:        config.header.Params(),
	}

	if bits, ok := streamBits(f, config.header.Widths); ok {
		e.bits = int(bits) //nolint: gosec // at most 96
		e.stream = bitstream.NewWriter(pool.TrackBufferDefaultSize)
	} else {
		e.size, err = codec.PackedSize(f, e.params)
		if err != nil {
			return nil, err
		}
		e.buf = pool.GetTrackBuffer()
	}

	return e, nil
}

// Len returns the number of samples added so far.
func (e *Encoder) Len() int {
	return e.count
}

// Add appends one sample.
//
// Without range reduction the sample is packed immediately, so a component
// outside the quantizer domain is reported here and the sample is not added.
// With range reduction only non-finite components are rejected.
//
// Returns:
//   - error: errs.ErrEncoderFinished after Finish, errs.ErrValueOutOfRange,
//     or errs.ErrPayloadSize when the track is full
func (e *Encoder) Add(v vec.Reader) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if uint64(e.count) >= section.MaxSampleCount { //nolint: gosec
		return fmt.Errorf("%w: track holds at most %d samples", errs.ErrPayloadSize, uint64(section.MaxSampleCount))
	}

	if e.header.Flag.HasRangeReduction() {
		s := vec.FromReader(v)
		if !s.IsFinite() {
			return fmt.Errorf("%w: non-finite sample", errs.ErrValueOutOfRange)
		}
		e.pending = append(e.pending, s)
	} else if err := e.write(v); err != nil {
		return err
	}

	e.count++

	return nil
}

// AddSlice appends samples in order. On error the samples before the failing
// one stay added.
func (e *Encoder) AddSlice(samples []vec.Vector4) error {
	for i := range samples {
		if err := e.Add(samples[i]); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}

	return nil
}

// write packs v onto the end of the payload.
func (e *Encoder) write(v vec.Reader) error {
	f := e.header.Flag.Format

	if e.stream == nil {
		out := e.buf.Extend(e.size)
		if err := e.codec.Pack(f, v, e.params, out); err != nil {
			e.buf.B = e.buf.B[:len(e.buf.B)-e.size]
			return err
		}

		return nil
	}

	rec := e.scratch[:]
	if err := e.codec.Pack(f, v, e.params, rec); err != nil {
		return err
	}

	engine := e.codec.Engine()
	switch f { //nolint: exhaustive
	case format.Vector3_96:
		for i := range 3 {
			e.stream.WriteBits(uint64(engine.Uint32(rec[i*4:])), 32)
		}
	case format.Vector3_72:
		// Vector3_72 records are already three MSB-first 24-bit codes
		for i := range 3 {
			b := rec[i*3:]
			e.stream.WriteBits(uint64(b[0])<<16|uint64(b[1])<<8|uint64(b[2]), 24)
		}
	case format.Vector3_Variable:
		e.stream.WriteBits(engine.Uint64(rec), e.bits)
	}

	return nil
}

// flushPending normalizes the held samples against their clip range and packs them.
func (e *Encoder) flushPending() (rangered.Range, error) {
	if len(e.pending) == 0 {
		return rangered.Range{}, nil
	}

	clip, err := rangered.FromSamples(e.pending)
	if err != nil {
		return rangered.Range{}, err
	}

	for i := range e.pending {
		e.pending[i] = clip.Normalize(e.pending[i])
	}

	if e.stream == nil {
		out := e.buf.Extend(e.size * len(e.pending))
		err = e.codec.PackBatch(context.Background(), e.header.Flag.Format, e.pending, e.params, out, e.workers)

		return clip, err
	}

	for i := range e.pending {
		if err := e.write(e.pending[i]); err != nil {
			return rangered.Range{}, fmt.Errorf("sample %d: %w", i, err)
		}
	}

	return clip, nil
}

// Finish compresses the payload and returns the complete track stream:
// header, clip range when range reduced, then the stored payload.
//
// Returns:
//   - []byte: the encoded track, owned by the caller
//   - error: errs.ErrEncoderFinished on a second call, packing errors of range
//     reduced samples, compression errors, or errs.ErrPayloadSize
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true

	defer func() {
		pool.PutTrackBuffer(e.buf)
		e.buf = nil
		e.pending = nil
	}()

	// clone, so a failed Finish leaves the configured header untouched
	header := *e.header

	var clip rangered.Range
	if header.Flag.HasRangeReduction() {
		var err error
		if clip, err = e.flushPending(); err != nil {
			return nil, fmt.Errorf("failed to pack range reduced samples: %w", err)
		}
	}

	var raw []byte
	if e.stream != nil {
		raw = e.stream.Bytes()
	} else {
		raw = e.buf.Bytes()
	}

	payload, stats, err := compress.CompressWithStats(header.Flag.Compression, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress payload: %w", err)
	}
	if uint64(len(payload)) > section.MaxPayloadSize {
		return nil, fmt.Errorf("%w: stored payload of %d bytes", errs.ErrPayloadSize, len(payload))
	}

	header.SampleCount = uint32(e.count)      //nolint: gosec // bounded by Add
	header.PayloadSize = uint32(len(payload)) //nolint: gosec // checked above
	header.Checksum = hash.Checksum(payload)

	offset := header.PayloadOffset()
	data := make([]byte, offset+len(payload))
	copy(data, header.Bytes())
	if header.Flag.HasRangeReduction() {
		if err := clip.MarshalTo(data[section.HeaderSize:], header.Flag.GetEndianEngine()); err != nil {
			return nil, err
		}
	}
	copy(data[offset:], payload)

	e.logger.Debug("track encoded",
		"format", header.Flag.Format.String(),
		"samples", e.count,
		"compression", stats.Algorithm.String(),
		"raw_bytes", stats.OriginalSize,
		"stored_bytes", stats.CompressedSize,
		"range_reduced", header.Flag.HasRangeReduction(),
	)

	return data, nil
}
