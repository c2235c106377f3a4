package section

import (
	"fmt"

	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/packing"
)

// TrackHeader represents the fixed-size header at the start of a track stream.
type TrackHeader struct {
	// Flag holds the magic number, byte order, signedness and the format enums.
	Flag TrackFlag // byte offset 0-3 and 7
	// Widths are the per-component bit widths of Vector3_32 and
	// Vector3_Variable tracks, zero for every other format.
	Widths packing.Widths // byte offset 4-6
	// SampleCount is the number of samples stored in the track.
	SampleCount uint32 // byte offset 8-11
	// PayloadSize is the size of the stored (possibly compressed) payload in bytes.
	PayloadSize uint32 // byte offset 12-15
	// Checksum is the xxHash64 of the stored payload.
	Checksum uint64 // byte offset 16-23
}

// NewTrackHeader creates a TrackHeader for format f.
// The sample count, payload size and checksum are set when the encoder finishes.
func NewTrackHeader(f format.VectorFormat) *TrackHeader {
	return &TrackHeader{
		Flag: NewTrackFlag(f),
	}
}

// PayloadOffset returns the byte offset of the payload: right after the header,
// or after the stored clip range when range reduction is enabled.
func (h TrackHeader) PayloadOffset() int {
	if h.Flag.HasRangeReduction() {
		return HeaderSize + RangeSize
	}

	return HeaderSize
}

// Params returns the packing parameters recorded in the header.
func (h TrackHeader) Params() packing.Params {
	return packing.Params{Widths: h.Widths, Signed: h.Flag.IsSigned()}
}

// Validate checks the flag and the width invariants of the format.
func (h *TrackHeader) Validate() error {
	if err := h.Flag.Validate(); err != nil {
		return err
	}

	switch h.Flag.Format {
	case format.Vector3_32:
		if err := h.Widths.Validate32(); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidHeaderFlags, err)
		}
	case format.Vector3_Variable:
		if err := h.Widths.Validate(); err != nil {
			return fmt.Errorf("%w: %w", errs.ErrInvalidHeaderFlags, err)
		}
	default:
		if h.Widths != (packing.Widths{}) {
			return fmt.Errorf("%w: widths %s set for %s", errs.ErrInvalidHeaderFlags, h.Widths, h.Flag.Format)
		}
	}

	return nil
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice containing header (must be exactly 24 bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize if data is not 24 bytes, or ErrInvalidHeaderFlags
func (h *TrackHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// Options is always little-endian; it carries the byte order of the rest
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.Format = format.VectorFormat(data[2])
	h.Flag.RangeReduction = format.RangeReductionFlags(data[3])
	h.Widths = packing.Widths{X: data[4], Y: data[5], Z: data[6]}
	h.Flag.Compression = format.CompressionType(data[7])

	engine := h.Flag.GetEndianEngine()

	h.SampleCount = engine.Uint32(data[8:12])
	h.PayloadSize = engine.Uint32(data[12:16])
	h.Checksum = engine.Uint64(data[16:24])

	return h.Validate()
}

// Bytes serializes the TrackHeader into a byte slice.
func (h *TrackHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.Flag.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[2] = byte(h.Flag.Format)
	b[3] = byte(h.Flag.RangeReduction)
	b[4] = h.Widths.X
	b[5] = h.Widths.Y
	b[6] = h.Widths.Z
	b[7] = byte(h.Flag.Compression)
	engine.PutUint32(b[8:12], h.SampleCount)
	engine.PutUint32(b[12:16], h.PayloadSize)
	engine.PutUint64(b[16:24], h.Checksum)

	return b
}

// ParseTrackHeader parses a TrackHeader from the start of a byte slice.
//
// Parameters:
//   - data: Byte slice starting with a header (must be at least 24 bytes)
//
// Returns:
//   - TrackHeader: Parsed header struct
//   - error: ErrInvalidHeaderSize or ErrInvalidHeaderFlags
func ParseTrackHeader(data []byte) (TrackHeader, error) {
	if len(data) < HeaderSize {
		return TrackHeader{}, errs.ErrInvalidHeaderSize
	}

	h := TrackHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return TrackHeader{}, err
	}

	return h, nil
}
