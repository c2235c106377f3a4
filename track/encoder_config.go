package track

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
	"github.com/arloliu/vecpack/internal/options"
	"github.com/arloliu/vecpack/packing"
	"github.com/arloliu/vecpack/section"
)

// EncoderConfig holds the header under construction and the encoder knobs
// that are not persisted.
type EncoderConfig struct {
	header  *section.TrackHeader
	logger  *slog.Logger
	workers int
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// NewEncoderConfig creates a little-endian, unsigned, uncompressed config for f.
func NewEncoderConfig(f format.VectorFormat) *EncoderConfig {
	return &EncoderConfig{
		header: section.NewTrackHeader(f),
		logger: slog.New(slog.DiscardHandler),
	}
}

// Header returns the header under construction.
func (c *EncoderConfig) Header() *section.TrackHeader {
	return c.header
}

// WithLittleEndian writes the header counters, ranges and 2-byte units in
// little-endian order. It is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.header.Flag.WithLittleEndian()
	})
}

// WithBigEndian writes the header counters, ranges and 2-byte units in
// big-endian order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.header.Flag.WithBigEndian()
	})
}

// WithSigned selects the [-1, 1] quantizer domain. Ignored by the raw formats.
func WithSigned(signed bool) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.header.Flag.SetSigned(signed)
	})
}

// WithWidths sets the per-component bit widths of Vector3_32 and
// Vector3_Variable tracks.
func WithWidths(w packing.Widths) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.header.Widths = w
	})
}

// WithRangeReduction normalizes every sample against the clip range of the
// whole track before quantizing it. The range is stored after the header.
//
// Only quantized Vector3 formats with unsigned samples can be range reduced;
// NewEncoder rejects every other combination.
func WithRangeReduction(flags format.RangeReductionFlags) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !flags.IsValid() {
			return fmt.Errorf("%w: range reduction flags 0x%02X", errs.ErrInvalidOption, uint8(flags))
		}
		c.header.Flag.RangeReduction = flags

		return nil
	})
}

// WithCompression sets the payload compression.
func WithCompression(ct format.CompressionType) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if !ct.IsValid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, ct)
		}
		c.header.Flag.Compression = ct

		return nil
	})
}

// WithLogger sets the logger receiving one debug record per finished track.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithWorkers bounds the goroutines packing a range reduced track in Finish.
// Zero or less uses GOMAXPROCS.
func WithWorkers(n int) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.workers = n
	})
}
