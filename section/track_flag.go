package section

import (
	"fmt"

	"github.com/arloliu/vecpack/endian"
	"github.com/arloliu/vecpack/errs"
	"github.com/arloliu/vecpack/format"
)

// TrackFlag represents the packed option word and enum bytes of the track header.
type TrackFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 1 is the signedness flag, 0 means [0, 1] samples, 1 means [-1, 1] samples.
	// Bit 2-3 are reserved for future use, must be set to 0.
	// Bit 4-15 are the magic number identifying the format version:
	//   - 0xAC10 (0b1010_1100_0001_0000): track stream format v1
	Options uint16

	// Format is the packed layout of every sample in the payload.
	Format format.VectorFormat
	// RangeReduction marks the channel categories whose samples were normalized
	// against the clip range stored after the header.
	RangeReduction format.RangeReductionFlags
	// Compression is the codec applied to the payload.
	Compression format.CompressionType
}

// NewTrackFlag creates a little-endian, unsigned, uncompressed flag for f.
func NewTrackFlag(f format.VectorFormat) TrackFlag {
	flag := TrackFlag{
		Options:        MagicTrackV1Opt,
		Format:         f,
		RangeReduction: format.RangeReductionNone,
		Compression:    format.CompressionNone,
	}
	flag.WithLittleEndian()

	return flag
}

// IsLittleEndian returns whether the payload is little-endian.
func (f TrackFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the payload is big-endian.
func (f TrackFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *TrackFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *TrackFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// IsSigned returns whether samples were quantized in the signed domain.
func (f TrackFlag) IsSigned() bool {
	return (f.Options & SignedMask) != 0
}

// SetSigned selects the signed or unsigned quantizer domain.
func (f *TrackFlag) SetSigned(signed bool) {
	if signed {
		f.Options |= SignedMask
	} else {
		f.Options &^= SignedMask
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f TrackFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsValidMagicNumber checks if the magic number is valid.
func (f TrackFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicTrackV1Opt
}

// HasRangeReduction reports whether a clip range follows the header.
func (f TrackFlag) HasRangeReduction() bool {
	return f.RangeReduction != format.RangeReductionNone
}

// Validate checks if the flag contains valid values.
func (f TrackFlag) Validate() error {
	if !f.IsValidMagicNumber() {
		return fmt.Errorf("%w: magic number 0x%04X", errs.ErrInvalidHeaderFlags, f.GetMagicNumber())
	}
	if f.Options&ReservedBitsMask != 0 {
		return fmt.Errorf("%w: reserved option bits set", errs.ErrInvalidHeaderFlags)
	}
	if !f.Format.IsValid() {
		return fmt.Errorf("%w: vector format %d", errs.ErrInvalidHeaderFlags, f.Format)
	}
	if !f.RangeReduction.IsValid() {
		return fmt.Errorf("%w: range reduction flags 0x%02X", errs.ErrInvalidHeaderFlags, uint8(f.RangeReduction))
	}
	if !f.Compression.IsValid() {
		return fmt.Errorf("%w: compression type %d", errs.ErrInvalidHeaderFlags, f.Compression)
	}
	if f.HasRangeReduction() {
		if !f.Format.IsQuantized() || f.Format.NumComponents() != 3 {
			return fmt.Errorf("%w: range reduction requires a quantized Vector3 format, got %s", errs.ErrInvalidHeaderFlags, f.Format)
		}
		if f.IsSigned() {
			return fmt.Errorf("%w: range reduced samples are unsigned", errs.ErrInvalidHeaderFlags)
		}
	}

	return nil
}

// GetEndianEngine returns the appropriate endian engine based on the flag.
func (f TrackFlag) GetEndianEngine() endian.EndianEngine {
	return endian.EngineFor(f.IsBigEndian())
}
