package section

import "math"

const (
	// Bit masks of TrackFlag.Options
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	SignedMask       = 0x0002 // Mask for signed quantization bit (bit 1)
	ReservedBitsMask = 0x000C // Mask for reserved bits (bits 2-3)
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// Magic numbers (bits 4-15)
	MagicTrackV1Opt = 0xAC10 // MagicTrackV1Opt is the version 1 magic number of the track stream format.
)

// offset and section sizes in the track stream
const (
	HeaderSize     = 24             // fixed header size in bytes
	RangeSize      = 24             // clip range stored after the header when range reduction is enabled
	MaxSampleCount = math.MaxUint32 // maximum number of samples in a track
	MaxPayloadSize = math.MaxUint32 // maximum stored payload size in bytes
)
