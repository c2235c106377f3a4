// Package section defines the low-level binary structures and constants of the
// vecpack track stream.
//
// A track stream stores the packed samples of one animated channel together
// with everything needed to decode them: the vector format, per-component bit
// widths, signedness, range reduction and compression. The persisted enum
// values of the format package are only meaningful inside this container, so
// the magic number doubles as the container version: any change to a frozen
// enum value requires a new magic number.
//
// # Track Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (24 bytes, fixed)                                │
//	│  - Options, format, range reduction, widths, compression│
//	│  - SampleCount, PayloadSize (4 bytes each)              │
//	│  - Checksum (8 bytes): xxHash64 of the stored payload   │
//	├─────────────────────────────────────────────────────────┤
//	│ Clip Range (24 bytes, optional)                         │
//	│  - Only present when range reduction is enabled         │
//	│  - min x,y,z and extent x,y,z as float32                │
//	├─────────────────────────────────────────────────────────┤
//	│ Payload (PayloadSize bytes)                             │
//	│  - Packed samples, compressed with the header codec     │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field          | Type   | Description
//	-------|----------------|--------|----------------------------------
//	0-1    | Options        | uint16 | Magic, byte order, signedness (always little-endian)
//	2      | Format         | uint8  | format.VectorFormat
//	3      | RangeReduction | uint8  | format.RangeReductionFlags
//	4-6    | Widths         | 3×u8   | X, Y, Z bits (Vector3_32 and Vector3_Variable only)
//	7      | Compression    | uint8  | format.CompressionType
//	8-11   | SampleCount    | uint32 | Number of samples
//	12-15  | PayloadSize    | uint32 | Stored payload bytes
//	16-23  | Checksum       | uint64 | xxHash64 of the stored payload
//
// Options bits:
//
//	Bit 0: Endianness (0=little-endian, 1=big-endian)
//	Bit 1: Signedness (0=[0, 1] samples, 1=[-1, 1] samples)
//	Bits 2-3: Reserved (must be 0)
//	Bits 4-15: Magic number (0xAC10 for track stream v1)
//
// # Payload Layout
//
// Byte-aligned formats store one record per sample, back to back, with
// 2-byte units and raw floats in the header byte order. Vector3_96,
// Vector3_72 and Vector3_Variable store a big-endian bit stream; variable
// samples occupy exactly X+Y+Z bits each and are not byte aligned.
//
// # Usage Examples
//
//	header := section.NewTrackHeader(format.Vector3_48)
//	header.Flag.WithBigEndian()
//	header.SampleCount = 100
//	data := header.Bytes()
//
//	parsed, err := section.ParseTrackHeader(data)
package section
