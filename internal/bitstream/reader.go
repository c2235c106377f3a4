// Package bitstream reads and writes big-endian, MSB-first bit streams.
//
// Streams produced by Writer hold fields back to back with no alignment:
// the first field starts at the most significant bit of byte 0. ReadBits
// extracts a field of up to 64 bits at any bit offset.
//
// # Read protocol
//
// For a field of width w at bit offset b:
//
//  1. load the 8 bytes at b/8 as a big-endian word
//  2. shift the word left by b%8 to drop already consumed bits
//  3. when w + b%8 > 64 the field straddles the word; its remaining low
//     bits come from the top of byte b/8 + 8
//  4. shift right by 64 - w to right-align the field
//
// # Buffer sizing
//
// Loads never read past the end of the slice: missing tail bytes are treated
// as zero. A field that itself extends past the end fails with
// errs.ErrBufferTooSmall. Buffers sized with PaddedSize keep every load on the
// single 8-byte fast path.
package bitstream

import (
	"encoding/binary"
	"fmt"

	"github.com/arloliu/vecpack/errs"
)

// MaxFieldBits is the widest field a single read can return.
const MaxFieldBits = 64

// PaddedSize returns the byte size for a stream of nBits bits plus 7 bytes of
// slack, so an 8-byte load at any field start stays in bounds.
func PaddedSize(nBits uint64) int {
	return int((nBits+7)/8) + 7 //nolint:gosec // stream sizes fit in int
}

// ReadBits returns the width-bit field starting at bitOffset, right-aligned.
func ReadBits(data []byte, bitOffset uint64, width uint8) (uint64, error) {
	if width > MaxFieldBits {
		return 0, fmt.Errorf("%w: field of %d bits exceeds %d", errs.ErrInvalidBitWidth, width, MaxFieldBits)
	}
	if width == 0 {
		return 0, nil
	}

	end := bitOffset + uint64(width)
	if end < bitOffset || (end+7)/8 > uint64(len(data)) {
		return 0, fmt.Errorf("%w: need %d bits from offset %d, have %d bytes",
			errs.ErrBufferTooSmall, width, bitOffset, len(data))
	}

	byteOffset := bitOffset / 8
	shift := bitOffset % 8

	word := load64(data, byteOffset) << shift
	if shift+uint64(width) > 64 {
		word |= uint64(loadByte(data, byteOffset+8)) >> (8 - shift)
	}

	return word >> (64 - uint64(width)), nil
}

// load64 reads 8 big-endian bytes at off, zero-filling bytes past the end.
func load64(data []byte, off uint64) uint64 {
	if off+8 <= uint64(len(data)) {
		return binary.BigEndian.Uint64(data[off : off+8])
	}

	var word uint64
	for i := uint64(0); i < 8; i++ {
		word <<= 8
		word |= uint64(loadByte(data, off+i))
	}

	return word
}

func loadByte(data []byte, off uint64) byte {
	if off < uint64(len(data)) {
		return data[off]
	}

	return 0
}

// Reader is a bit cursor over a big-endian stream.
type Reader struct {
	data   []byte
	offset uint64
}

// NewReader creates a cursor positioned at bitOffset.
func NewReader(data []byte, bitOffset uint64) *Reader {
	return &Reader{data: data, offset: bitOffset}
}

// Read returns the next width-bit field and advances the cursor by width.
// The cursor does not move when the read fails.
func (r *Reader) Read(width uint8) (uint64, error) {
	v, err := ReadBits(r.data, r.offset, width)
	if err != nil {
		return 0, err
	}
	r.offset += uint64(width)

	return v, nil
}

// Offset returns the current bit offset.
func (r *Reader) Offset() uint64 {
	return r.offset
}

// Seek moves the cursor to bitOffset.
func (r *Reader) Seek(bitOffset uint64) {
	r.offset = bitOffset
}

// Remaining returns the number of bits between the cursor and the end of data.
func (r *Reader) Remaining() uint64 {
	total := uint64(len(r.data)) * 8
	if r.offset >= total {
		return 0
	}

	return total - r.offset
}
