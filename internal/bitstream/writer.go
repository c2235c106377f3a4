package bitstream

import "encoding/binary"

// Writer accumulates fields MSB-first into a big-endian byte stream.
//
// Bits collect in a 64-bit buffer that is flushed as one big-endian word
// whenever it fills up, so fields may straddle word boundaries freely.
type Writer struct {
	buf      []byte
	bitBuf   uint64 // pending bits, right-aligned
	bitCount int    // number of valid bits in bitBuf
}

// NewWriter creates a Writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// WriteBits appends the low numBits bits of value. numBits must be in [0, 64].
func (w *Writer) WriteBits(value uint64, numBits int) {
	if numBits < 0 || numBits > 64 {
		panic("bitstream: numBits must be in [0, 64]")
	}
	if numBits == 0 {
		return
	}
	if numBits < 64 {
		value &= (1 << numBits) - 1
	}

	available := 64 - w.bitCount
	if numBits <= available {
		w.bitBuf = (w.bitBuf << numBits) | value
		w.bitCount += numBits
		if w.bitCount == 64 {
			w.flush()
		}

		return
	}

	// split: high part completes the current word, low part starts the next
	lowBits := numBits - available
	w.bitBuf = (w.bitBuf << available) | (value >> lowBits)
	w.bitCount = 64
	w.flush()

	w.bitBuf = value & ((1 << lowBits) - 1)
	w.bitCount = lowBits
}

func (w *Writer) flush() {
	w.buf = binary.BigEndian.AppendUint64(w.buf, w.bitBuf)
	w.bitBuf = 0
	w.bitCount = 0
}

// BitLen returns the number of bits written.
func (w *Writer) BitLen() uint64 {
	return uint64(len(w.buf))*8 + uint64(w.bitCount) //nolint:gosec // bitCount is 0..63
}

// Len returns the number of bytes Bytes would return.
func (w *Writer) Len() int {
	return len(w.buf) + (w.bitCount+7)/8
}

// Bytes returns the stream with the final partial byte zero-padded.
// The Writer stays usable; later writes continue at BitLen.
func (w *Writer) Bytes() []byte {
	return w.AppendTo(nil)
}

// AppendTo appends the stream to dst and returns the extended slice.
func (w *Writer) AppendTo(dst []byte) []byte {
	dst = append(dst, w.buf...)
	if w.bitCount == 0 {
		return dst
	}

	aligned := w.bitBuf << (64 - w.bitCount)
	for i := range (w.bitCount + 7) / 8 {
		dst = append(dst, byte(aligned>>(56-8*i)))
	}

	return dst
}

// Reset discards all written bits and keeps the allocated buffer.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.bitBuf = 0
	w.bitCount = 0
}
