// Package errs defines the sentinel errors shared by all vecpack packages.
//
// Every precondition violation wraps ErrInvalidArgument, so callers can
// classify programmer errors with a single check:
//
//	if errors.Is(err, errs.ErrInvalidArgument) {
//	    // caller bug: bad bit width, out-of-domain value, wrong format...
//	}
//
// The codec performs no I/O, so none of these errors are transient.
package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the class of all caller contract violations.
var ErrInvalidArgument = errors.New("invalid argument")

// Precondition violations. All of them wrap ErrInvalidArgument.
var (
	ErrInvalidBitWidth    = fmt.Errorf("%w: bit width out of range", ErrInvalidArgument)
	ErrValueOutOfRange    = fmt.Errorf("%w: value outside normalized domain", ErrInvalidArgument)
	ErrInvalidWidthSum    = fmt.Errorf("%w: invalid sum of component bit widths", ErrInvalidArgument)
	ErrVariableFormatSize = fmt.Errorf("%w: variable format has no fixed size", ErrInvalidArgument)
	ErrInvalidFormat      = fmt.Errorf("%w: invalid or unsupported vector format", ErrInvalidArgument)
	ErrInvalidCompression = fmt.Errorf("%w: invalid compression type", ErrInvalidArgument)
	ErrInvalidOption      = fmt.Errorf("%w: invalid option", ErrInvalidArgument)
)

// Buffer and container errors.
var (
	ErrBufferTooSmall     = errors.New("buffer too small")
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrChecksumMismatch   = errors.New("payload checksum mismatch")
	ErrPayloadSize        = errors.New("payload size does not match header")
	ErrEncoderFinished    = errors.New("encoder already finished")
	ErrIndexOutOfRange    = errors.New("sample index out of range")
)
