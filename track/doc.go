// Package track stores a sequence of packed vector samples as one
// self-describing byte stream.
//
// # Layout
//
//	+--------------------+---------------------------+------------------------+
//	| header (24 bytes)  | clip range (24 bytes,     | payload (PayloadSize)  |
//	|                    | range reduced tracks only)|                        |
//	+--------------------+---------------------------+------------------------+
//
// The header records the format, signedness, byte order, widths, range
// reduction flags, compression, sample count, stored payload size and the
// xxHash64 checksum of the stored payload (see package section).
//
// Byte-aligned formats store one record per sample. Vector3_96, Vector3_72
// and Vector3_Variable store a big-endian bit stream; variable samples take
// exactly X+Y+Z bits each and are not byte aligned.
//
// # Usage
//
//	enc, err := track.NewEncoder(format.Vector3_48,
//	    track.WithRangeReduction(format.RangeReductionTranslations),
//	    track.WithCompression(format.CompressionZstd),
//	)
//	if err != nil {
//	    return err
//	}
//	for _, p := range positions {
//	    if err := enc.Add(p); err != nil {
//	        return err
//	    }
//	}
//	data, err := enc.Finish()
//
//	dec, err := track.NewDecoder(data)
//	if err != nil {
//	    return err
//	}
//	for i, v := range dec.All() {
//	    ...
//	}
package track
