// Package compress provides the payload codecs of the track stream.
//
// A track payload is the concatenation of packed samples. Quantized formats
// leave a lot of redundancy between neighbouring samples (slowly moving
// channels share their high bits), which general purpose block compressors
// pick up well.
//
// # Available Codecs
//
//	Type              Implementation                       Notes
//	CompressionNone   NoOpCompressor                       returns the input slice
//	CompressionZstd   ZstdCompressor (klauspost or gozstd) best ratio
//	CompressionS2     S2Compressor                         fastest
//	CompressionLZ4    LZ4Compressor                        raw LZ4 blocks
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	compressed, err := codec.Compress(payload)
//
// GetCodec returns shared instances; CreateCodec returns a fresh one. Both
// report unknown types with errs.ErrInvalidCompression.
//
// # Thread Safety
//
// All built-in codecs are stateless values backed by sync.Pool and are safe
// for concurrent use.
package compress
