package compress

// ZstdCompressor compresses track payloads with Zstandard.
//
// Zstd gives the best ratio of the built-in codecs on quantized payloads,
// whose high bytes repeat across neighbouring samples. Two implementations
// exist:
//
//	go build ./...                  // pure Go (github.com/klauspost/compress/zstd)
//	go build -tags gozstd ./...     // cgo libzstd (github.com/valyala/gozstd), needs CGO_ENABLED=1
//
// Both produce standard zstd frames, so either build decodes the other's output.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
