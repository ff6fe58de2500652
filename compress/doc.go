// Package compress provides compression and decompression codecs for packed
// JSON document payloads.
//
// Packed documents frame a compact-serialized JSON text behind a small
// binary header; this package implements the payload compression stage.
// JSON text compresses well under every supported algorithm because of its
// repeated keys and structural punctuation.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs are selected by format.CompressionType through GetCodec or
// CreateCodec.
//
// # Supported Algorithms
//
//   - None: no compression; use when CPU matters more than size or the
//     payload is tiny.
//   - Zstd: best compression ratio; the default for packed documents.
//   - S2: balanced compression and speed.
//   - LZ4: fastest decompression, moderate compression.
//
// All codecs are stateless values safe for concurrent use; internal
// encoder/decoder state is pooled per operation.
package compress
