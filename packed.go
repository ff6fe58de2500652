package jsontree

import (
	"fmt"

	"github.com/arloliu/jsontree/compress"
	"github.com/arloliu/jsontree/endian"
	"github.com/arloliu/jsontree/errs"
	"github.com/arloliu/jsontree/format"
	"github.com/arloliu/jsontree/internal/options"
)

// Packed document framing:
//
//	magic(2) | version(1) | codec(1) | payloadLen(4) | payload
//
// All header fields are little-endian. The payload is the compact JSON text
// of the document, compressed with the codec named in the header.
const (
	packedMagic   uint16 = 0x4A54 // "JT"
	packedVersion byte   = 1
	packedHdrSize        = 8
)

var packedEngine = endian.GetLittleEndianEngine()

type packConfig struct {
	compression format.CompressionType
}

// PackOption configures Pack behavior.
type PackOption = options.Option[*packConfig]

// WithPackCompression selects the payload compression codec. The default is
// Zstd.
func WithPackCompression(typ format.CompressionType) PackOption {
	return options.New(func(cfg *packConfig) error {
		if !typ.IsValid() {
			return fmt.Errorf("compression type %s: %w", typ, errs.ErrUnsupportedCodec)
		}
		cfg.compression = typ

		return nil
	})
}

// Pack serializes the value to compact JSON and frames it as a compressed
// packed document. Unpack reverses it.
//
// Parameters:
//   - v: The value to pack.
//   - opts: Optional settings (WithPackCompression).
//
// Returns:
//   - []byte: The framed document.
//   - error: ErrInvalidHandle, ErrCycleDetected, ErrUnsupportedCodec, or a
//     codec failure.
func Pack(v *Value, opts ...PackOption) ([]byte, error) {
	cfg := packConfig{compression: format.CompressionZstd}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	text, err := v.ToString(false)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "packed document")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err, errs.ErrUnsupportedCodec)
	}

	payload, err := codec.Compress([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("compress packed payload: %w", err)
	}

	out := make([]byte, 0, packedHdrSize+len(payload))
	out = packedEngine.AppendUint16(out, packedMagic)
	out = append(out, packedVersion, byte(cfg.compression))
	out = packedEngine.AppendUint32(out, uint32(len(payload)))
	out = append(out, payload...)

	return out, nil
}

// Unpack validates a packed document header, decompresses the payload, and
// parses it.
//
// Returns:
//   - Value: The decoded document, owned by the caller.
//   - error: ErrInvalidPackedData on framing errors, ErrUnsupportedCodec on
//     an unknown codec byte, or a decompression/parse failure.
func Unpack(data []byte, opts ...ParseOption) (Value, error) {
	if len(data) < packedHdrSize {
		return Value{}, fmt.Errorf("packed document shorter than header: %w", errs.ErrInvalidPackedData)
	}
	if packedEngine.Uint16(data[0:2]) != packedMagic {
		return Value{}, fmt.Errorf("bad packed magic: %w", errs.ErrInvalidPackedData)
	}
	if data[2] != packedVersion {
		return Value{}, fmt.Errorf("unsupported packed version %d: %w", data[2], errs.ErrInvalidPackedData)
	}

	typ := format.CompressionType(data[3])
	if !typ.IsValid() {
		return Value{}, fmt.Errorf("codec byte 0x%02x: %w", data[3], errs.ErrUnsupportedCodec)
	}

	payloadLen := int(packedEngine.Uint32(data[4:8]))
	if payloadLen != len(data)-packedHdrSize {
		return Value{}, fmt.Errorf("payload length %d does not match frame: %w",
			payloadLen, errs.ErrInvalidPackedData)
	}

	codec, err := compress.CreateCodec(typ, "packed document")
	if err != nil {
		return Value{}, fmt.Errorf("%s: %w", err, errs.ErrUnsupportedCodec)
	}

	text, err := codec.Decompress(data[packedHdrSize:])
	if err != nil {
		return Value{}, fmt.Errorf("decompress packed payload: %w", err)
	}

	return Parse(string(text), opts...)
}
