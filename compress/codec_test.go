package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsontree/format"
)

var codecPayload = bytes.Repeat([]byte(`{"key":"value","n":123,"flag":true}`), 64)

func TestCodecRoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := CreateCodec(typ, "test")
			require.NoError(t, err)

			compressed, err := codec.Compress(codecPayload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, codecPayload, restored)
		})
	}
}

func TestCodecCompressesRepetitiveData(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := CreateCodec(typ, "test")
			require.NoError(t, err)

			compressed, err := codec.Compress(codecPayload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(codecPayload))
		})
	}
}

func TestCodecEmptyInput(t *testing.T) {
	for typ := range builtinCodecs {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			out, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, out)

			out, err = codec.Decompress(nil)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCreateCodecInvalidType(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0xAB), "test")
	require.Error(t, err)

	_, err = GetCodec(format.CompressionType(0xAB))
	require.Error(t, err)
}

func TestDecompressCorruptedInput(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
	}
	for _, typ := range types {
		t.Run(typ.String(), func(t *testing.T) {
			codec, err := GetCodec(typ)
			require.NoError(t, err)

			_, err = codec.Decompress([]byte("definitely not compressed data"))
			require.Error(t, err)
		})
	}
}
