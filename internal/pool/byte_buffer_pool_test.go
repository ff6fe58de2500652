package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBufferWrites(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWriteString("abc")
	bb.MustWriteByte(',')
	bb.MustWrite([]byte("def"))

	require.Equal(t, "abc,def", bb.String())
	require.Equal(t, 7, bb.Len())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Empty(t, bb.String())
}

func TestByteBufferGrow(t *testing.T) {
	bb := NewByteBuffer(8)
	capBefore := bb.Cap()

	bb.Grow(1024)
	require.GreaterOrEqual(t, bb.Cap(), 1024)
	require.Greater(t, bb.Cap(), capBefore)
	require.Equal(t, 0, bb.Len())
}

func TestByteBufferGrowKeepsContent(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.MustWriteString("keep")
	bb.Grow(4096)
	require.Equal(t, "keep", bb.String())
}

func TestByteBufferPoolReuse(t *testing.T) {
	p := NewByteBufferPool(32, 1024)

	bb := p.Get()
	bb.MustWriteString("scratch")
	p.Put(bb)

	// a pooled buffer comes back reset
	again := p.Get()
	require.Equal(t, 0, again.Len())
	p.Put(again)
}

func TestEncodeBufferDefaults(t *testing.T) {
	bb := GetEncodeBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())
	bb.MustWriteString("x")
	PutEncodeBuffer(bb)
}
