package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type shell struct {
	id int
}

func TestFreeListWarmup(t *testing.T) {
	created := 0
	l := NewFreeList(10, 3, func() *shell {
		created++
		return &shell{id: created}
	})

	// nothing is allocated before first use
	require.Equal(t, 0, created)
	require.Equal(t, 0, l.Len())

	first := l.Acquire()
	require.NotNil(t, first)
	require.Equal(t, 3, created)
	require.Equal(t, 2, l.Len())
}

func TestFreeListLIFO(t *testing.T) {
	l := NewFreeList(10, 0, func() *shell { return &shell{} })

	s := l.Acquire()
	l.Release(s)
	require.Same(t, s, l.Acquire())
}

func TestFreeListCapacityBound(t *testing.T) {
	l := NewFreeList(4, 0, func() *shell { return &shell{} })
	require.Equal(t, 4, l.Capacity())

	for i := 0; i < 10; i++ {
		l.Release(&shell{id: i})
	}
	require.Equal(t, 4, l.Len())
}

func TestFreeListExhaustion(t *testing.T) {
	l := NewFreeList(10, 2, func() *shell { return &shell{} })

	// drain the warmup batch, then keep acquiring past it
	a := l.Acquire()
	b := l.Acquire()
	c := l.Acquire()
	require.Equal(t, 0, l.Len())
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)
	require.NotSame(t, a, b)
	require.NotSame(t, b, c)
}

func TestFreeListWarmupClamp(t *testing.T) {
	created := 0
	l := NewFreeList(2, 5, func() *shell {
		created++
		return &shell{}
	})

	l.Acquire()
	// warmup never exceeds capacity
	require.Equal(t, 2, created)
	require.Equal(t, 1, l.Len())
}
