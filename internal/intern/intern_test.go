package intern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInternDedup(t *testing.T) {
	tbl := NewTable()

	a := tbl.Intern("name")
	b := tbl.Intern("name")
	require.Equal(t, a, b)
	require.Equal(t, 1, tbl.Len())

	hits, misses := tbl.Stats()
	require.Equal(t, uint64(1), hits)
	require.Equal(t, uint64(1), misses)
}

func TestInternLongKeyPassThrough(t *testing.T) {
	tbl := NewTable()

	long := strings.Repeat("k", MaxKeyLen+1)
	got := tbl.Intern(long)
	require.Equal(t, long, got)
	// long keys are never cached
	require.Equal(t, 0, tbl.Len())

	hits, misses := tbl.Stats()
	require.Zero(t, hits)
	require.Zero(t, misses)
}

func TestInternBoundary(t *testing.T) {
	tbl := NewTable()

	exact := strings.Repeat("k", MaxKeyLen)
	tbl.Intern(exact)
	require.Equal(t, 1, tbl.Len())
}

func TestInternReset(t *testing.T) {
	tbl := NewTable()
	tbl.Intern("a")
	tbl.Intern("a")
	tbl.Reset()

	require.Equal(t, 0, tbl.Len())
	hits, misses := tbl.Stats()
	require.Zero(t, hits)
	require.Zero(t, misses)
}
