package jsontree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellShellReuse(t *testing.T) {
	v := NewNumber(1)
	shell := v.cell
	v.Release()

	// the free list is LIFO, so the next acquire hands the shell back
	n := NewNull()
	defer n.Release()
	require.Same(t, shell, n.cell)
	require.Equal(t, TypeNull, n.cell.kind)
	require.Equal(t, float64(0), n.cell.num)
}

func TestReleaseFreesSubtree(t *testing.T) {
	arr := NewArray()
	child := NewString("leaf")
	require.NoError(t, arr.PushBack(child))

	// the array holds its own reference; the caller's release leaves it alive
	child.Release()
	elem, err := arr.Index(0)
	require.NoError(t, err)
	s, err := elem.GetString()
	require.NoError(t, err)
	require.Equal(t, "leaf", s)

	arr.Release()
	require.False(t, arr.Valid())
}

func TestSharedChildSurvivesParentRelease(t *testing.T) {
	arr := NewArray()
	child := NewString("kept")
	require.NoError(t, arr.PushBack(child))

	arr.Release()

	// the caller's handle still owns one reference
	s, err := child.GetString()
	require.NoError(t, err)
	require.Equal(t, "kept", s)
	child.Release()
}

func TestEnsureUniqueDefersDeepCopy(t *testing.T) {
	doc := NewObject()
	defer doc.Release()

	inner := NewArray()
	require.NoError(t, inner.PushBack(NewNumber(1)))
	require.NoError(t, doc.Set("inner", inner))
	inner.Release()

	cp := doc.Copy()
	defer cp.Release()

	// mutating the copy's top level clones only that level; the untouched
	// nested array stays shared
	require.NoError(t, cp.Set("other", NewNumber(2)))
	require.NotSame(t, doc.cell, cp.cell)

	di := doc.cell.obj.lookup("inner")
	ci := cp.cell.obj.lookup("inner")
	require.Same(t, doc.cell.obj.slots[di].val.cell, cp.cell.obj.slots[ci].val.cell)
}

func TestDetachForOverwriteSharedCell(t *testing.T) {
	a := NewString("before")
	b := a.Copy()
	defer b.Release()

	// overwriting one side swaps in a fresh shell instead of copying the
	// payload it is about to discard
	require.NoError(t, a.SetNumber(1))
	require.NotSame(t, a.cell, b.cell)

	s, err := b.GetString()
	require.NoError(t, err)
	require.Equal(t, "before", s)
	a.Release()
}
