package jsontree

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsontree/errs"
)

func TestObjectSetAt(t *testing.T) {
	obj := NewObject()
	defer obj.Release()

	v := NewNumber(42)
	require.NoError(t, obj.Set("answer", v))
	v.Release()

	got, err := obj.At("answer")
	require.NoError(t, err)
	defer got.Release()
	n, err := got.GetInt()
	require.NoError(t, err)
	require.Equal(t, int64(42), n)

	require.True(t, obj.Contains("answer"))
	require.False(t, obj.Contains("question"))
	require.Equal(t, 1, obj.Len())
}

func TestObjectAtMissing(t *testing.T) {
	obj := NewObject()
	defer obj.Release()

	_, err := obj.At("absent")
	require.ErrorIs(t, err, errs.ErrKeyNotFound)
}

func TestObjectLastWriteWins(t *testing.T) {
	obj := NewObject()
	defer obj.Release()

	require.NoError(t, obj.Set("k", NewNumber(1)))
	require.NoError(t, obj.Set("k", NewNumber(2)))
	require.Equal(t, 1, obj.Len())

	got, err := obj.At("k")
	require.NoError(t, err)
	defer got.Release()
	n, err := got.GetInt()
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}

func TestObjectMember(t *testing.T) {
	obj := NewObject()
	defer obj.Release()

	// absent key inserts a null member
	m, err := obj.Member("fresh")
	require.NoError(t, err)
	require.True(t, m.IsNull())
	require.Equal(t, 1, obj.Len())

	// writes through the alias are visible in the object
	require.NoError(t, m.SetString("written"))
	got, err := obj.At("fresh")
	require.NoError(t, err)
	defer got.Release()
	s, err := got.GetString()
	require.NoError(t, err)
	require.Equal(t, "written", s)
}

func TestObjectRemove(t *testing.T) {
	obj := NewObject()
	defer obj.Release()
	require.NoError(t, obj.Set("a", NewNumber(1)))
	require.NoError(t, obj.Set("b", NewNumber(2)))

	removed, err := obj.Remove("a")
	require.NoError(t, err)
	require.True(t, removed)
	require.False(t, obj.Contains("a"))
	require.True(t, obj.Contains("b"))
	require.Equal(t, 1, obj.Len())

	removed, err = obj.Remove("a")
	require.NoError(t, err)
	require.False(t, removed)
}

func TestObjectKeys(t *testing.T) {
	obj := NewObject()
	defer obj.Release()

	want := []string{"one", "two", "three"}
	for _, k := range want {
		require.NoError(t, obj.Set(k, NewNull()))
	}

	keys, err := obj.Keys()
	require.NoError(t, err)
	require.ElementsMatch(t, want, keys)
}

func TestObjectManyKeys(t *testing.T) {
	obj := NewObject()
	defer obj.Release()

	const count = 200
	for i := 0; i < count; i++ {
		v := NewNumber(float64(i))
		require.NoError(t, obj.Set(fmt.Sprintf("key-%03d", i), v))
		v.Release()
	}
	require.Equal(t, count, obj.Len())

	for i := 0; i < count; i++ {
		got, err := obj.At(fmt.Sprintf("key-%03d", i))
		require.NoError(t, err)
		n, err := got.GetInt()
		require.NoError(t, err)
		require.Equal(t, int64(i), n)
		got.Release()
	}
}

func TestObjectTypeGuards(t *testing.T) {
	v := NewNumber(1)
	defer v.Release()

	require.ErrorIs(t, v.Set("k", NewNull()), errs.ErrTypeMismatch)
	_, err := v.At("k")
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	_, err = v.Member("k")
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	_, err = v.Remove("k")
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	_, err = v.Keys()
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	require.False(t, v.Contains("k"))

	obj := NewObject()
	defer obj.Release()
	require.ErrorIs(t, obj.Set("k", Value{}), errs.ErrInvalidHandle)
}

func TestObjectCopyOnWrite(t *testing.T) {
	obj := NewObject()
	defer obj.Release()
	require.NoError(t, obj.Set("shared", NewNumber(1)))

	cp := obj.Copy()
	defer cp.Release()
	require.NoError(t, cp.Set("extra", NewNumber(2)))

	require.Equal(t, 1, obj.Len())
	require.Equal(t, 2, cp.Len())
	require.False(t, obj.Contains("extra"))
}
