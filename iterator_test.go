package jsontree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/jsontree/errs"
)

func buildNumberArray(t *testing.T, nums ...float64) Value {
	t.Helper()
	arr := NewArray()
	for _, n := range nums {
		v := NewNumber(n)
		require.NoError(t, arr.PushBack(v))
		v.Release()
	}

	return arr
}

func TestArrayIteratorForward(t *testing.T) {
	arr := buildNumberArray(t, 10, 20, 30)
	defer arr.Release()

	it, err := arr.Iter()
	require.NoError(t, err)

	var got []float64
	for it.Next() {
		v := it.Value()
		f, err := v.GetNumber()
		require.NoError(t, err)
		got = append(got, f)
		v.Release()
	}
	require.Equal(t, []float64{10, 20, 30}, got)

	// exhausted cursor stays exhausted
	require.False(t, it.Next())
	past := it.Value()
	require.False(t, past.Valid())
}

func TestArrayIteratorBackward(t *testing.T) {
	arr := buildNumberArray(t, 1, 2, 3)
	defer arr.Release()

	it, err := arr.IterAt(2)
	require.NoError(t, err)

	var got []float64
	for {
		v := it.Value()
		f, err := v.GetNumber()
		require.NoError(t, err)
		got = append(got, f)
		v.Release()
		if !it.Prev() {
			break
		}
	}
	require.Equal(t, []float64{3, 2, 1}, got)
}

func TestArrayIteratorPosition(t *testing.T) {
	arr := buildNumberArray(t, 5, 6)
	defer arr.Release()

	it, err := arr.Iter()
	require.NoError(t, err)
	require.Equal(t, -1, it.Index())
	before := it.Value()
	require.False(t, before.Valid())

	require.True(t, it.Next())
	require.Equal(t, 0, it.Index())

	at, err := arr.IterAt(0)
	require.NoError(t, err)
	require.True(t, it.Equal(&at))

	require.True(t, it.Next())
	require.False(t, it.Equal(&at))

	_, err = arr.IterAt(5)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}

func TestIteratorTypeGuards(t *testing.T) {
	n := NewNumber(1)
	defer n.Release()

	_, err := n.Iter()
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
	_, err = n.Items()
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestObjectIterator(t *testing.T) {
	obj := NewObject()
	defer obj.Release()
	want := map[string]float64{"a": 1, "b": 2, "c": 3}
	for k, n := range want {
		v := NewNumber(n)
		require.NoError(t, obj.Set(k, v))
		v.Release()
	}

	it, err := obj.Items()
	require.NoError(t, err)
	require.False(t, it.Done())

	got := make(map[string]float64)
	for it.Next() {
		v := it.Value()
		f, err := v.GetNumber()
		require.NoError(t, err)
		got[it.Key()] = f
		v.Release()
	}
	require.Equal(t, want, got)

	// explicit exhausted state
	require.True(t, it.Done())
	require.False(t, it.Next())
	require.Empty(t, it.Key())
	exhausted := it.Value()
	require.False(t, exhausted.Valid())
}

func TestObjectIteratorEmpty(t *testing.T) {
	obj := NewObject()
	defer obj.Release()

	it, err := obj.Items()
	require.NoError(t, err)
	require.False(t, it.Next())
	require.True(t, it.Done())
}

func TestAllSequence(t *testing.T) {
	arr := buildNumberArray(t, 7, 8, 9)
	defer arr.Release()

	var idx []int
	var vals []float64
	for i, v := range arr.All() {
		f, err := v.GetNumber()
		require.NoError(t, err)
		idx = append(idx, i)
		vals = append(vals, f)
		v.Release()
	}
	require.Equal(t, []int{0, 1, 2}, idx)
	require.Equal(t, []float64{7, 8, 9}, vals)
}

func TestBackwardSequence(t *testing.T) {
	arr := buildNumberArray(t, 7, 8, 9)
	defer arr.Release()

	var idx []int
	for i, v := range arr.Backward() {
		idx = append(idx, i)
		v.Release()
	}
	require.Equal(t, []int{2, 1, 0}, idx)
}

func TestSequenceEarlyBreak(t *testing.T) {
	arr := buildNumberArray(t, 1, 2, 3, 4)
	defer arr.Release()

	count := 0
	for _, v := range arr.All() {
		v.Release()
		count++
		if count == 2 {
			break
		}
	}
	require.Equal(t, 2, count)
}

func TestFieldsSequence(t *testing.T) {
	obj := NewObject()
	defer obj.Release()
	require.NoError(t, obj.Set("x", NewNumber(1)))
	require.NoError(t, obj.Set("y", NewNumber(2)))

	got := make(map[string]float64)
	for k, v := range obj.Fields() {
		f, err := v.GetNumber()
		require.NoError(t, err)
		got[k] = f
		v.Release()
	}
	require.Equal(t, map[string]float64{"x": 1, "y": 2}, got)
}

func TestAllKeysSequence(t *testing.T) {
	obj := NewObject()
	defer obj.Release()
	require.NoError(t, obj.Set("x", NewNull()))
	require.NoError(t, obj.Set("y", NewNull()))

	var keys []string
	for k := range obj.AllKeys() {
		keys = append(keys, k)
	}
	require.ElementsMatch(t, []string{"x", "y"}, keys)
}

func TestSequencesOnWrongKind(t *testing.T) {
	n := NewNumber(1)
	defer n.Release()

	for range n.All() {
		t.Fatal("All on a non-array must yield nothing")
	}
	for range n.Fields() {
		t.Fatal("Fields on a non-object must yield nothing")
	}
}
