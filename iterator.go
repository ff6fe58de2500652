package jsontree

import (
	"iter"
)

// ArrayIterator is a bidirectional cursor over an array value.
//
// The cursor starts before the first element; Next advances and reports
// whether the new position is in range, so the scanning loop reads
//
//	it, _ := arr.Iter()
//	for it.Next() {
//	    elem := it.Value()
//	    ...
//	}
//
// The iterator borrows the array's storage: it stays valid while the array
// handle it came from is alive and the array is not structurally modified.
type ArrayIterator struct {
	cell *cell
	idx  int
}

// Iter returns a cursor positioned before the first element.
func (v *Value) Iter() (ArrayIterator, error) {
	c, err := v.arrayCell()
	if err != nil {
		return ArrayIterator{}, err
	}

	return ArrayIterator{cell: c, idx: -1}, nil
}

// IterAt returns a cursor positioned on element i.
func (v *Value) IterAt(i int) (ArrayIterator, error) {
	c, err := v.arrayCell()
	if err != nil {
		return ArrayIterator{}, err
	}
	if i < 0 || i >= len(c.arr) {
		return ArrayIterator{}, boundsError(i, len(c.arr))
	}

	return ArrayIterator{cell: c, idx: i}, nil
}

// Next moves the cursor forward one element and reports whether the new
// position is in range.
func (it *ArrayIterator) Next() bool {
	if it.cell == nil {
		return false
	}
	if it.idx < len(it.cell.arr) {
		it.idx++
	}

	return it.idx < len(it.cell.arr)
}

// Prev moves the cursor backward one element and reports whether the new
// position is in range.
func (it *ArrayIterator) Prev() bool {
	if it.cell == nil {
		return false
	}
	if it.idx >= 0 {
		it.idx--
	}

	return it.idx >= 0 && it.idx < len(it.cell.arr)
}

// Index returns the cursor position, which is out of range before the first
// and after the last element.
func (it *ArrayIterator) Index() int {
	return it.idx
}

// Value returns an independent copy of the element under the cursor, or an
// invalid Value when the cursor is out of range.
func (it *ArrayIterator) Value() Value {
	if it.cell == nil || it.idx < 0 || it.idx >= len(it.cell.arr) {
		return Value{}
	}

	elem := it.cell.arr[it.idx]
	elem.cell.retain()

	return elem
}

// Equal reports whether two cursors address the same position of the same
// array storage.
func (it *ArrayIterator) Equal(other *ArrayIterator) bool {
	return it.cell == other.cell && it.idx == other.idx
}

// ObjectIterator is a forward-only cursor over an object's members in
// hash-table order. Exhaustion is an explicit state: once Next returns
// false the cursor stays exhausted.
//
// Like ArrayIterator, the cursor borrows the object's storage.
type ObjectIterator struct {
	m    *smartMap
	idx  int
	done bool
}

// Items returns a cursor positioned before the first member.
func (v *Value) Items() (ObjectIterator, error) {
	c, err := v.objectCell()
	if err != nil {
		return ObjectIterator{}, err
	}

	return ObjectIterator{m: c.obj, idx: -1}, nil
}

// Next moves the cursor to the next member and reports whether one exists.
func (it *ObjectIterator) Next() bool {
	if it.m == nil || it.done {
		return false
	}

	next := it.m.nextUsed(it.idx + 1)
	if next < 0 {
		it.done = true
		return false
	}
	it.idx = next

	return true
}

// Done reports whether the cursor has been exhausted.
func (it *ObjectIterator) Done() bool {
	return it.m == nil || it.done
}

// Key returns the key under the cursor, or "" when the cursor is not on a
// member.
func (it *ObjectIterator) Key() string {
	if it.m == nil || it.done || it.idx < 0 {
		return ""
	}

	return it.m.slots[it.idx].key
}

// Value returns an independent copy of the member under the cursor, or an
// invalid Value when the cursor is not on a member.
func (it *ObjectIterator) Value() Value {
	if it.m == nil || it.done || it.idx < 0 {
		return Value{}
	}

	member := it.m.slots[it.idx].val
	member.cell.retain()

	return member
}

// Equal reports whether two cursors address the same position of the same
// object storage.
func (it *ObjectIterator) Equal(other *ObjectIterator) bool {
	return it.m == other.m && it.idx == other.idx && it.done == other.done
}

// All returns an index/element sequence over an array value for use with
// range. Yielded elements are independent copies. Non-array values yield
// nothing.
func (v *Value) All() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		c, err := v.arrayCell()
		if err != nil {
			return
		}
		for i := range c.arr {
			elem := c.arr[i]
			elem.cell.retain()
			if !yield(i, elem) {
				return
			}
		}
	}
}

// Backward returns the reverse sequence of All.
func (v *Value) Backward() iter.Seq2[int, Value] {
	return func(yield func(int, Value) bool) {
		c, err := v.arrayCell()
		if err != nil {
			return
		}
		for i := len(c.arr) - 1; i >= 0; i-- {
			elem := c.arr[i]
			elem.cell.retain()
			if !yield(i, elem) {
				return
			}
		}
	}
}

// Fields returns a key/member sequence over an object value in hash-table
// order. Yielded members are independent copies. Non-object values yield
// nothing.
func (v *Value) Fields() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		c, err := v.objectCell()
		if err != nil {
			return
		}
		for i := range c.obj.slots {
			slot := &c.obj.slots[i]
			if slot.state != slotUsed {
				continue
			}
			member := slot.val
			member.cell.retain()
			if !yield(slot.key, member) {
				return
			}
		}
	}
}

// AllKeys returns the key sequence of Fields.
func (v *Value) AllKeys() iter.Seq[string] {
	return func(yield func(string) bool) {
		c, err := v.objectCell()
		if err != nil {
			return
		}
		for i := range c.obj.slots {
			if c.obj.slots[i].state == slotUsed && !yield(c.obj.slots[i].key) {
				return
			}
		}
	}
}
