package jsontree

import (
	"fmt"

	"github.com/arloliu/jsontree/errs"
)

// Array growth policy: double the capacity with a 32-slot floor, but never
// extend by more than 8192 slots in one step so huge arrays grow linearly
// instead of overshooting.
const (
	minArrayGrowth     = 32
	maxArrayGrowthStep = 8192
)

func grownCapacity(current int) int {
	next := current * 2
	if next < minArrayGrowth {
		next = minArrayGrowth
	}
	if next-current > maxArrayGrowthStep {
		next = current + maxArrayGrowthStep
	}

	return next
}

// arrayCell type-checks the handle for array operations.
func (v *Value) arrayCell() (*cell, error) {
	if v.cell == nil {
		return nil, errs.ErrInvalidHandle
	}
	if v.cell.kind != TypeArray {
		return nil, typeMismatch(TypeArray, v.cell.kind)
	}

	return v.cell, nil
}

func boundsError(i, n int) error {
	return fmt.Errorf("index %d out of range [0, %d): %w", i, n, errs.ErrIndexOutOfRange)
}

// PushBack appends val to the array. The array holds its own reference to
// val's storage; the caller's handle remains valid and independent.
func (v *Value) PushBack(val Value) error {
	if _, err := v.arrayCell(); err != nil {
		return err
	}
	if val.cell == nil {
		return errs.ErrInvalidHandle
	}

	v.ensureUnique()
	c := v.cell
	if len(c.arr) == cap(c.arr) {
		na := make([]Value, len(c.arr), grownCapacity(cap(c.arr)))
		copy(na, c.arr)
		c.arr = na
	}

	val.cell.retain()
	c.arr = append(c.arr, Value{cell: val.cell})

	return nil
}

// PopBack removes the last element, releasing its storage.
//
// Returns:
//   - error: ErrInvalidHandle, ErrTypeMismatch, or ErrEmptyArray.
func (v *Value) PopBack() error {
	c, err := v.arrayCell()
	if err != nil {
		return err
	}
	if len(c.arr) == 0 {
		return errs.ErrEmptyArray
	}

	v.ensureUnique()
	c = v.cell
	last := len(c.arr) - 1
	release(c.arr[last].cell)
	c.arr[last] = Value{}
	c.arr = c.arr[:last]

	return nil
}

// Index returns an aliasing handle to element i for in-place mutation:
// writes through the returned pointer are visible in the array. The array is
// detached from any copy-on-write sharing first, so the write never leaks
// into copies.
//
// The pointer is valid until the array grows or the element is removed.
func (v *Value) Index(i int) (*Value, error) {
	c, err := v.arrayCell()
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(c.arr) {
		return nil, boundsError(i, len(c.arr))
	}

	v.ensureUnique()

	return &v.cell.arr[i], nil
}

// SetIndex replaces element i with val, releasing the old element. Like
// PushBack, the array takes its own reference to val's storage.
func (v *Value) SetIndex(i int, val Value) error {
	c, err := v.arrayCell()
	if err != nil {
		return err
	}
	if i < 0 || i >= len(c.arr) {
		return boundsError(i, len(c.arr))
	}
	if val.cell == nil {
		return errs.ErrInvalidHandle
	}

	v.ensureUnique()
	c = v.cell
	val.cell.retain()
	release(c.arr[i].cell)
	c.arr[i] = Value{cell: val.cell}

	return nil
}
