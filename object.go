package jsontree

import (
	"fmt"
	"sync"

	"github.com/arloliu/jsontree/errs"
	"github.com/arloliu/jsontree/internal/intern"
)

// Process-wide key interner. Object keys repeat heavily across documents
// (think log records or API payloads), so short keys are deduplicated into
// one backing string each. Guarded by a mutex; the critical section is a
// map lookup.
var (
	keyInternMu    sync.Mutex
	keyInternTable = intern.NewTable()
)

func internKey(key string) string {
	keyInternMu.Lock()
	defer keyInternMu.Unlock()

	return keyInternTable.Intern(key)
}

// objectCell type-checks the handle for object operations.
func (v *Value) objectCell() (*cell, error) {
	if v.cell == nil {
		return nil, errs.ErrInvalidHandle
	}
	if v.cell.kind != TypeObject {
		return nil, typeMismatch(TypeObject, v.cell.kind)
	}

	return v.cell, nil
}

// At returns an independent copy of the member stored under key. Mutating
// the returned value never changes the object; use Member for in-place
// mutation.
//
// Returns:
//   - Value: A copy-on-write copy of the member.
//   - error: ErrInvalidHandle, ErrTypeMismatch, or ErrKeyNotFound.
func (v *Value) At(key string) (Value, error) {
	c, err := v.objectCell()
	if err != nil {
		return Value{}, err
	}

	i := c.obj.lookup(key)
	if i < 0 {
		return Value{}, fmt.Errorf("key %q: %w", key, errs.ErrKeyNotFound)
	}

	member := c.obj.slots[i].val
	member.cell.retain()

	return member, nil
}

// Member returns an aliasing handle to the member under key, inserting a
// null member first if the key is absent. Writes through the returned
// pointer are visible in the object; the object is detached from
// copy-on-write sharing first.
//
// The pointer is valid until the next insertion into the object.
func (v *Value) Member(key string) (*Value, error) {
	if _, err := v.objectCell(); err != nil {
		return nil, err
	}

	v.ensureUnique()

	return v.cell.obj.ref(internKey(key)), nil
}

// Set stores val under key, replacing any existing member. The object holds
// its own reference to val's storage; the caller's handle remains valid and
// independent.
func (v *Value) Set(key string, val Value) error {
	if _, err := v.objectCell(); err != nil {
		return err
	}
	if val.cell == nil {
		return errs.ErrInvalidHandle
	}

	v.ensureUnique()
	val.cell.retain()
	v.cell.obj.put(internKey(key), Value{cell: val.cell})

	return nil
}

// Contains reports whether key is present. False on invalid handles and
// non-object values.
func (v *Value) Contains(key string) bool {
	c, err := v.objectCell()
	if err != nil {
		return false
	}

	return c.obj.lookup(key) >= 0
}

// Remove deletes the member under key, releasing its storage. Reports
// whether the key was present.
func (v *Value) Remove(key string) (bool, error) {
	c, err := v.objectCell()
	if err != nil {
		return false, err
	}
	if c.obj.lookup(key) < 0 {
		return false, nil
	}

	v.ensureUnique()

	return v.cell.obj.delete(key), nil
}

// Keys returns all member keys in the object's iteration order, which is
// hash-table order, not insertion order.
func (v *Value) Keys() ([]string, error) {
	c, err := v.objectCell()
	if err != nil {
		return nil, err
	}

	return c.obj.keys(), nil
}
