package jsontree

import (
	"fmt"

	"github.com/arloliu/jsontree/errs"
)

// Value is the public handle to a JSON value. It always refers to exactly
// one storage cell, except in the invalid state: a zero Value, or one whose
// Release has been called. Invalid handles answer type checks with safe
// defaults and fail every other operation with errs.ErrInvalidHandle.
//
// Plain Go assignment copies the handle, not the value — both handles then
// refer to the same storage, like copying a map. Use Copy for an
// independent copy-on-write snapshot.
type Value struct {
	cell *cell
}

// NewNull creates a null value.
func NewNull() Value {
	return Value{cell: acquireCell()}
}

// NewBool creates a boolean value.
func NewBool(b bool) Value {
	c := acquireCell()
	c.kind = TypeBool
	c.b = b

	return Value{cell: c}
}

// NewNumber creates a number value.
func NewNumber(f float64) Value {
	c := acquireCell()
	c.kind = TypeNumber
	c.num = f

	return Value{cell: c}
}

// NewInt creates a number value from an integer. Numbers are stored as
// float64; integers above 2^53 lose precision.
func NewInt(n int64) Value {
	return NewNumber(float64(n))
}

// NewString creates a string value.
func NewString(s string) Value {
	c := acquireCell()
	c.kind = TypeString
	c.str = s

	return Value{cell: c}
}

// NewArray creates an empty array value.
func NewArray() Value {
	c := acquireCell()
	c.kind = TypeArray
	c.arr = make([]Value, 0, initialArrayCapacity)

	return Value{cell: c}
}

// NewObject creates an empty object value.
func NewObject() Value {
	c := acquireCell()
	c.kind = TypeObject
	c.obj = newSmartMap()

	return Value{cell: c}
}

// Valid reports whether the handle refers to storage. A zero or released
// Value is invalid.
func (v *Value) Valid() bool {
	return v.cell != nil
}

// Kind returns the type of the held value. Never fails; an invalid handle
// reports TypeNull.
func (v *Value) Kind() Type {
	if v.cell == nil {
		return TypeNull
	}

	return v.cell.kind
}

// IsNull reports whether the value is null. False for invalid handles.
func (v *Value) IsNull() bool { return v.cell != nil && v.cell.kind == TypeNull }

// IsBool reports whether the value is a boolean.
func (v *Value) IsBool() bool { return v.cell != nil && v.cell.kind == TypeBool }

// IsNumber reports whether the value is a number.
func (v *Value) IsNumber() bool { return v.cell != nil && v.cell.kind == TypeNumber }

// IsString reports whether the value is a string.
func (v *Value) IsString() bool { return v.cell != nil && v.cell.kind == TypeString }

// IsArray reports whether the value is an array.
func (v *Value) IsArray() bool { return v.cell != nil && v.cell.kind == TypeArray }

// IsObject reports whether the value is an object.
func (v *Value) IsObject() bool { return v.cell != nil && v.cell.kind == TypeObject }

// typeMismatch builds a TypeMismatch error carrying the expected and actual
// types as context.
func typeMismatch(expected, actual Type) error {
	return fmt.Errorf("expected %s, got %s: %w", expected, actual, errs.ErrTypeMismatch)
}

// GetBool returns the boolean payload.
//
// Returns:
//   - bool: The held boolean.
//   - error: ErrInvalidHandle or ErrTypeMismatch.
func (v *Value) GetBool() (bool, error) {
	if v.cell == nil {
		return false, errs.ErrInvalidHandle
	}
	if v.cell.kind != TypeBool {
		return false, typeMismatch(TypeBool, v.cell.kind)
	}

	return v.cell.b, nil
}

// GetNumber returns the number payload as float64.
func (v *Value) GetNumber() (float64, error) {
	if v.cell == nil {
		return 0, errs.ErrInvalidHandle
	}
	if v.cell.kind != TypeNumber {
		return 0, typeMismatch(TypeNumber, v.cell.kind)
	}

	return v.cell.num, nil
}

// GetInt returns the number payload truncated to int64.
func (v *Value) GetInt() (int64, error) {
	f, err := v.GetNumber()
	if err != nil {
		return 0, err
	}

	return int64(f), nil
}

// GetString returns the string payload.
func (v *Value) GetString() (string, error) {
	if v.cell == nil {
		return "", errs.ErrInvalidHandle
	}
	if v.cell.kind != TypeString {
		return "", typeMismatch(TypeString, v.cell.kind)
	}

	return v.cell.str, nil
}

// SetNull replaces the value with null.
func (v *Value) SetNull() error {
	if v.cell == nil {
		return errs.ErrInvalidHandle
	}
	v.detachForOverwrite()
	v.cell.kind = TypeNull

	return nil
}

// SetBool replaces the value with a boolean.
func (v *Value) SetBool(b bool) error {
	if v.cell == nil {
		return errs.ErrInvalidHandle
	}
	v.detachForOverwrite()
	v.cell.kind = TypeBool
	v.cell.b = b

	return nil
}

// SetNumber replaces the value with a number.
func (v *Value) SetNumber(f float64) error {
	if v.cell == nil {
		return errs.ErrInvalidHandle
	}
	v.detachForOverwrite()
	v.cell.kind = TypeNumber
	v.cell.num = f

	return nil
}

// SetInt replaces the value with an integer number.
func (v *Value) SetInt(n int64) error {
	return v.SetNumber(float64(n))
}

// SetString replaces the value with a string.
func (v *Value) SetString(s string) error {
	if v.cell == nil {
		return errs.ErrInvalidHandle
	}
	v.detachForOverwrite()
	v.cell.kind = TypeString
	v.cell.str = s

	return nil
}

// SetArray replaces the value with an empty array.
func (v *Value) SetArray() error {
	if v.cell == nil {
		return errs.ErrInvalidHandle
	}
	v.detachForOverwrite()
	v.cell.kind = TypeArray
	v.cell.arr = make([]Value, 0, initialArrayCapacity)

	return nil
}

// SetObject replaces the value with an empty object.
func (v *Value) SetObject() error {
	if v.cell == nil {
		return errs.ErrInvalidHandle
	}
	v.detachForOverwrite()
	v.cell.kind = TypeObject
	v.cell.obj = newSmartMap()

	return nil
}

// Copy returns an independent copy-on-write copy of the value. The copy
// shares storage with v until either side is mutated; the copy is O(1)
// regardless of document size. Copying an invalid handle yields an invalid
// handle.
func (v *Value) Copy() Value {
	if v.cell == nil {
		return Value{}
	}
	v.cell.retain()

	return Value{cell: v.cell}
}

// Release drops the handle's reference to its storage, leaving the handle
// invalid. When the last reference is dropped, the storage shells of the
// exclusively owned subtree return to the internal free list.
//
// Release is optional: handles dropped without it are reclaimed by the
// garbage collector, the free list just misses the reuse.
func (v *Value) Release() {
	if v.cell == nil {
		return
	}
	release(v.cell)
	v.cell = nil
}

// Len returns the element count of an array or member count of an object,
// and 0 for every other kind (including invalid handles).
func (v *Value) Len() int {
	if v.cell == nil {
		return 0
	}
	switch v.cell.kind {
	case TypeArray:
		return len(v.cell.arr)
	case TypeObject:
		return v.cell.obj.len()
	default:
		return 0
	}
}

// Reserve pre-sizes an array or object for n elements. Arrays reserve
// exact capacity; objects round up to the container's capacity tiers. On
// any other kind Reserve does nothing.
func (v *Value) Reserve(n int) error {
	if v.cell == nil {
		return errs.ErrInvalidHandle
	}

	switch v.cell.kind {
	case TypeArray:
		v.ensureUnique()
		c := v.cell
		if n > cap(c.arr) {
			na := make([]Value, len(c.arr), n)
			copy(na, c.arr)
			c.arr = na
		}
	case TypeObject:
		v.ensureUnique()
		v.cell.obj.smartReserve(n)
	}

	return nil
}

// Equal reports deep structural equality. Object member order is ignored.
// Invalid handles compare equal only to other invalid handles; a nil other
// counts as an invalid handle. Comparing cyclic values is caller error and
// does not terminate.
func (v *Value) Equal(other *Value) bool {
	if other == nil {
		return v.cell == nil
	}
	if v.cell == nil || other.cell == nil {
		return v.cell == other.cell
	}

	return equalCells(v.cell, other.cell)
}

func equalCells(a, b *cell) bool {
	if a == b {
		return true
	}
	if a.kind != b.kind {
		return false
	}

	switch a.kind {
	case TypeNull:
		return true
	case TypeBool:
		return a.b == b.b
	case TypeNumber:
		return a.num == b.num
	case TypeString:
		return a.str == b.str
	case TypeArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !equalCells(a.arr[i].cell, b.arr[i].cell) {
				return false
			}
		}

		return true
	case TypeObject:
		if a.obj.len() != b.obj.len() {
			return false
		}
		for i := range a.obj.slots {
			slot := &a.obj.slots[i]
			if slot.state != slotUsed {
				continue
			}
			j := b.obj.lookup(slot.key)
			if j < 0 || !equalCells(slot.val.cell, b.obj.slots[j].val.cell) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

// Scalar is the set of Go types the generic accessors convert to and from.
type Scalar interface {
	bool | int | int32 | int64 | uint | uint32 | uint64 | float32 | float64 | string
}

// Get extracts the value as T. Number kinds convert freely between the
// numeric Scalar types (integer targets truncate); bool and string require
// the exact kind.
//
// Returns:
//   - T: The extracted value.
//   - error: ErrInvalidHandle or ErrTypeMismatch.
func Get[T Scalar](v *Value) (T, error) {
	var out T
	if v == nil || v.cell == nil {
		return out, errs.ErrInvalidHandle
	}

	switch p := any(&out).(type) {
	case *bool:
		b, err := v.GetBool()
		if err != nil {
			return out, err
		}
		*p = b
	case *string:
		s, err := v.GetString()
		if err != nil {
			return out, err
		}
		*p = s
	case *float64:
		f, err := v.GetNumber()
		if err != nil {
			return out, err
		}
		*p = f
	case *float32:
		f, err := v.GetNumber()
		if err != nil {
			return out, err
		}
		*p = float32(f)
	case *int:
		n, err := v.GetInt()
		if err != nil {
			return out, err
		}
		*p = int(n)
	case *int32:
		n, err := v.GetInt()
		if err != nil {
			return out, err
		}
		*p = int32(n)
	case *int64:
		n, err := v.GetInt()
		if err != nil {
			return out, err
		}
		*p = n
	case *uint:
		n, err := v.GetInt()
		if err != nil {
			return out, err
		}
		*p = uint(n)
	case *uint32:
		n, err := v.GetInt()
		if err != nil {
			return out, err
		}
		*p = uint32(n)
	case *uint64:
		n, err := v.GetInt()
		if err != nil {
			return out, err
		}
		*p = uint64(n)
	}

	return out, nil
}

// TryGet extracts the value as T, reporting false instead of failing on an
// invalid handle or type mismatch.
func TryGet[T Scalar](v *Value) (T, bool) {
	out, err := Get[T](v)
	if err != nil {
		var zero T
		return zero, false
	}

	return out, true
}
