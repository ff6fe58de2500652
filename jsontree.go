// Package jsontree provides an in-memory JSON document model with
// copy-on-write sharing.
//
// A Value is a lightweight handle to reference-counted storage. Copying a
// value with Copy is O(1); the underlying storage is shared until one of
// the copies is mutated, at which point the mutated side clones the touched
// node (and only that node — nested children stay shared until they are
// mutated in turn). This makes passing large documents around essentially
// free while keeping mutation semantics of independent values.
//
// # Basic Usage
//
// Building and serializing a document:
//
//	doc := jsontree.NewObject()
//	_ = doc.Set("name", jsontree.NewString("sensor-1"))
//	_ = doc.Set("enabled", jsontree.NewBool(true))
//
//	readings := jsontree.NewArray()
//	_ = readings.PushBack(jsontree.NewNumber(1.5))
//	_ = readings.PushBack(jsontree.NewNumber(2.5))
//	_ = doc.Set("readings", readings)
//
//	text, _ := doc.ToString(false) // {"name":"sensor-1",...}
//
// Parsing:
//
//	doc, err := jsontree.Parse(`{"x":42,"y":true}`)
//	if err != nil {
//	    var perr *errs.ParseError
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Line, perr.Column)
//	    }
//	}
//	x, _ := doc.At("x")
//	n, _ := x.GetInt() // 42
//
// Iterating:
//
//	for i, elem := range arr.All()       { ... }
//	for key, val := range obj.Fields()   { ... }
//
// # Ownership
//
// Values returned by this package (factories, Parse, At, Key, iteration)
// each own one reference to their storage. Release returns storage shells
// to an internal free list for reuse; it is optional — dropping a handle
// without Release simply leaves reclamation to the garbage collector.
// Mutating a returned value never changes the tree it was read from; to
// mutate in place, use the aliasing accessors Index and Member.
//
// # Concurrency
//
// Concurrently mutating the same value tree from multiple goroutines is
// undefined and must be serialized by the caller. Concurrent pure reads of
// a tree nobody mutates are safe: sharing uses atomic reference counts and
// reads never alter shared state.
package jsontree

// Type identifies the kind of JSON value a storage cell holds.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Bool"
	case TypeNumber:
		return "Number"
	case TypeString:
		return "String"
	case TypeArray:
		return "Array"
	case TypeObject:
		return "Object"
	default:
		return "Unknown"
	}
}
