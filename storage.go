package jsontree

import (
	"sync"
	"sync/atomic"

	"github.com/arloliu/jsontree/internal/pool"
)

// Initial capacity for freshly created arrays. Most JSON arrays hold a
// handful of elements; 16 slots avoid the first few reallocations without
// wasting much on tiny arrays.
const initialArrayCapacity = 16

// cell is the reference-counted storage behind a Value handle.
//
// It holds a tagged union: kind selects which payload field is active, and
// exactly one is active at a time. A cell is shared between handles until a
// mutation forces a clone (see Value.ensureUnique).
type cell struct {
	refs atomic.Int32
	kind Type
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  *smartMap
}

// The default shell free list. Go has no thread-local storage, so instead
// of a per-thread pool the process shares one bounded list behind a mutex;
// the critical section is a slice push/pop.
var (
	cellPoolMu sync.Mutex
	cellPool   = pool.NewFreeList(pool.FreeListCapacity, pool.FreeListWarmup, func() *cell {
		return &cell{}
	})
)

// acquireCell takes a shell from the free list and initializes it as an
// exclusively owned null cell.
func acquireCell() *cell {
	cellPoolMu.Lock()
	c := cellPool.Acquire()
	cellPoolMu.Unlock()

	c.refs.Store(1)
	c.kind = TypeNull

	return c
}

// retain adds one reference to the cell.
func (c *cell) retain() {
	c.refs.Add(1)
}

// release drops one reference to the cell. The last release also releases
// all children and returns the shell to the free list.
func release(c *cell) {
	if c == nil {
		return
	}
	if c.refs.Add(-1) != 0 {
		return
	}

	switch c.kind {
	case TypeArray:
		for i := range c.arr {
			release(c.arr[i].cell)
		}
	case TypeObject:
		if c.obj != nil {
			c.obj.releaseAll()
		}
	}

	c.resetPayload()
	cellPoolMu.Lock()
	cellPool.Release(c)
	cellPoolMu.Unlock()
}

// resetPayload clears every payload field so the shell can be reused.
// Children must have been released already.
func (c *cell) resetPayload() {
	c.kind = TypeNull
	c.b = false
	c.num = 0
	c.str = ""
	c.arr = nil
	c.obj = nil
}

// ensureUnique is the clone-if-shared step run before any mutation.
//
// If the cell is shared, the active variant is copied into a fresh shell
// and the handle is repointed at it, so the mutation stays invisible to
// every other handle. Array elements and object members are copied by
// reference-count bump only; a shared child is cloned the first time it is
// itself mutated. This deferred deep copy is the dominant hidden cost of
// mutating a value that was cheap to copy.
func (v *Value) ensureUnique() {
	c := v.cell
	if c.refs.Load() == 1 {
		return
	}

	nc := acquireCell()
	nc.kind = c.kind

	switch c.kind {
	case TypeBool:
		nc.b = c.b
	case TypeNumber:
		nc.num = c.num
	case TypeString:
		nc.str = c.str
	case TypeArray:
		nc.arr = make([]Value, len(c.arr), cap(c.arr))
		copy(nc.arr, c.arr)
		for i := range nc.arr {
			nc.arr[i].cell.retain()
		}
	case TypeObject:
		nc.obj = c.obj.clone()
	}

	release(c)
	v.cell = nc
}

// detachForOverwrite prepares the cell for a whole-variant replacement.
// Unlike ensureUnique it never copies the old payload: a shared cell is
// simply swapped for a fresh shell, an exclusive one has its payload
// cleared in place.
func (v *Value) detachForOverwrite() {
	c := v.cell
	if c.refs.Load() > 1 {
		release(c)
		v.cell = acquireCell()

		return
	}

	switch c.kind {
	case TypeArray:
		for i := range c.arr {
			release(c.arr[i].cell)
		}
	case TypeObject:
		if c.obj != nil {
			c.obj.releaseAll()
		}
	}
	c.resetPayload()
}
