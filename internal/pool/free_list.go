package pool

// Free list sizing for storage-cell shells. The list is warmed with a small
// batch on first acquire and never retains more than Capacity shells;
// overflow is left to the garbage collector.
const (
	// FreeListCapacity is the maximum number of shells a FreeList retains.
	FreeListCapacity = 1000

	// FreeListWarmup is the number of shells preallocated on first use.
	FreeListWarmup = 50
)

// FreeList is a bounded LIFO free list of reusable shells.
//
// Acquire and Release are O(1). The list is not safe for concurrent use;
// callers either guard it externally or construct one per goroutine. It is
// deliberately an explicit, constructible object rather than ambient state
// so tests can instantiate isolated lists deterministically.
type FreeList[T any] struct {
	newFn    func() T
	free     []T
	capacity int
	warmup   int
	warmed   bool
}

// NewFreeList creates a free list that retains at most capacity shells and
// preallocates warmup shells (via newFn) on the first Acquire.
func NewFreeList[T any](capacity, warmup int, newFn func() T) *FreeList[T] {
	if warmup > capacity {
		warmup = capacity
	}

	return &FreeList[T]{
		newFn:    newFn,
		capacity: capacity,
		warmup:   warmup,
	}
}

// Acquire pops a shell from the list, or allocates a fresh one when the
// list is empty. The first call builds the warmup batch.
func (l *FreeList[T]) Acquire() T {
	if !l.warmed {
		l.warmed = true
		l.free = make([]T, 0, l.capacity)
		for i := 0; i < l.warmup; i++ {
			l.free = append(l.free, l.newFn())
		}
	}

	if n := len(l.free); n > 0 {
		v := l.free[n-1]
		var zero T
		l.free[n-1] = zero
		l.free = l.free[:n-1]

		return v
	}

	return l.newFn()
}

// Release pushes a retiring shell back onto the list. Shells beyond the
// capacity are dropped and reclaimed by the garbage collector.
func (l *FreeList[T]) Release(v T) {
	if len(l.free) >= l.capacity {
		return
	}
	if l.free == nil {
		l.free = make([]T, 0, l.capacity)
	}
	l.free = append(l.free, v)
}

// Len returns the number of shells currently held by the list.
func (l *FreeList[T]) Len() int {
	return len(l.free)
}

// Capacity returns the maximum number of shells the list retains.
func (l *FreeList[T]) Capacity() int {
	return l.capacity
}
