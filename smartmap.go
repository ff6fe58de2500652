package jsontree

import (
	"github.com/arloliu/jsontree/internal/hash"
)

// Capacity tiers for object storage, tuned for typical JSON object sizes:
// most objects carry a handful of keys, a minority grow into the dozens.
const (
	smallObjectThreshold  = 8
	mediumObjectThreshold = 32
)

// maxLoadFactor is 3/4: the table grows once live+deleted slots exceed 75%.
const (
	loadFactorNum = 3
	loadFactorDen = 4
)

const (
	slotEmpty uint8 = iota
	slotUsed
	slotDeleted
)

type mapSlot struct {
	hash  uint64
	state uint8
	key   string
	val   Value
}

// smartMap is the adaptive associative container behind object values: an
// open-addressing hash table (xxHash64, linear probing, tombstones) with
// tiered capacity growth of 8 → 32 → double thereafter.
//
// Iteration order is table order, not insertion order. The map owns one
// reference to each member's cell.
type smartMap struct {
	slots []mapSlot
	used  int // live entries
	dirty int // live entries plus tombstones; drives the load factor
}

func newSmartMap() *smartMap {
	return &smartMap{
		slots: make([]mapSlot, smallObjectThreshold),
	}
}

// lookup returns the slot index holding key, or -1.
func (m *smartMap) lookup(key string) int {
	if m.used == 0 {
		return -1
	}

	h := hash.ID(key)
	n := uint64(len(m.slots))
	for i := h % n; ; i = (i + 1) % n {
		slot := &m.slots[i]
		switch slot.state {
		case slotEmpty:
			return -1
		case slotUsed:
			if slot.hash == h && slot.key == key {
				return int(i)
			}
		}
	}
}

// put inserts or replaces key. The map takes ownership of val's reference;
// a replaced member's cell is released.
func (m *smartMap) put(key string, val Value) {
	m.growIfNeeded(1)

	h := hash.ID(key)
	n := uint64(len(m.slots))
	firstDeleted := -1
	for i := h % n; ; i = (i + 1) % n {
		slot := &m.slots[i]
		switch slot.state {
		case slotUsed:
			if slot.hash == h && slot.key == key {
				release(slot.val.cell)
				slot.val = val

				return
			}
		case slotDeleted:
			if firstDeleted < 0 {
				firstDeleted = int(i)
			}
		case slotEmpty:
			target := int(i)
			if firstDeleted >= 0 {
				target = firstDeleted
			} else {
				m.dirty++
			}
			m.slots[target] = mapSlot{hash: h, state: slotUsed, key: key, val: val}
			m.used++

			return
		}
	}
}

// ref returns a pointer to the member slot for key, inserting a null member
// if absent. The pointer is valid until the next insertion (growth moves
// slots).
func (m *smartMap) ref(key string) *Value {
	if i := m.lookup(key); i >= 0 {
		return &m.slots[i].val
	}

	m.put(key, Value{cell: acquireCell()})

	return &m.slots[m.lookup(key)].val
}

// delete removes key, releasing the member's cell. Reports whether the key
// was present. The slot becomes a tombstone so probe chains stay intact.
func (m *smartMap) delete(key string) bool {
	i := m.lookup(key)
	if i < 0 {
		return false
	}

	slot := &m.slots[i]
	release(slot.val.cell)
	slot.state = slotDeleted
	slot.key = ""
	slot.val = Value{}
	m.used--

	return true
}

// growIfNeeded rehashes before an insertion that would push the table past
// the load factor, stepping through the capacity tiers.
func (m *smartMap) growIfNeeded(extra int) {
	if (m.dirty+extra)*loadFactorDen <= len(m.slots)*loadFactorNum {
		return
	}

	n := len(m.slots)
	var next int
	switch {
	case n < smallObjectThreshold:
		next = smallObjectThreshold
	case n < mediumObjectThreshold:
		next = mediumObjectThreshold
	default:
		next = n * 2
	}
	m.rehash(next)
}

// smartReserve grows the table for an expected member count, rounding up to
// the nearest tier: 8, 32, or n + n/4 headroom above that. It never
// shrinks.
func (m *smartMap) smartReserve(n int) {
	var target int
	switch {
	case n <= smallObjectThreshold:
		target = smallObjectThreshold
	case n <= mediumObjectThreshold:
		target = mediumObjectThreshold
	default:
		target = n + n/4
	}

	// Keep the reserved count under the load factor.
	slots := target * loadFactorDen / loadFactorNum
	if slots > len(m.slots) {
		m.rehash(slots)
	}
}

func (m *smartMap) rehash(size int) {
	old := m.slots
	m.slots = make([]mapSlot, size)
	m.dirty = 0
	n := uint64(size)

	for idx := range old {
		slot := &old[idx]
		if slot.state != slotUsed {
			continue
		}
		for i := slot.hash % n; ; i = (i + 1) % n {
			if m.slots[i].state == slotEmpty {
				m.slots[i] = mapSlot{hash: slot.hash, state: slotUsed, key: slot.key, val: slot.val}
				m.dirty++

				break
			}
		}
	}
}

// keys returns all keys in table order.
func (m *smartMap) keys() []string {
	out := make([]string, 0, m.used)
	for i := range m.slots {
		if m.slots[i].state == slotUsed {
			out = append(out, m.slots[i].key)
		}
	}

	return out
}

func (m *smartMap) len() int {
	return m.used
}

// clone copies the table for copy-on-write: slots are copied by value and
// each member cell gains one reference.
func (m *smartMap) clone() *smartMap {
	nm := &smartMap{
		slots: make([]mapSlot, len(m.slots)),
		used:  m.used,
		dirty: m.dirty,
	}
	copy(nm.slots, m.slots)
	for i := range nm.slots {
		if nm.slots[i].state == slotUsed {
			nm.slots[i].val.cell.retain()
		}
	}

	return nm
}

// releaseAll drops the map's reference to every member.
func (m *smartMap) releaseAll() {
	for i := range m.slots {
		if m.slots[i].state == slotUsed {
			release(m.slots[i].val.cell)
			m.slots[i] = mapSlot{}
		}
	}
	m.used = 0
	m.dirty = 0
}

// nextUsed returns the first used slot index at or after start, or -1 when
// the table is exhausted. Object iterators walk the table with it.
func (m *smartMap) nextUsed(start int) int {
	for i := start; i < len(m.slots); i++ {
		if m.slots[i].state == slotUsed {
			return i
		}
	}

	return -1
}
