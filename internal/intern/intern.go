// Package intern provides a dedup table for short object-key strings.
//
// JSON documents commonly repeat a small set of keys across many objects.
// Interning stores one canonical instance per distinct short key so every
// object holds the same backing string instead of its own copy.
package intern

// MaxKeyLen is the longest key the table deduplicates. Longer keys pass
// through untouched; they are rarely repeated enough to be worth caching.
const MaxKeyLen = 32

// Table deduplicates short strings. It is not safe for concurrent use;
// callers guard it externally or construct one per goroutine.
type Table struct {
	entries map[string]string
	hits    uint64
	misses  uint64
}

// NewTable creates an empty intern table.
func NewTable() *Table {
	return &Table{
		entries: make(map[string]string),
	}
}

// Intern returns the canonical instance of s, inserting it on first sight.
// Strings longer than MaxKeyLen are returned as-is without being cached.
func (t *Table) Intern(s string) string {
	if len(s) > MaxKeyLen {
		return s
	}

	if canonical, ok := t.entries[s]; ok {
		t.hits++
		return canonical
	}

	t.entries[s] = s
	t.misses++

	return s
}

// Len returns the number of distinct strings cached.
func (t *Table) Len() int {
	return len(t.entries)
}

// Stats returns the hit and miss counts since the table was created.
func (t *Table) Stats() (hits, misses uint64) {
	return t.hits, t.misses
}

// Reset drops all cached strings and counters.
func (t *Table) Reset() {
	t.entries = make(map[string]string)
	t.hits = 0
	t.misses = 0
}
