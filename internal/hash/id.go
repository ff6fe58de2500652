package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given key string.
func ID(key string) uint64 {
	return xxhash.Sum64String(key)
}
