package robinmap

// HashFunc maps a key to a 64-bit digest. Implementations must be
// deterministic: equal keys must produce equal digests.
type HashFunc[K comparable] func(key K) uint64

// EqualFunc reports whether two keys are equal. It must agree with the
// map's HashFunc: keys it deems equal must hash to the same digest.
type EqualFunc[K comparable] func(a, b K) bool

// MapConfig defines configurable options for Map initialization.
type MapConfig struct {
	// keyHash holds a HashFunc[K] supplied via WithKeyHasher.
	// If nil, the built-in maphash-based hasher is used.
	keyHash any

	// keyEqual holds an EqualFunc[K] supplied via WithKeyEqual.
	// If nil, the key type's own == is used.
	keyEqual any

	// capacity provides an estimate of the expected number of entries.
	// It is used to pre-allocate the table with enough headroom below the
	// grow threshold, so initial population does not rehash. Zero or
	// negative values are ignored; the resulting capacity is always a
	// power of two.
	capacity int
}

// WithCapacity configures a new Map instance with capacity enough to hold
// sizeHint entries without growing. If sizeHint is zero or negative, the
// value is ignored and the map starts allocation-free.
func WithCapacity(sizeHint int) func(*MapConfig) {
	return func(c *MapConfig) {
		c.capacity = sizeHint
	}
}

// WithKeyHasher sets a custom key hashing function for the map.
//
// Usage:
//
//	// Identity hash for small integer keys
//	m := New[int, string](WithKeyHasher(func(k int) uint64 { return uint64(k) }))
//
//	// xxhash for string keys
//	m := New[string, int](WithKeyHasher(HashFunc[string](xxhash.Sum64String)))
//
// Notes:
//   - Pass nil to keep the default built-in hasher.
//   - K must match the map's key type; New panics on a mismatch.
func WithKeyHasher[K comparable](keyHash HashFunc[K]) func(*MapConfig) {
	return func(c *MapConfig) {
		if keyHash != nil {
			c.keyHash = keyHash
		}
	}
}

// WithKeyEqual sets a custom key equality function for the map. Keys the
// function deems equal must hash identically under the map's hasher, so
// this option is usually paired with WithKeyHasher.
//
// Usage:
//
//	// Case-insensitive string keys
//	m := New[string, int](
//		WithKeyHasher(func(k string) uint64 { return xxhash.Sum64String(strings.ToLower(k)) }),
//		WithKeyEqual[string](strings.EqualFold),
//	)
//
// Notes:
//   - Pass nil to keep the key type's own ==.
//   - K must match the map's key type; New panics on a mismatch.
func WithKeyEqual[K comparable](keyEqual EqualFunc[K]) func(*MapConfig) {
	return func(c *MapConfig) {
		if keyEqual != nil {
			c.keyEqual = keyEqual
		}
	}
}
