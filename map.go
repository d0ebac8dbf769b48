// Package robinmap implements a generic hash map built on open addressing
// with Robin Hood hashing and backward-shift deletion: a flat, cache-friendly
// slot array with no tombstones and no chaining.
package robinmap

import (
	"errors"
	"iter"
	"math"
	"slices"
)

// ErrNotFound is reported by [Map.At] when the key is absent.
var ErrNotFound = errors.New("robinmap: key not found")

// Load-factor bounds. The table grows once the occupied count reaches
// ceil(maxLoadFactor*capacity) and shrinks once it drops below
// floor(minLoadFactor*capacity).
const (
	maxLoadFactor = 0.8
	minLoadFactor = 0.2
)

// Map is an associative key-to-value container using Robin Hood hashing
// over an open-addressed table. Capacity is always zero or a power of two;
// an empty map allocates nothing.
//
// Core properties:
//   - Lookup, insert and delete probe a single contiguous slot array.
//   - Insertion displaces residents that have traveled less, keeping the
//     variance of probe lengths low.
//   - Deletion shifts displaced successors backward instead of planting
//     tombstones, so probe chains never accumulate dead slots.
//
// Notes:
//   - Map is not safe for concurrent use. Concurrent reads are fine as long
//     as nothing mutates the map; any mutation must be externally
//     serialized by the caller.
//   - Create instances via [New], [Of] or [Collect]; the zero value has no
//     hasher and is not usable.
type Map[K comparable, V any] struct {
	hasher HashFunc[K]
	equal  EqualFunc[K]

	slots []slot[K, V]
	mask  uint64
	size  int

	// Thresholds derived from the load-factor bounds for the current
	// capacity.
	maxSize int
	minSize int

	growths uint32
	shrinks uint32
}

// New creates an empty Map.
//
// Configuration options:
//   - WithCapacity(sizeHint): pre-size the table for sizeHint entries.
//   - WithKeyHasher(fn): custom key hash function.
//   - WithKeyEqual(fn): custom key equality.
func New[K comparable, V any](options ...func(*MapConfig)) *Map[K, V] {
	var cfg MapConfig
	for _, opt := range options {
		opt(&cfg)
	}
	m := &Map[K, V]{
		hasher: defaultHasher[K](),
		equal:  defaultEqual[K](),
	}
	if cfg.keyHash != nil {
		h, ok := cfg.keyHash.(HashFunc[K])
		if !ok {
			panic("robinmap: WithKeyHasher function does not match the map's key type")
		}
		m.hasher = h
	}
	if cfg.keyEqual != nil {
		eq, ok := cfg.keyEqual.(EqualFunc[K])
		if !ok {
			panic("robinmap: WithKeyEqual function does not match the map's key type")
		}
		m.equal = eq
	}
	if cfg.capacity > 0 {
		m.rehash(targetCapacity(cfg.capacity))
	}
	return m
}

// Of builds a Map from a fixed list of entries.
// A later duplicate of a key overwrites the earlier value.
func Of[K comparable, V any](entries ...Entry[K, V]) *Map[K, V] {
	m := New[K, V](WithCapacity(len(entries)))
	for _, e := range entries {
		m.Store(e.Key, e.Value)
	}
	return m
}

// Collect builds a Map from an entry sequence, such as [Map.All] of another
// map or maps.All of a built-in map. A later duplicate of a key overwrites
// the earlier value.
func Collect[K comparable, V any](seq iter.Seq2[K, V], options ...func(*MapConfig)) *Map[K, V] {
	m := New[K, V](options...)
	for key, value := range seq {
		m.Store(key, value)
	}
	return m
}

// Size returns the number of entries in the map.
func (m *Map[K, V]) Size() int {
	return m.size
}

// IsZero reports whether the map holds no entries.
func (m *Map[K, V]) IsZero() bool {
	return m.size == 0
}

// Capacity returns the current number of physical slots: zero or a power
// of two.
func (m *Map[K, V]) Capacity() int {
	return len(m.slots)
}

// Hasher returns the hash function the map was built with.
func (m *Map[K, V]) Hasher() HashFunc[K] {
	return m.hasher
}

// Load retrieves the value for a key.
// The ok result reports whether the key was present.
func (m *Map[K, V]) Load(key K) (value V, ok bool) {
	if m.size == 0 {
		return
	}
	hash := m.hasher(key)
	pos := m.findBucket(key, hash)
	if !m.check(pos, key, hash) {
		return
	}
	return m.slots[pos].entry.Value, true
}

// At retrieves the value for a key, reporting [ErrNotFound] when the key
// is absent, including on an empty map.
func (m *Map[K, V]) At(key K) (V, error) {
	if value, ok := m.Load(key); ok {
		return value, nil
	}
	return *new(V), ErrNotFound
}

// Find returns an iterator on the entry for key, or the end iterator when
// the key is absent.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	if m.size == 0 {
		return m.End()
	}
	hash := m.hasher(key)
	pos := m.findBucket(key, hash)
	if !m.check(pos, key, hash) {
		return m.End()
	}
	return Iterator[K, V]{m: m, pos: pos}
}

// Ref returns a pointer to the value stored under key, inserting a zero
// value first when the key is absent. The pointer stays valid until the
// next structural mutation of the map.
func (m *Map[K, V]) Ref(key K) *V {
	pos, _ := m.insert(Entry[K, V]{Key: key}, m.hasher(key))
	return &m.slots[pos].entry.Value
}

// Store sets the value for a key, inserting the entry when absent and
// overwriting the value in place when present.
func (m *Map[K, V]) Store(key K, value V) {
	pos, placed := m.insert(Entry[K, V]{Key: key, Value: value}, m.hasher(key))
	if !placed {
		m.slots[pos].entry.Value = value
	}
}

// LoadOrStore returns the existing value for the key if present.
// Otherwise, it stores and returns the given value.
// The loaded result is true if the value was loaded, false if stored.
func (m *Map[K, V]) LoadOrStore(key K, value V) (actual V, loaded bool) {
	pos, placed := m.insert(Entry[K, V]{Key: key, Value: value}, m.hasher(key))
	return m.slots[pos].entry.Value, !placed
}

// Delete deletes the value for a key. Deleting an absent key is a no-op.
func (m *Map[K, V]) Delete(key K) {
	m.LoadAndDelete(key)
}

// LoadAndDelete deletes the value for a key, returning the previous value.
// The loaded result reports whether the key was present.
//
// After the slot is cleared, exactly one of three maintenance steps runs:
// an empty map drops its table entirely, a map below the shrink threshold
// rehashes to a smaller capacity, and any other map backward-shifts the
// probe chain to close the gap.
func (m *Map[K, V]) LoadAndDelete(key K) (previous V, loaded bool) {
	if m.size == 0 {
		return
	}
	hash := m.hasher(key)
	pos := m.findBucket(key, hash)
	if !m.check(pos, key, hash) {
		return
	}
	previous = m.slots[pos].entry.Value
	m.slots[pos].clear()
	m.size--
	switch {
	case m.size == 0:
		m.reset()
	case m.size < m.minSize:
		m.rehash(targetCapacity(m.size))
		m.shrinks++
	default:
		m.backwardShift(pos)
	}
	return previous, true
}

// Clear removes all entries and releases the backing array, returning the
// map to the allocation-free empty state.
func (m *Map[K, V]) Clear() {
	m.reset()
}

// Clone returns a copy of the map sharing the hash and equality functions
// but none of the storage.
func (m *Map[K, V]) Clone() *Map[K, V] {
	clone := *m
	clone.slots = slices.Clone(m.slots)
	return &clone
}

// Range calls yield for every entry in slot order until yield returns
// false. The map must not be structurally mutated while ranging.
func (m *Map[K, V]) Range(yield func(K, V) bool) {
	for i := range m.slots {
		if m.slots[i].empty() {
			continue
		}
		if !yield(m.slots[i].entry.Key, m.slots[i].entry.Value) {
			return
		}
	}
}

// All returns an iterator over the map's entries for use with
// range-over-func. Same caveats as [Map.Range].
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.Range
}

// Begin returns an iterator on the first occupied slot, or the end
// iterator for an empty map.
func (m *Map[K, V]) Begin() Iterator[K, V] {
	it := Iterator[K, V]{m: m}
	it.skipEmpty()
	return it
}

// End returns the end sentinel iterator.
func (m *Map[K, V]) End() Iterator[K, V] {
	return Iterator[K, V]{m: m, pos: len(m.slots)}
}

// idealIndex is a key's preferred bucket for its hash.
func (m *Map[K, V]) idealIndex(hash uint64) int {
	return int(hash & m.mask)
}

// nextIndex is the circular successor of pos.
func (m *Map[K, V]) nextIndex(pos int) int {
	return (pos + 1) & int(m.mask)
}

// distanceBetween is the displacement of the slot at actual from a given
// ideal bucket, following wrap-around.
func (m *Map[K, V]) distanceBetween(ideal, actual int) int {
	return (actual - ideal) & int(m.mask)
}

// findBucket probes from the key's ideal bucket while slots are occupied
// and their stored distance is at least the search distance. A hash+key
// match returns the hit position; otherwise the position where the scan
// stopped is a miss candidate: by the Robin Hood invariant the key cannot
// sit beyond a slot whose resident has traveled less. Callers must
// re-validate the result with check.
func (m *Map[K, V]) findBucket(key K, hash uint64) int {
	pos := m.idealIndex(hash)
	if m.size == 0 {
		return pos
	}
	for dist := 0; !m.slots[pos].empty() && m.slots[pos].dist >= dist; dist++ {
		if m.slots[pos].hash == hash && m.equal(m.slots[pos].entry.Key, key) {
			return pos
		}
		pos = m.nextIndex(pos)
	}
	return pos
}

// check validates a position returned by findBucket as an actual hit.
func (m *Map[K, V]) check(pos int, key K, hash uint64) bool {
	return m.size != 0 && !m.slots[pos].empty() &&
		m.slots[pos].hash == hash && m.equal(m.slots[pos].entry.Key, key)
}

// insert resolves the slot for an entry: an existing match wins and is
// returned untouched, otherwise the entry is placed, growing first when
// the occupied count has reached the grow threshold. Returns the entry's
// slot index and whether a new entry was placed.
func (m *Map[K, V]) insert(e Entry[K, V], hash uint64) (int, bool) {
	if pos := m.findBucket(e.Key, hash); m.check(pos, e.Key, hash) {
		return pos, false
	}
	if m.size >= m.maxSize {
		m.rehash(targetCapacity(m.size + 1))
		m.growths++
	}
	return m.place(e, hash), true
}

// place runs the Robin Hood probe for a new entry. The traveling candidate
// starts at its ideal bucket with distance zero; whenever a resident has
// traveled strictly less than the candidate, the two swap and the evicted
// resident travels on with its own hash and distance. Equal distances are
// broken by hash order, so each equal-distance run stays sorted by hash
// and the final layout depends only on the key set, not on insertion
// order. Distinct keys whose full digests collide keep arrival order
// within the tie. Whatever is being carried when an empty slot appears
// lands there. The returned index is the requested entry's slot: the
// first swap position when a swap happened, the landing slot otherwise;
// later evictions in the same chain move other keys, never the requested
// one.
//
// Placement requires a free slot; insert grows beforehand, so here
// size < maxSize <= capacity.
func (m *Map[K, V]) place(e Entry[K, V], hash uint64) int {
	pos := m.idealIndex(hash)
	dist := 0
	placed := -1
	for !m.slots[pos].empty() {
		if m.slots[pos].dist < dist ||
			(m.slots[pos].dist == dist && m.slots[pos].hash > hash) {
			m.slots[pos].swap(&e, &hash, &dist)
			if placed < 0 {
				placed = pos
			}
		}
		pos = m.nextIndex(pos)
		dist++
	}
	m.slots[pos].set(e, hash, dist)
	m.size++
	if placed < 0 {
		return pos
	}
	return placed
}

// backwardShift closes the gap left by a cleared slot: successors that are
// occupied and not already at their ideal bucket move one position back,
// their distance recomputed from their own ideal bucket. The pass stops at
// the first empty or distance-zero slot, restoring the invariant that
// every stored distance is the resident's true displacement.
func (m *Map[K, V]) backwardShift(gap int) {
	for pos := m.nextIndex(gap); ; pos = m.nextIndex(pos) {
		s := &m.slots[pos]
		if s.empty() || s.dist == 0 {
			return
		}
		ideal := m.idealIndex(s.hash)
		m.slots[gap].set(s.entry, s.hash, m.distanceBetween(ideal, gap))
		s.clear()
		gap = pos
	}
}

// rehash reallocates the table at the given capacity and replays every
// resident through normal placement, reusing the cached digests. Replay
// order is bucket-scan order of the old table; for a fixed key set and
// capacity Robin Hood hashing converges to one canonical layout, so the
// order does not matter. The new capacity always leaves headroom below the
// grow threshold, so the replay itself never grows.
func (m *Map[K, V]) rehash(capacity int) {
	old := m.slots
	m.slots = newSlots[K, V](capacity)
	m.mask = uint64(capacity - 1)
	m.size = 0
	m.updateThresholds(capacity)
	for i := range old {
		if !old[i].empty() {
			m.place(old[i].entry, old[i].hash)
		}
	}
}

// reset returns the map to the allocation-free empty state.
func (m *Map[K, V]) reset() {
	m.slots = nil
	m.mask = 0
	m.size = 0
	m.updateThresholds(0)
}

func (m *Map[K, V]) updateThresholds(capacity int) {
	m.maxSize = int(math.Ceil(maxLoadFactor * float64(capacity)))
	m.minSize = int(math.Floor(minLoadFactor * float64(capacity)))
}
