package robinmap

// Iterator is a forward-only cursor over a Map's slot array that skips
// empty slots.
//
// Notes:
//   - Any structural mutation of the map (an insert that rehashes, any
//     delete, Clear) invalidates every outstanding iterator; using an
//     invalidated iterator is undefined. Serializing iteration against
//     mutation is the caller's obligation, not checked internally.
//   - Obtain iterators from [Map.Begin], [Map.End] or [Map.Find].
type Iterator[K comparable, V any] struct {
	m   *Map[K, V]
	pos int
}

// Valid reports whether the iterator references an entry.
// The end iterator is not valid.
func (it Iterator[K, V]) Valid() bool {
	return it.m != nil && it.pos < len(it.m.slots)
}

// Next advances to the next occupied slot.
// Advancing the end iterator is a no-op.
func (it *Iterator[K, V]) Next() {
	if !it.Valid() {
		return
	}
	it.pos++
	it.skipEmpty()
}

func (it *Iterator[K, V]) skipEmpty() {
	for it.pos < len(it.m.slots) && it.m.slots[it.pos].empty() {
		it.pos++
	}
}

// Key returns the key of the referenced entry.
func (it Iterator[K, V]) Key() K {
	return it.m.slots[it.pos].entry.Key
}

// Value returns the value of the referenced entry.
func (it Iterator[K, V]) Value() V {
	return it.m.slots[it.pos].entry.Value
}

// SetValue replaces the value of the referenced entry in place.
func (it Iterator[K, V]) SetValue(value V) {
	it.m.slots[it.pos].entry.Value = value
}

// Equal reports positional equality: same map, same slot. All end
// iterators compare equal to each other regardless of the map they
// originated from.
func (it Iterator[K, V]) Equal(other Iterator[K, V]) bool {
	if !it.Valid() || !other.Valid() {
		return !it.Valid() && !other.Valid()
	}
	return it.m == other.m && it.pos == other.pos
}
