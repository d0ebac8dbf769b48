package robinmap

// Entry is a key/value pair stored in a [Map].
// The key is immutable once stored; the value may be replaced in place.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// emptyDistance marks an unoccupied slot. A resident's probe distance is
// (actual-ideal)&mask, which lies in [0, capacity-1] for every capacity,
// so the sentinel can never collide with a real distance.
const emptyDistance = -1

// slot is one physical cell of the table: at most one entry together with
// its cached hash digest and probe distance. Occupancy is encoded solely by
// the distance field; there is no separate flag. A slot never exposes a
// half-built payload: set and clear replace the whole triple at once.
type slot[K comparable, V any] struct {
	entry Entry[K, V]
	hash  uint64
	dist  int
}

func (s *slot[K, V]) empty() bool {
	return s.dist == emptyDistance
}

// set places an entry into the slot, replacing whatever payload was there.
func (s *slot[K, V]) set(e Entry[K, V], hash uint64, dist int) {
	s.entry = e
	s.hash = hash
	s.dist = dist
}

// clear zeroes the payload so the GC can reclaim anything it references and
// resets the distance to the empty sentinel.
func (s *slot[K, V]) clear() {
	s.entry = Entry[K, V]{}
	s.hash = 0
	s.dist = emptyDistance
}

// swap exchanges the slot's (entry, hash, distance) triple with the
// caller-supplied one in O(1). Robin Hood stealing uses this to turn the
// evicted resident into the new traveling candidate.
func (s *slot[K, V]) swap(e *Entry[K, V], hash *uint64, dist *int) {
	s.entry, *e = *e, s.entry
	s.hash, *hash = *hash, s.hash
	s.dist, *dist = *dist, s.dist
}
