package robinmap

import (
	"fmt"
	"hash/maphash"
	"math/bits"
	"strings"
	"unsafe"

	"github.com/deker104/robinmap/internal/opt"
)

// tableSeed seeds the built-in hasher. A single process-wide seed keeps
// every Map built with the default hasher on the same layout (two maps
// holding the same keys agree slot for slot) while still varying between
// processes.
var tableSeed = maphash.MakeSeed()

func defaultHasher[K comparable]() HashFunc[K] {
	return func(key K) uint64 {
		return maphash.Comparable(tableSeed, key)
	}
}

func defaultEqual[K comparable]() EqualFunc[K] {
	return func(a, b K) bool {
		return a == b
	}
}

// targetCapacity returns the table capacity used to hold count entries:
// the smallest power of two >= count, doubled for headroom above the max
// load factor. A count of zero maps to the allocation-free empty table.
func targetCapacity(count int) int {
	if count <= 0 {
		return 0
	}
	return nextPow2(count) << 1
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

// newSlots allocates a slot array with every cell marked empty.
// The empty sentinel is nonzero, so a fresh array needs the pass.
func newSlots[K comparable, V any](capacity int) []slot[K, V] {
	if capacity == 0 {
		return nil
	}
	slots := make([]slot[K, V], capacity)
	for i := range slots {
		slots[i].dist = emptyDistance
	}
	return slots
}

// MapStats is Map statistics.
//
// Notes:
//   - map statistics are intended to be used for diagnostic purposes,
//     not for production code. Breaking changes may be introduced into
//     this struct even between minor releases.
type MapStats struct {
	// Capacity is the number of physical slots: zero or a power of two.
	Capacity int
	// Size is the number of entries stored in the map.
	Size int
	// EmptySlots is the number of unoccupied slots.
	EmptySlots int
	// LoadFactor is Size divided by Capacity, zero for an empty table.
	LoadFactor float64
	// MaxDistance is the largest probe distance of any resident entry,
	// i.e. the worst-case probe length of the current layout.
	MaxDistance int
	// TotalDistance is the sum of all resident probe distances.
	TotalDistance int
	// SlotBytes is the in-memory footprint of a single slot.
	SlotBytes int
	// SlotsPerCacheLine is how many slots share one CPU cache line;
	// zero when a slot exceeds the line.
	SlotsPerCacheLine int
	// TotalGrowths is the number of times the table grew.
	TotalGrowths uint32
	// TotalShrinks is the number of times the table shrunk.
	TotalShrinks uint32
}

// String returns string representation of map stats.
func (s *MapStats) String() string {
	var sb strings.Builder
	sb.WriteString("MapStats{\n")
	sb.WriteString(fmt.Sprintf("Capacity:          %d\n", s.Capacity))
	sb.WriteString(fmt.Sprintf("Size:              %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("EmptySlots:        %d\n", s.EmptySlots))
	sb.WriteString(fmt.Sprintf("LoadFactor:        %.2f\n", s.LoadFactor))
	sb.WriteString(fmt.Sprintf("MaxDistance:       %d\n", s.MaxDistance))
	sb.WriteString(fmt.Sprintf("TotalDistance:     %d\n", s.TotalDistance))
	sb.WriteString(fmt.Sprintf("SlotBytes:         %d\n", s.SlotBytes))
	sb.WriteString(fmt.Sprintf("SlotsPerCacheLine: %d\n", s.SlotsPerCacheLine))
	sb.WriteString(fmt.Sprintf("TotalGrowths:      %d\n", s.TotalGrowths))
	sb.WriteString(fmt.Sprintf("TotalShrinks:      %d\n", s.TotalShrinks))
	sb.WriteString("}\n")
	return sb.String()
}

// Stats returns statistics for the Map. It is an O(capacity) scan meant
// for diagnostics and debugging, not for hot paths.
func (m *Map[K, V]) Stats() MapStats {
	stats := MapStats{
		Capacity:     len(m.slots),
		Size:         m.size,
		SlotBytes:    int(unsafe.Sizeof(slot[K, V]{})),
		TotalGrowths: m.growths,
		TotalShrinks: m.shrinks,
	}
	stats.SlotsPerCacheLine = int(opt.CacheLineSize_) / stats.SlotBytes
	if len(m.slots) == 0 {
		return stats
	}
	stats.LoadFactor = float64(m.size) / float64(len(m.slots))
	for i := range m.slots {
		if m.slots[i].empty() {
			stats.EmptySlots++
			continue
		}
		stats.TotalDistance += m.slots[i].dist
		if m.slots[i].dist > stats.MaxDistance {
			stats.MaxDistance = m.slots[i].dist
		}
	}
	return stats
}
