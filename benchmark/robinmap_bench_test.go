// Package benchmark compares robinmap against the built-in map and a few
// third-party associative containers on single-threaded workloads. The
// concurrent maps are run from one goroutine only; their synchronization
// overhead is part of what the comparison shows.
package benchmark

import (
	"testing"

	"github.com/alphadose/haxmap"
	"github.com/cornelk/hashmap"
	"github.com/deker104/robinmap"
	godshashmap "github.com/emirpasic/gods/maps/hashmap"
	"github.com/google/btree"
	"github.com/llxisdsh/pb"
)

const benchmarkItemCount = 1024

func setupRobinMap(b *testing.B) *robinmap.Map[uintptr, uintptr] {
	b.Helper()
	m := robinmap.New[uintptr, uintptr](robinmap.WithCapacity(benchmarkItemCount))
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Store(i, i)
	}
	return m
}

func setupGoMap(b *testing.B) map[uintptr]uintptr {
	b.Helper()
	m := make(map[uintptr]uintptr, benchmarkItemCount)
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m[i] = i
	}
	return m
}

func setupPbMap(b *testing.B) *pb.MapOf[uintptr, uintptr] {
	b.Helper()
	m := pb.NewMapOf[uintptr, uintptr]()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Store(i, i)
	}
	return m
}

func setupHaxMap(b *testing.B) *haxmap.Map[uintptr, uintptr] {
	b.Helper()
	m := haxmap.New[uintptr, uintptr]()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupHashMap(b *testing.B) *hashmap.Map[uintptr, uintptr] {
	b.Helper()
	m := hashmap.New[uintptr, uintptr]()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Set(i, i)
	}
	return m
}

func setupGodsMap(b *testing.B) *godshashmap.Map {
	b.Helper()
	m := godshashmap.New()
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		m.Put(i, i)
	}
	return m
}

type btreeItem struct {
	key, val uintptr
}

func setupBTree(b *testing.B) *btree.BTreeG[btreeItem] {
	b.Helper()
	tr := btree.NewG(32, func(a, b btreeItem) bool { return a.key < b.key })
	for i := uintptr(0); i < benchmarkItemCount; i++ {
		tr.ReplaceOrInsert(btreeItem{key: i, val: i})
	}
	return tr
}

func BenchmarkReadRobinMapUint(b *testing.B) {
	m := setupRobinMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			if j, _ := m.Load(i); j != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkReadGoMapUint(b *testing.B) {
	m := setupGoMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			if m[i] != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkReadPbMapUint(b *testing.B) {
	m := setupPbMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			if j, _ := m.Load(i); j != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkReadHaxMapUint(b *testing.B) {
	m := setupHaxMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			if j, _ := m.Get(i); j != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkReadHashMapUint(b *testing.B) {
	m := setupHashMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			if j, _ := m.Get(i); j != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkReadGodsMapUint(b *testing.B) {
	m := setupGodsMap(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			if j, found := m.Get(i); !found || j.(uintptr) != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkReadBTreeUint(b *testing.B) {
	tr := setupBTree(b)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			if item, ok := tr.Get(btreeItem{key: i}); !ok || item.val != i {
				b.Fail()
			}
		}
	}
}

func BenchmarkWriteRobinMapUint(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := robinmap.New[uintptr, uintptr](robinmap.WithCapacity(benchmarkItemCount))
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			m.Store(i, i)
		}
	}
}

func BenchmarkWriteGoMapUint(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := make(map[uintptr]uintptr, benchmarkItemCount)
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			m[i] = i
		}
	}
}

func BenchmarkWritePbMapUint(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := pb.NewMapOf[uintptr, uintptr](pb.WithPresize(benchmarkItemCount))
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			m.Store(i, i)
		}
	}
}

func BenchmarkWriteHaxMapUint(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := haxmap.New[uintptr, uintptr](benchmarkItemCount)
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			m.Set(i, i)
		}
	}
}

func BenchmarkWriteHashMapUint(b *testing.B) {
	for n := 0; n < b.N; n++ {
		m := hashmap.NewSized[uintptr, uintptr](benchmarkItemCount)
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			m.Set(i, i)
		}
	}
}

func BenchmarkDeleteRobinMapUint(b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		m := setupRobinMap(b)
		b.StartTimer()
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			m.Delete(i)
		}
	}
}

func BenchmarkDeleteGoMapUint(b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		m := setupGoMap(b)
		b.StartTimer()
		for i := uintptr(0); i < benchmarkItemCount; i++ {
			delete(m, i)
		}
	}
}
