//go:build !robinmap_cachelinesize_64 && !robinmap_cachelinesize_128

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the platform cache-line size used for slot-footprint
// diagnostics. It's automatically calculated using the `golang.org/x/sys`
// package.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
