//go:build robinmap_cachelinesize_64

package opt

// CacheLineSize_ is force-set to 64 bytes.
// Use: go build -tags=robinmap_cachelinesize_64
const CacheLineSize_ = 64
