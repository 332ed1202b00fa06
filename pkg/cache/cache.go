// Package cache memoizes per-coordinate distortion values for printers.
//
// A printer that tiles its coordinate space only ever sees a finite set of
// (x mod radius_x, y mod radius_y) pairs, so computing the distortion once per
// pair and reusing it is both faster and stable across images. Printers that
// do not tile use [NullCache], which never stores anything.
//
// Caches are owned by exactly one printer and are not safe for concurrent use.
package cache

// Key is a tiled coordinate pair.
type Key struct {
	X, Y int
}

// Cache maps tiled coordinates to signed intensity deltas.
type Cache interface {
	// Get returns the stored delta and whether it was present.
	Get(k Key) (int, bool)

	// Set stores a delta for k.
	Set(k Key, delta int)

	// Len reports the number of stored entries.
	Len() int

	// Stats returns hit and miss counters since creation.
	Stats() Stats
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int
	Misses int
}

// Resolve returns the cached value for k, computing and storing it with fn
// on a miss.
func Resolve(c Cache, k Key, fn func() int) int {
	if v, ok := c.Get(k); ok {
		return v
	}
	v := fn()
	c.Set(k, v)
	return v
}
