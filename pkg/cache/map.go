package cache

// MapCache is an unbounded in-memory cache backed by a Go map.
type MapCache struct {
	entries map[Key]int
	stats   Stats
}

// NewMapCache creates an empty map-backed cache.
func NewMapCache() Cache {
	return &MapCache{entries: make(map[Key]int)}
}

// Get retrieves a value from the cache.
func (c *MapCache) Get(k Key) (int, bool) {
	v, ok := c.entries[k]
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return v, ok
}

// Set stores a value in the cache.
func (c *MapCache) Set(k Key, delta int) {
	c.entries[k] = delta
}

// Len returns the number of entries.
func (c *MapCache) Len() int {
	return len(c.entries)
}

// Stats returns lookup counters.
func (c *MapCache) Stats() Stats {
	return c.stats
}

// Ensure MapCache implements Cache.
var _ Cache = (*MapCache)(nil)
