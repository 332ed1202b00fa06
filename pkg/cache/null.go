package cache

// NullCache is a no-op cache that never stores anything.
// Printers use it when memoization is disabled.
type NullCache struct {
	misses int
}

// NewNullCache creates a null cache.
func NewNullCache() Cache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(k Key) (int, bool) {
	c.misses++
	return 0, false
}

// Set does nothing.
func (c *NullCache) Set(k Key, delta int) {}

// Len is always zero.
func (c *NullCache) Len() int { return 0 }

// Stats reports every lookup as a miss.
func (c *NullCache) Stats() Stats {
	return Stats{Misses: c.misses}
}

// Ensure NullCache implements Cache.
var _ Cache = (*NullCache)(nil)
