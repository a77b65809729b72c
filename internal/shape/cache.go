package shape

import "sync"

// Resolver resolves a primitive kind to its unit mesh.
type Resolver interface {
	Resolve(k Kind) *Mesh
}

// Cache is a concurrency-safe mesh cache. Meshes are read-only once built,
// so a single cache can back every render worker.
type Cache struct {
	mu    sync.RWMutex
	items map[Kind]*Mesh
}

// NewCache creates an empty mesh cache.
func NewCache() *Cache {
	return &Cache{items: make(map[Kind]*Mesh)}
}

// Resolve returns the cached mesh for k, generating it on first use.
func (c *Cache) Resolve(k Kind) *Mesh {
	// Fast path: read lock
	c.mu.RLock()
	if m, ok := c.items[k]; ok {
		c.mu.RUnlock()
		return m
	}
	c.mu.RUnlock()

	m := Generate(k)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.items[k]; ok {
		return existing
	}
	c.items[k] = m
	return m
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
