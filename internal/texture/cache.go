package texture

import (
	"image"
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned for names missing from the index.
var ErrNotFound = errors.New("texture: not found")

// Cache is a concurrency-safe image cache. Decoded images are shared and
// must be treated as read-only.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a new image cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Load decodes and caches an image by name. Decode failures are cached too.
func (c *Cache) Load(name string) (*image.NRGBA, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%q (%d images indexed)", name, c.index.Len())
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := LoadTexture(path)

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, exists := c.items[path]; exists {
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	return img, err
}
