package raster

import "sync"

// Cache provides thread-safe caching of decoded rasters to avoid redundant
// disk reads.
//
// Rasters are keyed by the exact path string passed to Load. Callers must
// treat cached rasters as read-only; segmentation never writes to its
// source, so a cached raster can be segmented any number of times.
//
// # Memory Management
//
// Cached rasters remain in memory until explicitly removed via Evict() or
// Clear(). A decoded raster costs three bytes per pixel.
type Cache struct {
	mu      sync.RWMutex
	rasters map[string]*Raster
}

// NewCache creates an empty raster cache.
func NewCache() *Cache {
	return &Cache{
		rasters: make(map[string]*Raster),
	}
}

// Load returns the cached raster for path, decoding the file on first use.
func (c *Cache) Load(path string) (*Raster, error) {
	c.mu.RLock()
	if r, ok := c.rasters[path]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	r, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rasters[path] = r
	c.mu.Unlock()

	return r, nil
}

// Len returns the number of cached rasters.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rasters)
}

// Clear removes all rasters from the cache and returns how many were held.
func (c *Cache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.rasters)
	c.rasters = make(map[string]*Raster)
	return n
}

// Evict removes the raster loaded from path and reports whether it was
// cached. Unknown paths are ignored.
func (c *Cache) Evict(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.rasters[path]
	delete(c.rasters, path)
	return ok
}
