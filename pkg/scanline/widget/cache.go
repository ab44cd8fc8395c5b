package widget

import "image"

const defaultMaxCacheSize = 16

// RasterCache keeps recently rasterised images keyed by source and size,
// evicting the least recently used entry once full.
type RasterCache struct {
	images  map[string]*image.RGBA
	order   []string // least recently used first
	maxSize int
}

func NewRasterCache() *RasterCache {
	return NewRasterCacheWithSize(defaultMaxCacheSize)
}

func NewRasterCacheWithSize(maxSize int) *RasterCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &RasterCache{
		images:  make(map[string]*image.RGBA),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func (c *RasterCache) Get(key string) *image.RGBA {
	if img, exists := c.images[key]; exists {
		c.moveToEnd(key)
		return img
	}
	return nil
}

// Set stores img under key, evicting the least recently used entry when
// the cache is full.
func (c *RasterCache) Set(key string, img *image.RGBA) {
	if _, exists := c.images[key]; exists {
		c.images[key] = img
		c.moveToEnd(key)
		return
	}
	if len(c.order) >= c.maxSize {
		c.evictOldest()
	}
	c.images[key] = img
	c.order = append(c.order, key)
}

func (c *RasterCache) Len() int {
	return len(c.order)
}

func (c *RasterCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

func (c *RasterCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.images, oldest)
}

// Purge drops every cached image.
func (c *RasterCache) Purge() {
	clear(c.images)
	c.order = c.order[:0]
}
