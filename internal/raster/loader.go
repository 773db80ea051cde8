package raster

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// Cache keeps decoded rasters in memory to avoid redundant disk reads.
//
// Entries are keyed by the exact path string and the layout used to decode
// them, so the same file read with two different layouts yields two entries.
//
// Cache is safe for concurrent use by multiple goroutines. Cached buffers
// are immutable and may be shared freely.
//
// # Memory Management
//
// A default-layout frame holds about 4.6 MB of intensities plus alpha.
// Long-running processes should call Evict or Clear once a file is no
// longer needed.
type Cache struct {
	mu      sync.RWMutex
	buffers map[cacheKey]*Buffer
}

type cacheKey struct {
	path   string
	layout Layout
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{
		buffers: make(map[cacheKey]*Buffer),
	}
}

// Load returns the cached buffer for path, decoding the file on first use.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns a *DecodeError if the file is too short for layout
func (c *Cache) Load(path string, layout Layout) (*Buffer, error) {
	key := cacheKey{path: path, layout: layout}

	c.mu.RLock()
	if b, ok := c.buffers[key]; ok {
		c.mu.RUnlock()
		return b, nil
	}
	c.mu.RUnlock()

	b, err := LoadFile(path, layout)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[key] = b
	c.mu.Unlock()

	return b, nil
}

// Clear removes every cached buffer.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[cacheKey]*Buffer)
	c.mu.Unlock()
}

// Evict removes all entries for path, whatever layout they were decoded with.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	for k := range c.buffers {
		if k.path == path {
			delete(c.buffers, k)
		}
	}
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buffers)
}

// LoadFile decodes a raw raster file without caching.
//
// A file shorter than layout.Size() is reported as TooSmall before any
// pixel data is read; a read that still comes up short is Truncated.
func LoadFile(path string, layout Layout) (*Buffer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raster: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat raster: %w", err)
	}
	if stat.Size() < int64(layout.Size()) {
		return nil, &DecodeError{
			Kind:   TooSmall,
			Detail: fmt.Sprintf("%s has %d bytes, need %d", path, stat.Size(), layout.Size()),
		}
	}

	return Decode(bufio.NewReaderSize(f, 1<<16), layout)
}

// Info describes a decoded raster.
type Info struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// HasAlpha reports whether alpha metadata was carried over from the source.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the source file, or 0 for in-memory buffers.
	FileSizeBytes int64 `json:"file_size_bytes,omitempty"`

	// Layout is the layout the raster was decoded with, when known.
	Layout *Layout `json:"layout,omitempty"`
}

// Describe returns the Info of a buffer.
func Describe(b *Buffer) *Info {
	return &Info{
		Width:    b.Width(),
		Height:   b.Height(),
		HasAlpha: b.alpha != nil,
	}
}

// LoadInfo loads a raster through the cache and reports its metadata.
func LoadInfo(cache *Cache, path string, layout Layout) (*Info, error) {
	b, err := cache.Load(path, layout)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := Describe(b)
	info.FileSizeBytes = stat.Size()
	info.Layout = &layout
	return info, nil
}
