// Package captioncache provides a thread-safe, sharded LRU cache of
// rasterized captions.
//
// Producers rasterize captions on their own goroutines, and most streams
// repeat a handful of strings. Sharding keeps concurrent producers from
// contending on one lock.
package captioncache

import (
	"hash/maphash"
	"sync"
	"sync/atomic"
)

const (
	// ShardCount is the number of shards. Must be a power of 2.
	ShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 64

	shardMask = ShardCount - 1
)

// Key identifies a rasterized caption.
type Key struct {
	Text      string
	GlyphSize int
	MaxWidth  int
	MaxHeight int
}

// Bitmap is a rasterized caption: Height rows of Width tightly packed RGBA
// pixels. A zero Bitmap means there was nothing to draw.
//
// Bitmaps are shared between callers and must not be modified.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

// Empty reports whether b has no pixels.
func (b Bitmap) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Stats holds cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache maps caption keys to bitmaps.
type Cache struct {
	shards   [ShardCount]*shard
	seed     maphash.Seed
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard struct {
	mu      sync.Mutex
	entries map[Key]*node
	lru     list
}

// New creates a cache holding up to capacity entries per shard. If capacity
// <= 0, DefaultCapacity is used.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{seed: maphash.MakeSeed(), capacity: capacity}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[Key]*node)}
	}
	return c
}

func (c *Cache) shard(k Key) *shard {
	return c.shards[maphash.String(c.seed, k.Text)&shardMask]
}

// GetOrCreate returns the bitmap for k, calling create on a miss. create
// runs with the shard locked so concurrent misses on one key rasterize once.
func (c *Cache) GetOrCreate(k Key, create func() Bitmap) Bitmap {
	s := c.shard(k)
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.entries[k]; ok {
		s.lru.moveToFront(n)
		c.hits.Add(1)
		return n.value
	}
	c.misses.Add(1)

	value := create()
	for s.lru.len >= c.capacity {
		oldest := s.lru.removeOldest()
		if oldest == nil {
			break
		}
		delete(s.entries, oldest.key)
		c.evictions.Add(1)
	}
	s.entries[k] = s.lru.pushFront(k, value)
	return value
}

// Len returns the number of cached bitmaps.
func (c *Cache) Len() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += len(s.entries)
		s.mu.Unlock()
	}
	return total
}

// Stats returns the current counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
