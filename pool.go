package sview

import "sync"

// defaultPool backs AllocPicture.
var defaultPool = newBufferPool(4)

// bufferPool is a thread-safe pool for reusing picture buffers.
//
// Buffers are grouped by byte length, so pictures of identical size and
// format share a bucket. This reduces GC pressure for producers that stream
// frames of a fixed size. Buffers are not cleared on reuse.
type bufferPool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// newBufferPool creates a pool retaining at most maxPerBucket buffers of each
// size. A maxPerBucket of 0 means unlimited.
func newBufferPool(maxPerBucket int) *bufferPool {
	return &bufferPool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// get returns a buffer of exactly n bytes, reused from the pool if possible.
func (p *bufferPool) get(n int) []byte {
	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()
		return buf
	}
	p.mu.Unlock()
	return make([]byte, n)
}

// put returns a buffer to the pool. Empty buffers and buffers beyond the
// bucket capacity are discarded.
func (p *bufferPool) put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	n := len(buf)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.maxSize > 0 && len(p.buckets[n]) >= p.maxSize {
		return
	}
	p.buckets[n] = append(p.buckets[n], buf)
}

// size returns the number of buffers held for byte length n.
func (p *bufferPool) size(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buckets[n])
}
