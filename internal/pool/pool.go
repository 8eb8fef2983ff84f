// Package pool provides a bucketed byte-buffer pool for short-lived pixel
// buffers such as glyph coverage masks.
package pool

import (
	"math/bits"
	"sync"
)

// minClass is the smallest bucket, 64 bytes.
const minClass = 6

// Pool is a thread-safe pool of byte slices grouped by power-of-two
// capacity class.
//
// Thread safety: All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// New creates a pool retaining at most maxPerBucket buffers per class.
// A maxPerBucket of 0 means unlimited.
func New(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// class returns the capacity class for n bytes.
func class(n int) int {
	if n <= 1<<minClass {
		return minClass
	}
	return bits.Len(uint(n - 1))
}

// Get returns a zeroed slice of length n, reusing a pooled buffer when one
// of the right class is available.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}
	c := class(n)

	p.mu.Lock()
	bucket := p.buckets[c]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[c] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		buf = buf[:n]
		clear(buf)
		return buf
	}
	p.mu.Unlock()

	return make([]byte, n, 1<<c)
}

// Put returns buf to the pool. Buffers that did not come from Get (their
// capacity is not a class size) and buffers beyond the bucket limit are
// dropped.
func (p *Pool) Put(buf []byte) {
	if cap(buf) == 0 {
		return
	}
	c := class(cap(buf))
	if 1<<c != cap(buf) {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[c]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[c] = append(bucket, buf[:0])
}

// Len returns the number of pooled buffers across all classes.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
