package image

import (
	"fmt"
	"sync"
)

type buffer[M any] struct {
	data  M
	locks int
}

// bufferPool recycles snapshot buffers. The mutex covers acquire, lock and
// unlock only; a buffer is written by the store alone while nobody holds it.
type bufferPool[M any] struct {
	mu        sync.Mutex
	buffers   []*buffer[M]
	alloc     func() M
	allocated int
}

func newBufferPool[M any](alloc func() M) *bufferPool[M] {
	return &bufferPool[M]{alloc: alloc}
}

// acquire returns the first unlocked buffer, allocating only when every
// buffer is held by a consumer.
func (p *bufferPool[M]) acquire() *buffer[M] {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, b := range p.buffers {
		if b.locks == 0 {
			return b
		}
	}
	b := &buffer[M]{data: p.alloc()}
	p.buffers = append(p.buffers, b)
	p.allocated++
	return b
}

// write runs fill on an unlocked buffer.
func (p *bufferPool[M]) write(b *buffer[M], fill func(M)) {
	p.mu.Lock()
	locks := b.locks
	p.mu.Unlock()

	if locks > 0 {
		panic(&BufferLockedError{Locks: locks})
	}
	fill(b.data)
}

func (p *bufferPool[M]) lock(b *buffer[M]) {
	p.mu.Lock()
	b.locks++
	p.mu.Unlock()
}

func (p *bufferPool[M]) unlock(b *buffer[M]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if b.locks == 0 {
		panic(fmt.Errorf("image: %w", ErrNotLocked))
	}
	b.locks--
}

// stats returns the number of buffers ever allocated and how many are
// currently locked.
func (p *bufferPool[M]) stats() (allocated, locked int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, b := range p.buffers {
		if b.locks > 0 {
			locked++
		}
	}
	return p.allocated, locked
}
