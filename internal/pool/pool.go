// Package pool recycles expensive objects such as mesh buffers between
// generation runs.
package pool

import (
	"sync"

	"golang.org/x/sync/syncmap"
)

// Stats is a snapshot of pool counters.
type Stats struct {
	Gets      uint64
	Puts      uint64
	Allocated uint64
	Idle      int
}

// Active is the number of objects handed out and not yet returned.
func (s Stats) Active() int { return int(s.Gets) - int(s.Puts) }

// Pool is a mutex-guarded free list. Unlike sync.Pool it never drops idle
// objects, so a fixed-capacity mesh is allocated once per slot.
type Pool[T any] struct {
	mu    sync.Mutex
	idle  []T
	new   func() T
	reset func(T)
	stats Stats
}

// New returns a pool that allocates with newFn. reset, when not nil, runs on
// every object passed to Put.
func New[T any](newFn func() T, reset func(T)) *Pool[T] {
	return &Pool[T]{new: newFn, reset: reset}
}

// Get returns an idle object or allocates a new one.
func (p *Pool[T]) Get() T {
	p.mu.Lock()
	p.stats.Gets++
	if n := len(p.idle); n > 0 {
		v := p.idle[n-1]
		var zero T
		p.idle[n-1] = zero
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return v
	}
	p.stats.Allocated++
	p.mu.Unlock()
	return p.new()
}

// Put returns v to the pool.
func (p *Pool[T]) Put(v T) {
	if p.reset != nil {
		p.reset(v)
	}
	p.mu.Lock()
	p.stats.Puts++
	p.idle = append(p.idle, v)
	p.mu.Unlock()
}

// Stats returns the current counters.
func (p *Pool[T]) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Idle = len(p.idle)
	return s
}

// Registry holds one pool per capacity. Pools are created on first use and
// shared by every caller asking for the same capacity.
type Registry[T any] struct {
	pools syncmap.Map
	alloc func(capacity int) T
	reset func(T)
}

// NewRegistry returns a registry whose pools allocate with alloc.
func NewRegistry[T any](alloc func(capacity int) T, reset func(T)) *Registry[T] {
	return &Registry[T]{alloc: alloc, reset: reset}
}

// For returns the pool for capacity.
func (r *Registry[T]) For(capacity int) *Pool[T] {
	if v, ok := r.pools.Load(capacity); ok {
		return v.(*Pool[T])
	}
	p := New(func() T { return r.alloc(capacity) }, r.reset)
	v, _ := r.pools.LoadOrStore(capacity, p)
	return v.(*Pool[T])
}

// Stats sums the counters of every pool.
func (r *Registry[T]) Stats() Stats {
	var total Stats
	r.pools.Range(func(_, v any) bool {
		s := v.(*Pool[T]).Stats()
		total.Gets += s.Gets
		total.Puts += s.Puts
		total.Allocated += s.Allocated
		total.Idle += s.Idle
		return true
	})
	return total
}
