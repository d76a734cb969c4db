package generator

import (
	"sync"
	"sync/atomic"
)

// MainQueue carries continuations from worker goroutines back to the driver
// goroutine. Workers Post; the driver calls Drain once per tick.
type MainQueue struct {
	mu    sync.Mutex
	tasks []func()
}

// Post schedules fn for the next Drain. Safe for concurrent use.
func (q *MainQueue) Post(fn func()) {
	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()
}

// Len returns the number of waiting continuations.
func (q *MainQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs the continuations posted so far and returns how many ran.
// Continuations posted while draining wait for the next call.
func (q *MainQueue) Drain() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
	return len(tasks)
}

// Token is a cooperative cancellation flag. A token is cancelled when it or
// any of its parents is.
type Token struct {
	cancelled atomic.Bool
	parent    *Token
}

// NewToken returns a token linked to parent, which may be nil.
func NewToken(parent *Token) *Token {
	return &Token{parent: parent}
}

// Cancel cancels t and every token linked to it.
func (t *Token) Cancel() { t.cancelled.Store(true) }

// Cancelled reports whether t or a parent was cancelled.
func (t *Token) Cancelled() bool {
	for c := t; c != nil; c = c.parent {
		if c.cancelled.Load() {
			return true
		}
	}
	return false
}
