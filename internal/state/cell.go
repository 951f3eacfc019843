package state

import (
	"errors"
	"sync"
	"sync/atomic"
	"weak"
)

var (
	// ErrLockContention reports that another holder currently owns the cell.
	// Callers drop the attempt and try again on a later event.
	ErrLockContention = errors.New("state cell is busy")

	// ErrHandleExpired reports that the owner has torn the cell down.
	ErrHandleExpired = errors.New("state cell has been released")
)

type cell[T any] struct {
	mu     sync.Mutex
	closed atomic.Bool
	value  T
}

// Owner is the single strong reference to a state cell. Everything else
// receives a Handle from Weak.
type Owner[T any] struct {
	cell *cell[T]
	once sync.Once
}

// NewOwner wraps value in a lock-guarded cell.
func NewOwner[T any](value T) *Owner[T] {
	return &Owner[T]{cell: &cell[T]{value: value}}
}

// Weak returns a non-owning handle. Handles never keep the cell alive.
func (o *Owner[T]) Weak() Handle[T] {
	return Handle[T]{ptr: weak.Make(o.cell)}
}

// TryAcquire attempts to lock the cell without blocking.
func (o *Owner[T]) TryAcquire() (*Guard[T], error) {
	return tryAcquire(o.cell)
}

// Acquire blocks until the cell is locked. Only the consumption loop that owns
// the cell calls it; every other reader uses TryAcquire and never holds a
// Guard across I/O, so the wait is bounded.
func (o *Owner[T]) Acquire() (*Guard[T], error) {
	c := o.cell
	if c == nil || c.closed.Load() {
		return nil, ErrHandleExpired
	}
	c.mu.Lock()
	if c.closed.Load() {
		c.mu.Unlock()
		return nil, ErrHandleExpired
	}
	return &Guard[T]{cell: c}, nil
}

// Close tears the cell down. It waits for the current holder, marks the cell
// closed so no handle resolves again, and drops the value.
func (o *Owner[T]) Close() {
	o.once.Do(func() {
		c := o.cell
		c.mu.Lock()
		c.closed.Store(true)
		var zero T
		c.value = zero
		c.mu.Unlock()
	})
}

// Handle is a weak, copyable reference to a cell.
type Handle[T any] struct {
	ptr weak.Pointer[cell[T]]
}

// Alive reports whether the owner still exists. It takes no lock.
func (h Handle[T]) Alive() bool {
	c := h.ptr.Value()
	return c != nil && !c.closed.Load()
}

// TryAcquire resolves the handle and attempts a non-blocking lock.
func (h Handle[T]) TryAcquire() (*Guard[T], error) {
	return tryAcquire(h.ptr.Value())
}

// With runs fn while holding the lock. The lock is released on every exit
// path, including a panic inside fn.
func (h Handle[T]) With(fn func(*T)) error {
	g, err := h.TryAcquire()
	if err != nil {
		return err
	}
	defer g.Release()
	fn(g.Value())
	return nil
}

func tryAcquire[T any](c *cell[T]) (*Guard[T], error) {
	if c == nil || c.closed.Load() {
		return nil, ErrHandleExpired
	}
	if !c.mu.TryLock() {
		return nil, ErrLockContention
	}
	if c.closed.Load() {
		c.mu.Unlock()
		return nil, ErrHandleExpired
	}
	return &Guard[T]{cell: c}, nil
}

// Guard grants exclusive access to the cell value until Release.
type Guard[T any] struct {
	cell     *cell[T]
	released bool
}

// Value returns the guarded value. It must not be retained after Release.
func (g *Guard[T]) Value() *T {
	return &g.cell.value
}

// Release unlocks the cell. Calling it more than once is harmless.
func (g *Guard[T]) Release() {
	if g == nil || g.released {
		return
	}
	g.released = true
	g.cell.mu.Unlock()
}
