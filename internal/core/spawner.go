package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/five82/nimbus/internal/state"
)

const defaultTaskTimeout = 30 * time.Second

// Spawner runs background work that reports back by message only. A task
// never holds the state lock while it waits on I/O, and its result is
// discarded once the state handle no longer resolves.
type Spawner struct {
	ctx     context.Context
	handle  state.Handle[state.App]
	ch      *Channel
	log     *log.Logger
	timeout time.Duration

	wg       sync.WaitGroup
	inflight atomic.Int64
}

// NewSpawner builds a Spawner whose tasks run under ctx.
func NewSpawner(ctx context.Context, handle state.Handle[state.App], ch *Channel, logger *log.Logger, timeout time.Duration) *Spawner {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	return &Spawner{ctx: ctx, handle: handle, ch: ch, log: logger, timeout: timeout}
}

// Spawn starts task on its own goroutine. A nil result sends nothing.
// Tasks are never retried.
func (s *Spawner) Spawn(name string, task func(ctx context.Context) Message) {
	s.wg.Add(1)
	s.inflight.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inflight.Add(-1)

		ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
		msg := task(ctx)
		cancel()

		if msg == nil {
			return
		}
		if !s.handle.Alive() {
			s.log.Debug("state released, discarding task result", "task", name)
			return
		}
		if !s.ch.Send(msg) {
			s.log.Debug("channel closed, discarding task result", "task", name)
		}
	}()
}

// Inflight returns the number of tasks that have not finished.
func (s *Spawner) Inflight() int {
	return int(s.inflight.Load())
}

// Wait blocks until every spawned task has finished or ctx ends.
func (s *Spawner) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
