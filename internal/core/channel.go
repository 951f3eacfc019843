package core

import (
	"context"
	"errors"
	"sync"
)

// ErrChannelClosed is returned by Receive once the channel is closed and drained.
var ErrChannelClosed = errors.New("dispatch channel closed")

// Channel is an unbounded multi-producer, single-consumer message queue.
// Send never blocks; messages from one producer arrive in send order.
type Channel struct {
	mu     sync.Mutex
	queue  []Message
	closed bool
	ready  chan struct{} // capacity 1; signalled when queue becomes non-empty
}

// NewChannel returns an empty, open channel.
func NewChannel() *Channel {
	return &Channel{ready: make(chan struct{}, 1)}
}

// Send enqueues msg. It reports false when the channel is closed.
func (c *Channel) Send(msg Message) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.queue = append(c.queue, msg)
	c.mu.Unlock()

	select {
	case c.ready <- struct{}{}:
	default:
	}
	return true
}

// Receive waits for the next message. Messages queued before Close are still
// delivered; after that it returns ErrChannelClosed.
func (c *Channel) Receive(ctx context.Context) (Message, error) {
	for {
		c.mu.Lock()
		if len(c.queue) > 0 {
			msg := c.queue[0]
			c.queue[0] = nil
			c.queue = c.queue[1:]
			c.mu.Unlock()
			return msg, nil
		}
		closed := c.closed
		c.mu.Unlock()
		if closed {
			return nil, ErrChannelClosed
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.ready:
		}
	}
}

// Len returns the number of queued messages.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Close stops accepting messages and wakes the consumer.
func (c *Channel) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	select {
	case c.ready <- struct{}{}:
	default:
	}
}
