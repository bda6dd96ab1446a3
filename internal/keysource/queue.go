package keysource

import (
	"context"
	"sync"

	"github.com/verte-zerg/keydrill/internal/practice"
)

// Queue is an unbounded FIFO KeySource. Push never blocks and never drops a
// press, so it can be fed from a UI event loop.
type Queue struct {
	mu     sync.Mutex
	events []practice.KeyEvent
	ready  chan struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{ready: make(chan struct{}, 1)}
}

// Push appends events in order.
func (q *Queue) Push(events ...practice.KeyEvent) {
	if len(events) == 0 {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// NextKey implements practice.KeySource.
func (q *Queue) NextKey(ctx context.Context) (practice.KeyEvent, error) {
	for {
		q.mu.Lock()
		if len(q.events) > 0 {
			ev := q.events[0]
			q.events = q.events[1:]
			q.mu.Unlock()
			return ev, nil
		}
		q.mu.Unlock()
		select {
		case <-ctx.Done():
			return practice.KeyEvent{}, ctx.Err()
		case <-q.ready:
		}
	}
}
