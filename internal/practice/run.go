package practice

import (
	"context"
	"errors"
	"time"
)

// Sink receives the session after every applied event.
type Sink interface {
	Render(s *Session)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(s *Session)

// Render implements Sink.
func (f SinkFunc) Render(s *Session) {
	f(s)
}

// Run drives a session on the calling goroutine: one cycle at a time, no
// timer. It returns the error that ended the session, if any.
func Run(ctx context.Context, window *Window, src KeySource, session *Session, sink Sink) error {
	NewWorker(window).Run(ctx, src, func(ev Event) bool {
		done := session.Apply(ev)
		if sink != nil {
			sink.Render(session)
		}
		return !done
	})
	return session.Err()
}

// RunWithTicker runs the worker and, when tick > 0, a ticker on their own
// goroutines, and applies their events here in arrival order. Both producers
// are stopped before it returns.
func RunWithTicker(ctx context.Context, window *Window, src KeySource, session *Session, sink Sink, tick time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan Event, 16)
	done := make(chan struct{}, 2)
	producers := 1
	go func() {
		NewWorker(window).Run(ctx, src, Channel(ctx, events))
		done <- struct{}{}
	}()
	if tick > 0 {
		producers++
		go func() {
			Ticker(ctx, tick, events)
			done <- struct{}{}
		}()
	}

	err := drain(ctx, events, session, sink)
	cancel()
	for i := 0; i < producers; i++ {
		<-done
	}
	return err
}

func drain(ctx context.Context, events <-chan Event, session *Session, sink Sink) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			finished := session.Apply(ev)
			if sink != nil {
				sink.Render(session)
			}
			if finished {
				err := session.Err()
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		}
	}
}
