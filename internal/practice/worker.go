package practice

import (
	"context"
	"errors"
	"time"
)

var errStopped = errors.New("event consumer stopped")

// Emit delivers an event and reports whether the producer should continue.
type Emit func(Event) bool

// Worker runs the per-character cycle against a key source.
type Worker struct {
	window *Window
}

// NewWorker returns a worker drawing goals from window.
func NewWorker(window *Window) *Worker {
	return &Worker{window: window}
}

// Run repeats next goal, announce, attempt, report until the user cancels,
// the source fails or emit refuses an event. Cancel and failures are always
// followed by a SessionEnded event.
func (w *Worker) Run(ctx context.Context, src KeySource, emit Emit) {
	for {
		goal := w.window.Next()
		if !emit(ChunkUpdated{Goal: goal, Pending: w.window.View()}) {
			return
		}
		out, err := Attempt(ctx, &missReporter{src: src, goal: goal, emit: emit}, goal.Char)
		if errors.Is(err, errStopped) {
			return
		}
		if err != nil {
			emit(SessionEnded{Err: err})
			return
		}
		if out.Exit {
			emit(SessionEnded{})
			return
		}
		if !emit(CharCompleted{Goal: goal, Attempts: out.Attempts}) {
			return
		}
	}
}

// missReporter emits KeyMissed for every wrong character read from src.
type missReporter struct {
	src  KeySource
	goal Goal
	emit Emit
}

func (r *missReporter) NextKey(ctx context.Context) (KeyEvent, error) {
	ev, err := r.src.NextKey(ctx)
	if err != nil || ev.Kind != KeyChar || ev.Char == r.goal.Char {
		return ev, err
	}
	if !r.emit(KeyMissed{Goal: r.goal, Char: ev.Char}) {
		return KeyEvent{}, errStopped
	}
	return ev, nil
}

// Channel returns an Emit that sends on ch until ctx is done.
func Channel(ctx context.Context, ch chan<- Event) Emit {
	return func(ev Event) bool {
		select {
		case ch <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}
}

// Ticker sends an Elapsed event on ch every interval until ctx is done.
func Ticker(ctx context.Context, interval time.Duration, ch chan<- Event) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			select {
			case ch <- Elapsed{At: now}:
			case <-ctx.Done():
				return
			}
		}
	}
}
