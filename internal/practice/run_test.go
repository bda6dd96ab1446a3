package practice

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"
)

func TestRunRoundTrip(t *testing.T) {
	sel := newSelector(t, homeKeys(t), WordChunk, []string{"as"})
	session := NewSession(SessionOptions{TrailLen: 4})
	src := TypeString("as as as").Then(CancelKey())

	if err := Run(context.Background(), NewWindow(sel, 20), src, session, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if session.Stats.Typed() != 8 || session.Stats.Attempts() != 8 {
		t.Fatalf("expected typed=attempts=8, got %d/%d", session.Stats.Typed(), session.Stats.Attempts())
	}
	if session.Stats.Snapshot().Accuracy != 100 {
		t.Fatalf("expected 100%% accuracy")
	}
	if session.Trail.String() != "s as" {
		t.Fatalf("unexpected trail %q", session.Trail.String())
	}
}

func TestRunCancelFirst(t *testing.T) {
	sel := newSelector(t, homeKeys(t), WordChunk, []string{"as", "sa"})
	session := NewSession(SessionOptions{})
	renders := 0
	sink := SinkFunc(func(*Session) { renders++ })

	if err := Run(context.Background(), NewWindow(sel, 20), NewScript(CancelKey()), session, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !session.Stats.Empty() {
		t.Fatalf("expected no stats update on immediate cancel")
	}
	if got := session.Stats.Snapshot().String(); got != "WPM: ----\tAccuracy: ----" {
		t.Fatalf("expected placeholder stats, got %q", got)
	}
	if renders != 2 {
		t.Fatalf("expected chunk and end renders, got %d", renders)
	}
}

func TestRunSourceFailure(t *testing.T) {
	sel := newSelector(t, homeKeys(t), SingleChar, nil)
	session := NewSession(SessionOptions{})
	err := Run(context.Background(), NewWindow(sel, 5), NewScript(), session, nil)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected source failure, got %v", err)
	}
}

func TestRunAttemptsNeverBelowTyped(t *testing.T) {
	sel := newSelector(t, homeKeys(t), WordChunk, []string{"as", "sa", "ass"})
	rnd := rand.New(rand.NewSource(7))
	keys := []rune("asdfx ")
	events := make([]KeyEvent, 0, 2000)
	for i := 0; i < 2000; i++ {
		if rnd.Intn(10) == 0 {
			events = append(events, OtherKey())
			continue
		}
		events = append(events, CharKey(keys[rnd.Intn(len(keys))]))
	}
	src := NewScript(events...).Then(CancelKey())
	session := NewSession(SessionOptions{})
	prevTyped, prevAttempts := 0, 0
	sink := SinkFunc(func(s *Session) {
		typed, attempts := s.Stats.Typed(), s.Stats.Attempts()
		if attempts < typed {
			t.Fatalf("attempts %d below typed %d", attempts, typed)
		}
		if typed < prevTyped || attempts < prevAttempts {
			t.Fatalf("counters decreased")
		}
		prevTyped, prevAttempts = typed, attempts
	})
	if err := Run(context.Background(), NewWindow(sel, 20), src, session, sink); err != nil {
		t.Fatalf("run: %v", err)
	}
	if session.Stats.Typed() == 0 {
		t.Fatalf("expected some completions")
	}
}

func TestRunWithTickerMatchesSingleThread(t *testing.T) {
	sel := newSelector(t, homeKeys(t), WordChunk, []string{"sa"})
	session := NewSession(SessionOptions{})
	src := TypeString("sxa s").Then(CancelKey())

	err := RunWithTicker(context.Background(), NewWindow(sel, 20), src, session, nil, time.Millisecond)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if session.Stats.Typed() != 4 || session.Stats.Attempts() != 5 {
		t.Fatalf("expected typed=4 attempts=5, got %d/%d", session.Stats.Typed(), session.Stats.Attempts())
	}
}

func TestRunWithTickerBudgetEndsSession(t *testing.T) {
	sel := newSelector(t, homeKeys(t), SingleChar, nil)
	session := NewSession(SessionOptions{Budget: 20 * time.Millisecond})

	done := make(chan error, 1)
	go func() {
		done <- RunWithTicker(context.Background(), NewWindow(sel, 5), blockingSource{}, session, nil, time.Millisecond)
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean end on budget, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("session did not end on budget")
	}
	if !session.Ended() {
		t.Fatalf("expected session to be ended")
	}
}
