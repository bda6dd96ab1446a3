package practice

import (
	"errors"
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/keymap"
)

func TestSessionAppliesEvents(t *testing.T) {
	clock := newFakeClock()
	s := NewSession(SessionOptions{TrailLen: 3, Now: clock.Now})
	goal := Goal{Char: 'a', Finger: keymap.LeftPinky}

	s.Apply(ChunkUpdated{Goal: goal, Pending: "s as"})
	if s.Goal() != goal || s.Pending() != "s as" {
		t.Fatalf("unexpected frame %v %q", s.Goal(), s.Pending())
	}
	s.Apply(CharCompleted{Goal: goal, Attempts: 1})
	clock.Advance(250 * time.Millisecond)
	s.Apply(CharCompleted{Goal: Goal{Char: 's', Finger: keymap.LeftRing}, Attempts: 2})

	if s.Stats.Typed() != 2 || s.Stats.Attempts() != 3 {
		t.Fatalf("unexpected stats typed=%d attempts=%d", s.Stats.Typed(), s.Stats.Attempts())
	}
	if s.Trail.String() != "as" {
		t.Fatalf("unexpected trail %q", s.Trail.String())
	}
	iv := s.Intervals()
	if len(iv) != 1 || iv[0] != 250 {
		t.Fatalf("unexpected intervals %v", iv)
	}
	if s.Countdown() != "" {
		t.Fatalf("expected no countdown without budget")
	}
}

func TestSessionIgnoresEventsAfterEnd(t *testing.T) {
	s := NewSession(SessionOptions{})
	failure := errors.New("boom")
	if !s.Apply(SessionEnded{Err: failure}) {
		t.Fatalf("expected session to end")
	}
	s.Apply(CharCompleted{Goal: Goal{Char: 'a'}, Attempts: 1})
	if !s.Stats.Empty() {
		t.Fatalf("expected completions after end to be ignored")
	}
	if !errors.Is(s.Err(), failure) {
		t.Fatalf("expected error to be kept, got %v", s.Err())
	}
}

func TestSessionBudget(t *testing.T) {
	clock := newFakeClock()
	start := clock.Now()
	s := NewSession(SessionOptions{Budget: 90 * time.Second, Now: clock.Now})
	if s.Countdown() != "01:30" {
		t.Fatalf("expected 01:30, got %q", s.Countdown())
	}
	if s.Apply(Elapsed{At: start.Add(29500 * time.Millisecond)}) {
		t.Fatalf("expected session to continue")
	}
	if s.Countdown() != "01:01" {
		t.Fatalf("expected 01:01, got %q", s.Countdown())
	}
	if !s.Apply(Elapsed{At: start.Add(90 * time.Second)}) {
		t.Fatalf("expected budget to end the session")
	}
	if left, ok := s.Remaining(); !ok || left != 0 {
		t.Fatalf("expected 0 remaining, got %v %v", left, ok)
	}
	if s.Err() != nil {
		t.Fatalf("expected budget expiry not to be an error")
	}
}

func TestTrailDropsOldest(t *testing.T) {
	tr := NewTrail(3)
	for _, r := range "abcde" {
		tr.Add(r)
	}
	if tr.String() != "cde" {
		t.Fatalf("expected cde, got %q", tr.String())
	}
	empty := NewTrail(0)
	empty.Add('a')
	if empty.String() != "" {
		t.Fatalf("expected zero-capacity trail to stay empty")
	}
}

func TestTallyFingers(t *testing.T) {
	tally := NewTally()
	tally.Record(Goal{Char: 'a', Finger: keymap.LeftPinky}, 1)
	tally.Record(Goal{Char: 'q', Finger: keymap.LeftPinky}, 3)
	tally.Record(Goal{Char: 'j', Finger: keymap.RightIndex}, 1)
	tally.Record(Goal{Char: ' '}, 2)

	chars := tally.Chars()
	if len(chars) != 4 || chars[0].Char != ' ' {
		t.Fatalf("unexpected chars %+v", chars)
	}
	fingers := tally.Fingers()
	if len(fingers) != 2 {
		t.Fatalf("expected 2 fingers, got %+v", fingers)
	}
	if fingers[0].Finger != keymap.LeftPinky || fingers[0].Completed != 2 || fingers[0].Misses != 2 {
		t.Fatalf("unexpected left pinky tally %+v", fingers[0])
	}
	if fingers[1].Finger != keymap.RightIndex || fingers[1].Misses != 0 {
		t.Fatalf("unexpected right index tally %+v", fingers[1])
	}
}

func TestSessionMissedTracksCurrentGoal(t *testing.T) {
	s := NewSession(SessionOptions{})
	a := Goal{Char: 'a', Finger: keymap.LeftPinky}
	b := Goal{Char: 's', Finger: keymap.LeftRing}

	s.Apply(ChunkUpdated{Goal: a})
	s.Apply(KeyMissed{Goal: b, Char: 'x'})
	if s.Missed() {
		t.Fatalf("a miss for another goal must not flag the current one")
	}
	s.Apply(KeyMissed{Goal: a, Char: 'x'})
	if !s.Missed() {
		t.Fatalf("expected miss flag")
	}
	s.Apply(ChunkUpdated{Goal: b})
	if s.Missed() {
		t.Fatalf("expected miss flag reset on new goal")
	}
}
