package practice

import (
	"fmt"
	"time"
)

// SessionOptions configures a Session.
type SessionOptions struct {
	// Budget ends the session once this much time has elapsed. Zero means unlimited.
	Budget time.Duration
	// TrailLen is the number of recently typed characters kept for display.
	TrailLen int
	// Now is the clock; time.Now when nil.
	Now func() time.Time
}

// Session is the consumer-side state of a practice session. It is the only
// mutator of Stats and must be driven from a single goroutine.
type Session struct {
	Stats *Stats
	Trail *Trail
	Tally *Tally

	goal    Goal
	pending string
	missed  bool

	now       func() time.Time
	budget    time.Duration
	startedAt time.Time
	lastTick  time.Time

	lastDone  time.Time
	intervals []float64

	ended bool
	err   error
}

// NewSession starts a session clock now.
func NewSession(opts SessionOptions) *Session {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	started := now()
	return &Session{
		Stats:     NewStats(now),
		Trail:     NewTrail(opts.TrailLen),
		Tally:     NewTally(),
		now:       now,
		budget:    opts.Budget,
		startedAt: started,
		lastTick:  started,
	}
}

// Apply folds ev into the session and reports whether it has ended.
// Events arriving after the end are ignored.
func (s *Session) Apply(ev Event) bool {
	if s.ended {
		return true
	}
	switch ev := ev.(type) {
	case ChunkUpdated:
		s.goal = ev.Goal
		s.pending = ev.Pending
		s.missed = false
	case KeyMissed:
		if ev.Goal == s.goal {
			s.missed = true
		}
	case CharCompleted:
		s.Stats.Record(ev.Attempts)
		s.Tally.Record(ev.Goal, ev.Attempts)
		s.Trail.Add(ev.Goal.Char)
		s.markCompletion()
	case Elapsed:
		s.lastTick = ev.At
		if s.budget > 0 && ev.At.Sub(s.startedAt) >= s.budget {
			s.ended = true
		}
	case SessionEnded:
		s.ended = true
		s.err = ev.Err
	}
	return s.ended
}

func (s *Session) markCompletion() {
	t := s.now()
	if !s.lastDone.IsZero() {
		s.intervals = append(s.intervals, float64(t.Sub(s.lastDone).Milliseconds()))
	}
	s.lastDone = t
}

// Goal returns the current goal.
func (s *Session) Goal() Goal {
	return s.goal
}

// Missed reports whether a wrong key was pressed for the current goal.
func (s *Session) Missed() bool {
	return s.missed
}

// Pending returns the visible text after the goal.
func (s *Session) Pending() string {
	return s.pending
}

// Ended reports whether the session is over.
func (s *Session) Ended() bool {
	return s.ended
}

// Err returns the failure that ended the session, if any.
func (s *Session) Err() error {
	return s.err
}

// Intervals returns milliseconds between consecutive completions.
func (s *Session) Intervals() []float64 {
	out := make([]float64, len(s.intervals))
	copy(out, s.intervals)
	return out
}

// Remaining returns the budget left as of the last tick, and false when the
// session is unlimited.
func (s *Session) Remaining() (time.Duration, bool) {
	if s.budget <= 0 {
		return 0, false
	}
	left := s.budget - s.lastTick.Sub(s.startedAt)
	if left < 0 {
		left = 0
	}
	return left, true
}

// Countdown formats Remaining as mm:ss, or "" when unlimited.
func (s *Session) Countdown() string {
	left, ok := s.Remaining()
	if !ok {
		return ""
	}
	secs := int((left + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
