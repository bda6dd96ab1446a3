package practice

import (
	"fmt"
	"time"
)

const (
	charsPerWord    = 5.0
	millisPerMinute = 60000.0
)

// Stats accumulates completed characters and attempts. It stays empty until
// the first completion; the clock starts at that completion.
type Stats struct {
	now      func() time.Time
	filled   bool
	start    time.Time
	end      time.Time
	typed    int
	attempts int
}

// NewStats returns empty stats using now as the clock (time.Now when nil).
func NewStats(now func() time.Time) *Stats {
	if now == nil {
		now = time.Now
	}
	return &Stats{now: now}
}

// Record adds one completed character that took attempts presses.
// Values below 1 count as 1 so attempts never fall below typed.
func (s *Stats) Record(attempts int) {
	if attempts < 1 {
		attempts = 1
	}
	t := s.now()
	if !s.filled {
		s.filled = true
		s.start = t
	}
	s.end = t
	s.typed++
	s.attempts += attempts
}

// Empty reports whether nothing has been completed yet.
func (s *Stats) Empty() bool {
	return !s.filled
}

// Typed returns the number of completed characters.
func (s *Stats) Typed() int {
	return s.typed
}

// Attempts returns the cumulative attempts over completed characters.
func (s *Stats) Attempts() int {
	return s.attempts
}

// Snapshot is a point-in-time view of the stats.
type Snapshot struct {
	Filled   bool
	Typed    int
	Attempts int
	Elapsed  time.Duration
	WPM      float64
	Accuracy float64
}

// Snapshot recomputes WPM and accuracy from the counters.
func (s *Stats) Snapshot() Snapshot {
	if !s.filled {
		return Snapshot{}
	}
	elapsed := s.end.Sub(s.start)
	return Snapshot{
		Filled:   true,
		Typed:    s.typed,
		Attempts: s.attempts,
		Elapsed:  elapsed,
		WPM:      wordsPerMinute(s.typed, elapsed),
		Accuracy: float64(s.typed) * 100 / float64(s.attempts),
	}
}

// wordsPerMinute is zero when less than a millisecond has elapsed.
func wordsPerMinute(typed int, elapsed time.Duration) float64 {
	ms := elapsed.Milliseconds()
	if ms <= 0 {
		return 0
	}
	return (float64(typed) / charsPerWord) / (float64(ms) / millisPerMinute)
}

// String renders the stats line; empty stats show placeholders.
func (s Snapshot) String() string {
	if !s.Filled {
		return "WPM: ----\tAccuracy: ----"
	}
	return fmt.Sprintf("WPM: %.2f\tAccuracy: %.2f%%", s.WPM, s.Accuracy)
}
