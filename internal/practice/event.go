package practice

import "time"

// Event is produced by the worker or the ticker and applied by the single
// consumer that owns the Session.
type Event interface {
	event()
}

// ChunkUpdated announces a new goal and the pending text after it.
type ChunkUpdated struct {
	Goal    Goal
	Pending string
}

// CharCompleted reports that Goal was typed after Attempts presses.
type CharCompleted struct {
	Goal     Goal
	Attempts int
}

// KeyMissed reports a wrong character pressed while Goal was expected.
type KeyMissed struct {
	Goal Goal
	Char rune
}

// SessionEnded is the worker's final event. Err is nil on cancel.
type SessionEnded struct {
	Err error
}

// Elapsed is a timer tick.
type Elapsed struct {
	At time.Time
}

func (ChunkUpdated) event()  {}
func (CharCompleted) event() {}
func (KeyMissed) event()     {}
func (SessionEnded) event()  {}
func (Elapsed) event()       {}
