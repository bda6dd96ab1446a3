package practice

import (
	"context"
	"fmt"
	"io"
)

// KeyKind classifies a key press.
type KeyKind int

const (
	// KeyChar is a printable character key.
	KeyChar KeyKind = iota
	// KeyCancel requests the end of the session.
	KeyCancel
	// KeyOther is any key that is neither a character nor cancel.
	KeyOther
)

// KeyEvent is one discrete key press.
type KeyEvent struct {
	Kind KeyKind
	Char rune
}

// CharKey returns a character key event.
func CharKey(r rune) KeyEvent {
	return KeyEvent{Kind: KeyChar, Char: r}
}

// CancelKey returns a cancel event.
func CancelKey() KeyEvent {
	return KeyEvent{Kind: KeyCancel}
}

// OtherKey returns an unrecognized key event.
func OtherKey() KeyEvent {
	return KeyEvent{Kind: KeyOther}
}

// KeySource is a blocking source of key events delivered in arrival order.
type KeySource interface {
	NextKey(ctx context.Context) (KeyEvent, error)
}

// Outcome is the result of one attempt cycle: either the goal was matched
// after Attempts presses, or the user asked to exit.
type Outcome struct {
	Attempts int
	Exit     bool
}

func (o Outcome) String() string {
	if o.Exit {
		return "Exit"
	}
	return fmt.Sprintf("Continue(%d)", o.Attempts)
}

// Attempt blocks on src until goal is typed or cancel is pressed. Every
// non-matching character counts as one failed attempt; other keys are ignored.
// Source errors are returned as is and end the session.
func Attempt(ctx context.Context, src KeySource, goal rune) (Outcome, error) {
	misses := 0
	for {
		ev, err := src.NextKey(ctx)
		if err != nil {
			return Outcome{}, err
		}
		switch ev.Kind {
		case KeyCancel:
			return Outcome{Exit: true}, nil
		case KeyChar:
			if ev.Char == goal {
				return Outcome{Attempts: misses + 1}, nil
			}
			misses++
		}
	}
}

// Script is a finite, pre-recorded key source. It returns io.EOF once drained.
type Script struct {
	events []KeyEvent
	pos    int
}

// NewScript returns a source replaying events.
func NewScript(events ...KeyEvent) *Script {
	return &Script{events: events}
}

// TypeString returns a source that types each rune of s.
func TypeString(s string) *Script {
	events := make([]KeyEvent, 0, len(s))
	for _, r := range s {
		events = append(events, CharKey(r))
	}
	return NewScript(events...)
}

// Then appends events to the script.
func (s *Script) Then(events ...KeyEvent) *Script {
	s.events = append(s.events, events...)
	return s
}

// NextKey implements KeySource.
func (s *Script) NextKey(ctx context.Context) (KeyEvent, error) {
	if err := ctx.Err(); err != nil {
		return KeyEvent{}, err
	}
	if s.pos >= len(s.events) {
		return KeyEvent{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

// Remaining returns how many events have not been consumed.
func (s *Script) Remaining() int {
	return len(s.events) - s.pos
}
