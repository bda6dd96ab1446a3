package keysource

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/verte-zerg/keydrill/internal/practice"
)

// FromTcell translates a tcell key event. Escape and Ctrl-C cancel.
func FromTcell(ev *tcell.EventKey) practice.KeyEvent {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return practice.CancelKey()
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModAlt|tcell.ModCtrl) != 0 {
			return practice.OtherKey()
		}
		return practice.CharKey(ev.Rune())
	default:
		return practice.OtherKey()
	}
}

// Poller is the subset of tcell.Screen used to read events.
type Poller interface {
	PollEvent() tcell.Event
}

// Poll forwards key presses from scr to keys until the screen is finalized
// or ctx is done. Other events are dropped.
func Poll(ctx context.Context, scr Poller, keys chan<- practice.KeyEvent) {
	for {
		ev := scr.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		select {
		case keys <- FromTcell(key):
		case <-ctx.Done():
			return
		}
	}
}
