package practice

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/verte-zerg/keydrill/internal/keymap"
)

func homeKeys(t *testing.T) keymap.KeyMap {
	t.Helper()
	km, err := keymap.New(map[rune]keymap.Finger{'a': keymap.LeftPinky, 's': keymap.LeftRing})
	if err != nil {
		t.Fatalf("new keymap: %v", err)
	}
	return km
}

func newSelector(t *testing.T, km keymap.KeyMap, mode Mode, words []string) *Selector {
	t.Helper()
	sel, err := NewSelector(km, mode, words, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	return sel
}

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// blockingSource never produces a key; it returns once ctx is done.
type blockingSource struct{}

func (blockingSource) NextKey(ctx context.Context) (KeyEvent, error) {
	<-ctx.Done()
	return KeyEvent{}, ctx.Err()
}
