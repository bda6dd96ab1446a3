// Package keysource adapts terminal and network key streams to practice.KeySource.
package keysource

import (
	"context"
	"errors"

	"github.com/verte-zerg/keydrill/internal/practice"
)

// ErrClosed is returned once the key channel has been closed.
var ErrClosed = errors.New("key source closed")

// Chan is a KeySource fed by producers writing to channels. Errors received
// on errs end the session.
type Chan struct {
	keys <-chan practice.KeyEvent
	errs <-chan error
}

// NewChan returns a source reading keys and errs. errs may be nil.
func NewChan(keys <-chan practice.KeyEvent, errs <-chan error) *Chan {
	return &Chan{keys: keys, errs: errs}
}

// NextKey implements practice.KeySource.
func (c *Chan) NextKey(ctx context.Context) (practice.KeyEvent, error) {
	select {
	case <-ctx.Done():
		return practice.KeyEvent{}, ctx.Err()
	case err := <-c.errs:
		return practice.KeyEvent{}, err
	case ev, ok := <-c.keys:
		if !ok {
			return practice.KeyEvent{}, ErrClosed
		}
		return ev, nil
	}
}
