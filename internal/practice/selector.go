package practice

import (
	"errors"
	"math/rand"

	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/wordlist"
)

// ErrEmptyPool is returned when no practice material can be typed with the key map.
var ErrEmptyPool = errors.New("no practice material matches the selected key set")

// Selector draws practice units uniformly from a pool fixed at construction.
type Selector struct {
	keys keymap.KeyMap
	mode Mode
	pool []string
	rnd  *rand.Rand
}

// NewSelector builds the eligible pool for mode. Words are only used by
// WordChunk and are filtered to those fully covered by keys.
func NewSelector(keys keymap.KeyMap, mode Mode, words []string, rnd *rand.Rand) (*Selector, error) {
	if rnd == nil {
		return nil, errors.New("random source is required")
	}
	pool := buildPool(keys, mode, words)
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}
	return &Selector{keys: keys, mode: mode, pool: pool, rnd: rnd}, nil
}

func buildPool(keys keymap.KeyMap, mode Mode, words []string) []string {
	switch mode {
	case SingleChar:
		runes := keys.Runes()
		pool := make([]string, len(runes))
		for i, r := range runes {
			pool[i] = string(r)
		}
		return pool
	case HomeRowDrill:
		runes := keys.Runes()
		pool := make([]string, 0, len(runes)*len(runes))
		for _, a := range runes {
			for _, b := range runes {
				pool = append(pool, string([]rune{a, b}))
			}
		}
		return pool
	default:
		return wordlist.Filter(words, wordlist.FilterForKeyMap(keys))
	}
}

// Choose draws one unit.
func (s *Selector) Choose() string {
	return s.pool[s.rnd.Intn(len(s.pool))]
}

// ChooseN draws n independent units; repeats are allowed.
func (s *Selector) ChooseN(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, s.Choose())
	}
	return out
}

// Finger looks up the finger assigned to r.
func (s *Selector) Finger(r rune) (keymap.Finger, bool) {
	return s.keys.Finger(r)
}

// Mode returns the mode the pool was built for.
func (s *Selector) Mode() Mode {
	return s.mode
}

// PoolSize returns the number of eligible units.
func (s *Selector) PoolSize() int {
	return len(s.pool)
}
