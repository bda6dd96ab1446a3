package practice

import (
	"sort"

	"github.com/verte-zerg/keydrill/internal/keymap"
)

// CharTally counts completions and mis-keys for one goal character.
type CharTally struct {
	Char      rune
	Finger    keymap.Finger
	Completed int
	Misses    int
}

// FingerTally aggregates CharTally values for one finger.
type FingerTally struct {
	Finger    keymap.Finger
	Completed int
	Misses    int
}

// Tally breaks a session down per goal character.
type Tally struct {
	chars map[rune]*CharTally
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{chars: map[rune]*CharTally{}}
}

// Record adds a completion of goal that took attempts presses.
func (t *Tally) Record(goal Goal, attempts int) {
	entry, ok := t.chars[goal.Char]
	if !ok {
		entry = &CharTally{Char: goal.Char, Finger: goal.Finger}
		t.chars[goal.Char] = entry
	}
	entry.Completed++
	if attempts > 1 {
		entry.Misses += attempts - 1
	}
}

// Chars returns per-character counts ordered by character.
func (t *Tally) Chars() []CharTally {
	out := make([]CharTally, 0, len(t.chars))
	for _, entry := range t.chars {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Char < out[j].Char })
	return out
}

// Fingers returns per-finger counts in keyboard order, skipping fingers
// with no completions. The separator has no finger and is not included.
func (t *Tally) Fingers() []FingerTally {
	byFinger := map[keymap.Finger]*FingerTally{}
	for _, entry := range t.chars {
		if entry.Finger == keymap.None {
			continue
		}
		ft, ok := byFinger[entry.Finger]
		if !ok {
			ft = &FingerTally{Finger: entry.Finger}
			byFinger[entry.Finger] = ft
		}
		ft.Completed += entry.Completed
		ft.Misses += entry.Misses
	}
	out := make([]FingerTally, 0, len(byFinger))
	for _, f := range keymap.Fingers {
		if ft, ok := byFinger[f]; ok {
			out = append(out, *ft)
		}
	}
	return out
}
