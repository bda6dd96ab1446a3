package keymap

import (
	"errors"
	"fmt"
	"sort"
	"unicode/utf8"
)

// ErrNoKeys is returned when a key map would be empty.
var ErrNoKeys = errors.New("key map has no keys")

// KeyMap is an immutable character to finger mapping.
type KeyMap struct {
	keys map[rune]Finger
}

// New validates keys and returns a KeyMap holding its own copy.
func New(keys map[rune]Finger) (KeyMap, error) {
	if len(keys) == 0 {
		return KeyMap{}, ErrNoKeys
	}
	copied := make(map[rune]Finger, len(keys))
	for r, f := range keys {
		if f == None {
			return KeyMap{}, fmt.Errorf("key %q has no finger", r)
		}
		copied[r] = f
	}
	return KeyMap{keys: copied}, nil
}

// FromStrings builds a KeyMap from single-character string keys.
func FromStrings(keys map[string]Finger) (KeyMap, error) {
	runes := make(map[rune]Finger, len(keys))
	for k, f := range keys {
		r, size := utf8.DecodeRuneInString(k)
		if size == 0 || size != len(k) || r == utf8.RuneError {
			return KeyMap{}, fmt.Errorf("key %q must be a single character", k)
		}
		runes[r] = f
	}
	return New(runes)
}

// Finger returns the finger for r, or None and false when r is unmapped.
func (m KeyMap) Finger(r rune) (Finger, bool) {
	f, ok := m.keys[r]
	return f, ok
}

// Contains reports whether r is mapped.
func (m KeyMap) Contains(r rune) bool {
	_, ok := m.keys[r]
	return ok
}

// Covers reports whether every character of word is mapped.
func (m KeyMap) Covers(word string) bool {
	for _, r := range word {
		if !m.Contains(r) {
			return false
		}
	}
	return true
}

// Len returns the number of mapped characters.
func (m KeyMap) Len() int {
	return len(m.keys)
}

// Runes returns the mapped characters in ascending order.
func (m KeyMap) Runes() []rune {
	out := make([]rune, 0, len(m.keys))
	for r := range m.keys {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
