// Package wordlist provides word list filtering helpers.
package wordlist

import "github.com/verte-zerg/keydrill/internal/keymap"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterForKeyMap keeps non-empty words typeable entirely with km.
func FilterForKeyMap(km keymap.KeyMap) FilterFunc {
	return func(word string) bool {
		return word != "" && km.Covers(word)
	}
}

// Filter returns the words accepted by keep, preserving order.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
