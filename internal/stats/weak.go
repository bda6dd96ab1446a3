package stats

import (
	"github.com/verte-zerg/keydrill/internal/practice"
)

// WeakChars returns up to top characters that needed retries, lowest
// accuracy first. The separator is skipped.
func WeakChars(chars []practice.CharTally, top int) []rune {
	var out []rune
	for _, c := range sortByAccuracy(chars) {
		if top > 0 && len(out) >= top {
			break
		}
		if c.Misses == 0 || c.Char == practice.Separator {
			continue
		}
		out = append(out, c.Char)
	}
	return out
}
