// Package practice implements the practice-loop engine: material selection,
// the rolling chunk window, per-character attempts and session statistics.
package practice

import (
	"fmt"
	"strings"
)

// Mode selects how practice material is drawn and windowed.
type Mode int

const (
	// WordChunk draws dictionary words separated by spaces.
	WordChunk Mode = iota
	// SingleChar draws single characters with no separator.
	SingleChar
	// HomeRowDrill draws two-character drills separated by spaces.
	HomeRowDrill
)

// ParseMode parses a mode name as used in config files and flags.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "word", "words":
		return WordChunk, nil
	case "char", "chars":
		return SingleChar, nil
	case "drill":
		return HomeRowDrill, nil
	default:
		return WordChunk, fmt.Errorf("unknown mode %q (want word, char or drill)", name)
	}
}

func (m Mode) String() string {
	switch m {
	case SingleChar:
		return "char"
	case HomeRowDrill:
		return "drill"
	default:
		return "word"
	}
}

// separated reports whether units are joined by the separator.
func (m Mode) separated() bool {
	return m != SingleChar
}
