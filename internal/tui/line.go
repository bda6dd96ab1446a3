package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/practice"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// buildChunkRunes styles the trail, the pipe, the goal and the pending text.
// The goal is underlined, and red after a mis-key; the rest of its word is
// highlighted.
func buildChunkRunes(trail string, trailCap int, goal rune, pending string, missed bool) []styledRune {
	out := make([]styledRune, 0, trailCap+2+len(pending))
	for _, r := range runewidth.FillLeft(trail, trailCap) {
		out = append(out, newStyledRune(r, r, trailStyle))
	}
	out = append(out, newStyledRune('|', '|', pipeStyle))

	target := append([]rune{goal}, []rune(pending)...)
	current := wordForCursor(findWords(target), 0)
	for i, r := range target {
		displayed := r
		style := pendingStyle
		switch {
		case i == 0 && missed:
			style = missStyle
			if r == practice.Separator {
				displayed = '•'
			}
		case i == 0:
			style = cursorStyle
		case current != nil && i >= current.start && i < current.end:
			style = currentWordStyle
		}
		out = append(out, newStyledRune(r, displayed, style))
	}
	return out
}

func newStyledRune(target, displayed rune, style lipgloss.Style) styledRune {
	return styledRune{
		s:       style.Render(string(displayed)),
		width:   runewidth.RuneWidth(displayed),
		isSpace: target == practice.Separator,
	}
}

type wordRange struct {
	start int
	end   int
}

func findWords(targetRunes []rune) []wordRange {
	words := []wordRange{}
	start := -1
	for i, r := range targetRunes {
		if r == practice.Separator {
			if start != -1 {
				words = append(words, wordRange{start: start, end: i})
				start = -1
			}
			continue
		}
		if start == -1 {
			start = i
		}
	}
	if start != -1 {
		words = append(words, wordRange{start: start, end: len(targetRunes)})
	}
	return words
}

// wordForCursor returns the word containing cursorIndex, or the next one
// when the cursor sits on a separator.
func wordForCursor(words []wordRange, cursorIndex int) *wordRange {
	for i, w := range words {
		if cursorIndex < w.end {
			return &words[i]
		}
	}
	return nil
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks runes into lines no wider than width, preferring
// to break at separators.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
