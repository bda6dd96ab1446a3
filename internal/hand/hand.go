// Package hand draws a pair of hands with one finger highlighted.
package hand

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/keymap"
)

// Width and Height are the diagram's size in cells.
const (
	Width  = 35
	Height = 12
)

var art = [Height]string{
	`    .-.                     .-.    `,
	`  .-| |-.                 .-| |-.  `,
	`  | | | |                 | | | |  `,
	`.-| | | |                 | | | |-.`,
	`| | | | |                 | | | | |`,
	`| | | | |-.             .-| | | | |`,
	`| '     | |             | |     ` + "`" + ` |`,
	`|       | |             | |       |`,
	`|         |             |         |`,
	`\         /             \         /`,
	` |       |               |       | `,
	` |       |               |       | `,
}

// Digits 1-8 name fingers from left pinky to right pinky.
var mask = [Height]string{
	"....333" + strings.Repeat(".", 21) + "666" + "....",
	"..2233344" + strings.Repeat(".", 17) + "5566677" + "..",
	"..2233344" + strings.Repeat(".", 17) + "5566677" + "..",
	"112233344" + strings.Repeat(".", 17) + "5566677" + "88",
	"112233344" + strings.Repeat(".", 17) + "5566677" + "88",
}

// Cell is one character of the diagram and the finger it belongs to.
type Cell struct {
	Char   rune
	Finger keymap.Finger
}

// Rows returns the diagram as cells, Height rows of Width cells.
func Rows() [][]Cell {
	rows := make([][]Cell, Height)
	for y, line := range art {
		row := make([]Cell, 0, Width)
		for x, ch := range []rune(line) {
			row = append(row, Cell{Char: ch, Finger: fingerAt(x, y)})
		}
		rows[y] = row
	}
	return rows
}

func fingerAt(x, y int) keymap.Finger {
	if y >= len(mask) || mask[y] == "" || x >= len(mask[y]) {
		return keymap.None
	}
	c := mask[y][x]
	if c < '1' || c > '8' {
		return keymap.None
	}
	return keymap.Fingers[c-'1']
}

// Render draws the diagram with the selected finger in style. keymap.None
// highlights nothing.
func Render(selected keymap.Finger, style lipgloss.Style) string {
	var b strings.Builder
	for y, row := range Rows() {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run strings.Builder
		lit := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if lit {
				b.WriteString(style.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			run.Reset()
		}
		for _, cell := range row {
			on := keymap.Highlight(cell.Finger, selected)
			if on != lit {
				flush()
				lit = on
			}
			run.WriteRune(cell.Char)
		}
		flush()
	}
	return b.String()
}
