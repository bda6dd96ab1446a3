package practice

import "github.com/verte-zerg/keydrill/internal/keymap"

// Separator is yielded between units in separated modes.
const Separator = ' '

// Goal is the character to type next and the finger that types it.
type Goal struct {
	Char   rune
	Finger keymap.Finger
}

// Window is the rolling sequence of upcoming units.
type Window struct {
	sel       *Selector
	width     int
	separated bool
	units     [][]rune
}

// NewWindow prefills a window of the given display width. Separated modes
// start with width/2+1 units, SingleChar with width characters.
func NewWindow(sel *Selector, width int) *Window {
	if width < 1 {
		width = 1
	}
	w := &Window{
		sel:       sel,
		width:     width,
		separated: sel.Mode().separated(),
	}
	n := width
	if w.separated {
		n = width/2 + 1
	}
	for _, unit := range sel.ChooseN(n) {
		w.units = append(w.units, []rune(unit))
	}
	return w
}

// Next pops the next goal. When the front unit is exhausted it is dropped,
// a fresh unit is appended and the separator is returned with no finger.
func (w *Window) Next() Goal {
	front := w.units[0]
	if !w.separated {
		w.units = append(w.units[1:], []rune(w.sel.Choose()))
		return w.goal(front[0])
	}
	if len(front) > 0 {
		w.units[0] = front[1:]
		return w.goal(front[0])
	}
	w.units = append(w.units[1:], []rune(w.sel.Choose()))
	return Goal{Char: Separator}
}

func (w *Window) goal(r rune) Goal {
	f, _ := w.sel.Finger(r)
	return Goal{Char: r, Finger: f}
}

// View returns the pending text, each unit followed by the separator in
// separated modes, truncated to the display width.
func (w *Window) View() string {
	out := make([]rune, 0, w.width+1)
	for _, unit := range w.units {
		out = append(out, unit...)
		if w.separated {
			out = append(out, Separator)
		}
		if len(out) >= w.width {
			break
		}
	}
	if len(out) > w.width {
		out = out[:w.width]
	}
	return string(out)
}

// Width returns the display width.
func (w *Window) Width() int {
	return w.width
}

// Units returns the pending units, front first.
func (w *Window) Units() []string {
	out := make([]string, len(w.units))
	for i, u := range w.units {
		out[i] = string(u)
	}
	return out
}
