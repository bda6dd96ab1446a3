// Package screen is a plain tcell frontend that drives the practice loop
// directly, without an UI framework.
package screen

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gdamore/tcell/v2/encoding"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/keydrill/internal/hand"
	"github.com/verte-zerg/keydrill/internal/keymap"
	"github.com/verte-zerg/keydrill/internal/keysource"
	"github.com/verte-zerg/keydrill/internal/practice"
)

const (
	keyBuffer   = 64
	instruction = "Type the characters shown after the pipe. Press <Esc> when done"
)

var (
	trailStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	pipeStyle    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	goalStyle    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Underline(true)
	pendingStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	missStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed).Underline(true)
	fingerStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	titleStyle   = tcell.StyleDefault.Bold(true)
)

// Options configures a run.
type Options struct {
	// Budget ends the session after this long; zero runs until cancelled.
	Budget time.Duration
	// Tick is the countdown refresh interval.
	Tick time.Duration
	// TrailLen is how many typed characters stay visible left of the pipe.
	TrailLen int
}

// Screen owns a tcell screen and the channels its key producers feed.
type Screen struct {
	scr  tcell.Screen
	keys chan practice.KeyEvent
	errs chan error
}

// Open initializes the terminal.
func Open() (*Screen, error) {
	encoding.Register()
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := scr.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	return New(scr), nil
}

// New wraps an initialized screen.
func New(scr tcell.Screen) *Screen {
	scr.HideCursor()
	return &Screen{
		scr:  scr,
		keys: make(chan practice.KeyEvent, keyBuffer),
		errs: make(chan error, 1),
	}
}

// Keys is where additional producers, such as a NATS relay, send key presses.
func (s *Screen) Keys() chan<- practice.KeyEvent {
	return s.keys
}

// Errs receives producer failures; the first one ends the session.
func (s *Screen) Errs() chan<- error {
	return s.errs
}

// Close restores the terminal.
func (s *Screen) Close() {
	s.scr.Fini()
}

// Run polls the terminal for keys and runs one session. Without a budget the
// loop runs on the calling goroutine; with one, a ticker drives the countdown.
func (s *Screen) Run(ctx context.Context, window *practice.Window, opts Options) (*practice.Session, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go keysource.Poll(ctx, s.scr, s.keys)

	session := practice.NewSession(practice.SessionOptions{
		Budget:   opts.Budget,
		TrailLen: opts.TrailLen,
	})
	src := keysource.NewChan(s.keys, s.errs)
	s.Render(session)
	if opts.Budget <= 0 {
		return session, practice.Run(ctx, window, src, session, s)
	}
	tick := opts.Tick
	if tick <= 0 {
		tick = time.Second
	}
	return session, practice.RunWithTicker(ctx, window, src, session, s, tick)
}

// Render implements practice.Sink.
func (s *Screen) Render(session *practice.Session) {
	s.scr.Clear()
	w, h := s.scr.Size()
	top := (h - (hand.Height + 7)) / 2
	if top < 0 {
		top = 0
	}

	emitCentered(s.scr, w, top, titleStyle, instruction)

	if goal := session.Goal(); goal.Char != 0 {
		trail := runewidth.FillLeft(session.Trail.String(), session.Trail.Cap())
		lineWidth := runewidth.StringWidth(trail) + 1 + runewidth.RuneWidth(goal.Char) + runewidth.StringWidth(session.Pending())
		x := max(0, (w-lineWidth)/2)
		x = emitStr(s.scr, x, top+2, trailStyle, trail)
		x = emitStr(s.scr, x, top+2, pipeStyle, "|")
		style := goalStyle
		if session.Missed() {
			style = missStyle
		}
		x = emitStr(s.scr, x, top+2, style, string(goal.Char))
		emitStr(s.scr, x, top+2, pendingStyle, session.Pending())
	}

	drawHand(s.scr, max(0, (w-hand.Width)/2), top+4, session.Goal().Finger)

	y := top + 5 + hand.Height
	emitCentered(s.scr, w, y, tcell.StyleDefault, session.Stats.Snapshot().String())
	if countdown := session.Countdown(); countdown != "" {
		emitCentered(s.scr, w, y+1, tcell.StyleDefault, countdown)
	}
	s.scr.Show()
}

func drawHand(scr tcell.Screen, x, y int, selected keymap.Finger) {
	for dy, row := range hand.Rows() {
		for dx, cell := range row {
			style := tcell.StyleDefault
			if keymap.Highlight(cell.Finger, selected) {
				style = fingerStyle
			}
			scr.SetContent(x+dx, y+dy, cell.Char, nil, style)
		}
	}
}

func emitCentered(scr tcell.Screen, width, y int, style tcell.Style, str string) {
	emitStr(scr, max(0, (width-runewidth.StringWidth(str))/2), y, style, str)
}

// emitStr draws str at x, y and returns the column after it. Tabs expand to
// four cells.
func emitStr(scr tcell.Screen, x, y int, style tcell.Style, str string) int {
	for _, c := range str {
		if c == '\t' {
			x += 4
			continue
		}
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		scr.SetContent(x, y, c, comb, style)
		x += w
	}
	return x
}
