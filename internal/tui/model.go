// Package tui provides the Bubble Tea practice interface.
package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/keydrill/internal/hand"
	"github.com/verte-zerg/keydrill/internal/keysource"
	"github.com/verte-zerg/keydrill/internal/practice"
)

const (
	eventBuffer = 16
	instruction = "Type the characters shown after the pipe. Press <Esc> when done"
)

var (
	trailStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	pipeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = currentWordStyle.Underline(true)
	missStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	fingerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Bold(true)
)

// Options configures a Model.
type Options struct {
	// Budget ends the session after this long; zero is unlimited.
	Budget time.Duration
	// Tick is the countdown refresh interval.
	Tick time.Duration
	// TrailLen is how many typed characters stay visible left of the pipe.
	TrailLen int
	// Now is the session clock; time.Now when nil.
	Now func() time.Time
}

type keyMap struct {
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultKeyMap = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "finish session"),
	),
}

type eventMsg struct {
	ev practice.Event
}

// Model implements the Bubble Tea practice UI. The practice worker runs on
// its own goroutine; Update is the only place the session is mutated.
type Model struct {
	window  *practice.Window
	session *practice.Session
	now     func() time.Time

	keys   *keysource.Queue
	events chan practice.Event
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	ran    bool

	timer    timer.Model
	hasTimer bool
	help     help.Model
	bindings keyMap

	width  int
	height int
}

// NewModel constructs a practice model drawing goals from window.
func NewModel(window *practice.Window, opts Options) *Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		window: window,
		session: practice.NewSession(practice.SessionOptions{
			Budget:   opts.Budget,
			TrailLen: opts.TrailLen,
			Now:      now,
		}),
		now:      now,
		keys:     keysource.NewQueue(),
		events:   make(chan practice.Event, eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
		help:     help.New(),
		bindings: defaultKeyMap,
	}
	if opts.Budget > 0 {
		tick := opts.Tick
		if tick <= 0 {
			tick = time.Second
		}
		m.timer = timer.NewWithInterval(opts.Budget, tick)
		m.hasTimer = true
	}
	return m
}

// Session returns the session driven by the model.
func (m *Model) Session() *practice.Session {
	return m.session
}

// Err returns the failure that ended the session, if any.
func (m *Model) Err() error {
	return m.session.Err()
}

// Close stops the worker and waits for it to return.
func (m *Model) Close() {
	m.cancel()
	if m.ran {
		<-m.done
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.ran = true
	go func() {
		defer close(m.done)
		practice.NewWorker(m.window).Run(m.ctx, m.keys, practice.Channel(m.ctx, m.events))
	}()
	wait := waitForEvent(m.events)
	if !m.hasTimer {
		return wait
	}
	return tea.Batch(wait, m.timer.Init())
}

func waitForEvent(events <-chan practice.Event) tea.Cmd {
	return func() tea.Msg {
		return eventMsg{ev: <-events}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.bindings.Quit) {
			m.keys.Push(practice.CancelKey())
			return m, nil
		}
		m.keys.Push(translateKey(msg)...)
		return m, nil
	case eventMsg:
		if m.session.Apply(msg.ev) {
			return m, m.quit()
		}
		return m, waitForEvent(m.events)
	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		if m.session.Apply(practice.Elapsed{At: m.now()}) {
			return m, m.quit()
		}
		return m, cmd
	case timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd
	case timer.TimeoutMsg:
		if !m.hasTimer || msg.ID != m.timer.ID() {
			return m, nil
		}
		m.session.Apply(practice.SessionEnded{})
		return m, m.quit()
	default:
		return m, nil
	}
}

func (m *Model) quit() tea.Cmd {
	m.cancel()
	return tea.Quit
}

// translateKey maps a Bubble Tea key press to practice key events. Pasted
// or batched runes become one event each.
func translateKey(msg tea.KeyMsg) []practice.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []practice.KeyEvent{practice.OtherKey()}
		}
		out := make([]practice.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			out = append(out, practice.CharKey(r))
		}
		return out
	case tea.KeySpace:
		return []practice.KeyEvent{practice.CharKey(' ')}
	case tea.KeyEsc, tea.KeyCtrlC:
		return []practice.KeyEvent{practice.CancelKey()}
	default:
		return []practice.KeyEvent{practice.OtherKey()}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render(instruction),
		"",
		m.renderChunk(),
		"",
		hand.Render(m.session.Goal().Finger, fingerStyle),
		"",
		m.renderFooter(),
	)
	helpView := m.help.View(m.bindings)
	if m.width == 0 || m.height < 3 {
		return content + "\n" + helpView
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, helpView)
	return body + "\n" + helpLine
}

func (m *Model) renderChunk() string {
	goal := m.session.Goal()
	if goal.Char == 0 {
		return ""
	}
	runes := buildChunkRunes(m.session.Trail.String(), m.session.Trail.Cap(), goal.Char, m.session.Pending(), m.session.Missed())
	return wrapStyledRunes(runes, m.width)
}

func (m *Model) renderFooter() string {
	segments := []string{m.session.Stats.Snapshot().String()}
	if countdown := m.session.Countdown(); countdown != "" {
		segments = append(segments, countdown)
	}
	return footerStyle.Render(strings.Join(segments, "\t"))
}
