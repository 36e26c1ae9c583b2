// Package tui is the terminal front end: it shows frames rendered on the
// game loop and turns key presses into key events.
package tui

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mo-shahab/go-pong-client/input"
)

// FrameMsg carries a rendered frame to the program.
type FrameMsg struct {
	View string
}

// Actions are called from the bubbletea goroutine. Implementations post the
// work to the game loop.
type Actions struct {
	Key     func(input.KeyEvent)
	Dismiss func()
	Create  func()
	Play    func(row, col int)
	Resize  func(cols, rows int)
	Quit    func()
}

// Model is the bubbletea model. Terminals report no key releases, so a held
// key is considered released when no repeat arrives within the release
// delay.
type Model struct {
	actions Actions
	release time.Duration
	help    string

	mu     sync.Mutex
	timers map[input.Key]*time.Timer

	view string
}

func NewModel(actions Actions, release time.Duration, help string) *Model {
	return &Model{
		actions: actions,
		release: release,
		help:    help,
		timers:  make(map[input.Key]*time.Timer),
		view:    "connecting...",
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		m.view = msg.View
		return m, nil
	case tea.WindowSizeMsg:
		if m.actions.Resize != nil {
			// keep two lines for the help text
			m.actions.Resize(msg.Width, msg.Height-2)
		}
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		m.releaseAll()
		if m.actions.Quit != nil {
			m.actions.Quit()
		}
		return tea.Quit
	}

	switch msg.String() {
	case "q":
		m.releaseAll()
		if m.actions.Quit != nil {
			m.actions.Quit()
		}
		return tea.Quit
	case "w", "up":
		m.press(input.KeyUp)
	case "s", "down":
		m.press(input.KeyDown)
	case " ":
		m.emit(input.KeyEvent{Key: input.KeyShoot, Down: true})
		m.emit(input.KeyEvent{Key: input.KeyShoot, Down: false})
	case "enter", "esc":
		m.releaseAll()
		if m.actions.Dismiss != nil {
			m.actions.Dismiss()
		}
	case "c":
		if m.actions.Create != nil {
			m.actions.Create()
		}
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		if m.actions.Play != nil {
			n := int(msg.String()[0] - '1')
			m.actions.Play(n/3, n%3)
		}
	}
	return nil
}

func (m *Model) emit(ev input.KeyEvent) {
	if m.actions.Key != nil {
		m.actions.Key(ev)
	}
}

// press holds key until repeats stop. Pressing one direction releases the
// other one.
func (m *Model) press(key input.Key) {
	other := input.KeyDown
	if key == input.KeyDown {
		other = input.KeyUp
	}

	m.mu.Lock()
	if t, ok := m.timers[other]; ok {
		t.Stop()
		delete(m.timers, other)
		m.mu.Unlock()
		m.emit(input.KeyEvent{Key: other, Down: false})
		m.mu.Lock()
	}

	if t, ok := m.timers[key]; ok {
		t.Reset(m.release)
		m.mu.Unlock()
		return
	}
	var t *time.Timer
	t = time.AfterFunc(m.release, func() {
		m.mu.Lock()
		cur, ok := m.timers[key]
		if !ok || cur != t {
			m.mu.Unlock()
			return
		}
		delete(m.timers, key)
		m.mu.Unlock()
		m.emit(input.KeyEvent{Key: key, Down: false})
	})
	m.timers[key] = t
	m.mu.Unlock()

	m.emit(input.KeyEvent{Key: key, Down: true})
}

func (m *Model) releaseAll() {
	m.mu.Lock()
	held := make([]input.Key, 0, len(m.timers))
	for k, t := range m.timers {
		t.Stop()
		held = append(held, k)
	}
	m.timers = make(map[input.Key]*time.Timer)
	m.mu.Unlock()

	for _, k := range held {
		m.emit(input.KeyEvent{Key: k, Down: false})
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.view)
	b.WriteString("\n\n")
	b.WriteString(m.help)
	return b.String()
}
