package tui

import (
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/input"
	"github.com/mo-shahab/go-pong-client/render"
	"github.com/mo-shahab/go-pong-client/tictactoe"
)

func TestGridRect(t *testing.T) {
	g := NewGrid(canvas.New(80, 24, 0), 80, 24)
	g.Rect(10, 5, 2, 3, render.Paddle)
	lines := strings.Split(g.String(), "\n")
	if len(lines) != 24 {
		t.Fatalf("rows = %d", len(lines))
	}
	for r := 5; r < 8; r++ {
		if got := []rune(lines[r])[10:12]; string(got) != "██" {
			t.Fatalf("row %d = %q", r, string(got))
		}
	}
	if []rune(lines[8])[10] != ' ' {
		t.Fatal("rect drawn past its height")
	}
}

func TestGridThinRectVisible(t *testing.T) {
	g := NewGrid(canvas.Default(), 80, 24)
	g.Rect(30, 160, 4, 40, render.Paddle)
	if !strings.ContainsRune(g.String(), '█') {
		t.Fatal("paddle narrower than a cell not drawn")
	}
}

func TestGridTextClipped(t *testing.T) {
	g := NewGrid(canvas.New(10, 1, 0), 10, 1)
	g.Text(7, 0, "hello", render.Foreground)
	if got := g.String(); got != "       hel" {
		t.Fatalf("line = %q", got)
	}
	if w := g.TextWidth("héllo"); w != 5 {
		t.Fatalf("width = %v", w)
	}
}

func TestGridResize(t *testing.T) {
	g := NewGrid(canvas.Default(), DefaultCols, DefaultRows)
	g.Resize(0, -3)
	if c, r := g.Size(); c != 1 || r != 1 {
		t.Fatalf("size = %dx%d", c, r)
	}
}

type keyLog struct {
	mu     sync.Mutex
	events []input.KeyEvent
}

func (k *keyLog) add(ev input.KeyEvent) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.events = append(k.events, ev)
}

func (k *keyLog) snapshot() []input.KeyEvent {
	k.mu.Lock()
	defer k.mu.Unlock()
	return append([]input.KeyEvent(nil), k.events...)
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyReleaseSynthesized(t *testing.T) {
	var keys keyLog
	m := NewModel(Actions{Key: keys.add}, 30*time.Millisecond, PongHelp)

	m.Update(runeKey("w"))
	m.Update(runeKey("w"))
	if ev := keys.snapshot(); len(ev) != 1 || ev[0] != (input.KeyEvent{Key: input.KeyUp, Down: true}) {
		t.Fatalf("events after repeat = %v", ev)
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(keys.snapshot()) < 2 {
		if time.Now().After(deadline) {
			t.Fatal("release not synthesized")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if ev := keys.snapshot()[1]; ev != (input.KeyEvent{Key: input.KeyUp, Down: false}) {
		t.Fatalf("second event = %v", ev)
	}
}

func TestOppositeKeyReleases(t *testing.T) {
	var keys keyLog
	m := NewModel(Actions{Key: keys.add}, time.Minute, PongHelp)
	m.Update(runeKey("w"))
	m.Update(tea.KeyMsg{Type: tea.KeyDown})

	want := []input.KeyEvent{
		{Key: input.KeyUp, Down: true},
		{Key: input.KeyUp, Down: false},
		{Key: input.KeyDown, Down: true},
	}
	got := keys.snapshot()
	if len(got) != len(want) {
		t.Fatalf("events = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, got[i], want[i])
		}
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if last := keys.snapshot()[3]; last != (input.KeyEvent{Key: input.KeyDown, Down: false}) {
		t.Fatalf("dismiss did not release held keys: %v", last)
	}
}

func TestPlayKeys(t *testing.T) {
	var cells [][2]int
	m := NewModel(Actions{Play: func(r, c int) { cells = append(cells, [2]int{r, c}) }}, time.Second, TicTacToeHelp)
	m.Update(runeKey("1"))
	m.Update(runeKey("6"))
	m.Update(runeKey("9"))
	want := [][2]int{{0, 0}, {1, 2}, {2, 2}}
	for i := range want {
		if cells[i] != want[i] {
			t.Fatalf("cells = %v", cells)
		}
	}
}

func TestFrameAndQuit(t *testing.T) {
	quit := false
	m := NewModel(Actions{Quit: func() { quit = true }}, time.Second, "help")
	m.Update(FrameMsg{View: "frame 1"})
	if v := m.View(); !strings.HasPrefix(v, "frame 1") || !strings.HasSuffix(v, "help") {
		t.Fatalf("view = %q", v)
	}
	_, cmd := m.Update(runeKey("q"))
	if !quit || cmd == nil {
		t.Fatal("q did not quit")
	}
}

func TestBoard(t *testing.T) {
	s := tictactoe.Snapshot{
		Code:      "T1",
		Players:   [2]tictactoe.Player{{Name: "alice", Connected: true}, {Name: "bob", Connected: false}},
		Local:     tictactoe.X,
		ToMove:    tictactoe.X,
		Connected: true,
		Winning:   []tictactoe.Cell{{Row: 0, Col: 0}},
	}
	s.Board[0][0] = tictactoe.X
	out := Board(s)
	for _, want := range []string{"game T1", "alice (you)", "bob: 0 wins (disconnected)", "[X]", " 5 ", "your turn"} {
		if !strings.Contains(out, want) {
			t.Errorf("board missing %q:\n%s", want, out)
		}
	}
}
