package render

import (
	"strings"
	"testing"
	"time"

	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/game"
	"github.com/mo-shahab/go-pong-client/room"
)

type op struct {
	kind string
	x, y float64
	text string
	c    Color
}

type recorder struct {
	ops []op
}

func (r *recorder) Clear() { r.ops = r.ops[:0] }

func (r *recorder) Rect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, op{kind: "rect", x: x, y: y, c: c})
}

func (r *recorder) Circle(x, y, radius float64, c Color) {
	r.ops = append(r.ops, op{kind: "circle", x: x, y: y, c: c})
}

func (r *recorder) Text(x, y float64, s string, c Color) {
	r.ops = append(r.ops, op{kind: "text", x: x, y: y, text: s, c: c})
}

func (r *recorder) TextWidth(s string) float64 { return float64(len(s)) * 8 }

func (r *recorder) text(sub string) (op, bool) {
	for _, o := range r.ops {
		if o.kind == "text" && strings.Contains(o.text, sub) {
			return o, true
		}
	}
	return op{}, false
}

func snapshot() game.Snapshot {
	c := canvas.Default()
	return game.Snapshot{
		Canvas: c,
		Status: room.Running,
		Code:   "AB12njd",
		Local: game.PaddleView{
			Position:  canvas.Position{X: 610, Y: 160},
			Width:     4,
			Length:    40,
			Name:      "alice",
			Score:     2,
			Connected: true,
			Label:     canvas.Position{X: 610, Y: 12.5},
		},
		Opponent: game.PaddleView{
			Position:  canvas.Position{X: 30, Y: 100},
			Width:     4,
			Length:    40,
			Name:      "bob",
			Score:     3,
			Connected: true,
			Label:     canvas.Position{X: 30, Y: 12.5},
		},
		Ball:      game.BallView{Position: c.Center(), Radius: 7, Visible: true},
		Connected: true,
		RTT:       42 * time.Millisecond,
		HasRTT:    true,
	}
}

func TestDrawRunning(t *testing.T) {
	var r recorder
	Draw(&r, snapshot())

	var paddles, balls int
	for _, o := range r.ops {
		switch {
		case o.kind == "rect" && o.c == Paddle:
			paddles++
		case o.kind == "circle":
			balls++
		}
	}
	if paddles != 2 || balls != 1 {
		t.Fatalf("paddles=%d balls=%d", paddles, balls)
	}
	if _, ok := r.text("42ms"); !ok {
		t.Fatal("rtt not drawn")
	}

	// the right hand label ends at its anchor
	alice, ok := r.text("alice 2")
	if !ok || alice.x != 610-float64(len("alice 2"))*8 {
		t.Fatalf("alice label = %+v", alice)
	}
	bob, ok := r.text("bob 3")
	if !ok || bob.x != 30 {
		t.Fatalf("bob label = %+v", bob)
	}
}

func TestDrawStatus(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*game.Snapshot)
		want   string
		color  Color
	}{
		{"offline", func(s *game.Snapshot) { s.Connected = false }, "connection lost", Alert},
		{"waiting", func(s *game.Snapshot) { s.Status = room.NotStarted }, "waiting for an opponent", Foreground},
		{"no room", func(s *game.Snapshot) { s.Status = room.NotStarted; s.Code = "" }, "not in a room", Foreground},
		{"opponent gone", func(s *game.Snapshot) { s.Opponent.Connected = false }, "opponent disconnected", Alert},
		{"notice", func(s *game.Snapshot) { s.Notice = "Could not join room: Invalid code" }, "Invalid code", Alert},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := snapshot()
			tc.modify(&s)
			var r recorder
			Draw(&r, s)
			o, ok := r.text(tc.want)
			if !ok {
				t.Fatalf("%q not drawn", tc.want)
			}
			if o.c != tc.color {
				t.Fatalf("color = %v, want %v", o.c, tc.color)
			}
		})
	}
}

func TestDisconnectedPaddleMuted(t *testing.T) {
	s := snapshot()
	s.Opponent.Connected = false
	var r recorder
	Draw(&r, s)
	for _, o := range r.ops {
		if o.kind == "rect" && o.x == 30 && o.y == 100 && o.c != Muted {
			t.Fatalf("disconnected paddle drawn with %v", o.c)
		}
	}
}

func TestHiddenBall(t *testing.T) {
	s := snapshot()
	s.Ball.Visible = false
	var r recorder
	Draw(&r, s)
	for _, o := range r.ops {
		if o.kind == "circle" {
			t.Fatal("hidden ball drawn")
		}
	}
}
