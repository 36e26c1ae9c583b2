// Package render draws a game snapshot through a Sink. It knows nothing
// about the output device.
package render

import (
	"fmt"

	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/game"
	"github.com/mo-shahab/go-pong-client/room"
)

type Color int

const (
	Background Color = iota
	Foreground
	Paddle
	Ball
	Muted
	Alert
)

// Sink receives draw primitives in arena coordinates.
type Sink interface {
	Clear()
	Rect(x, y, w, h float64, c Color)
	Circle(x, y, r float64, c Color)
	Text(x, y float64, s string, c Color)
	TextWidth(s string) float64
}

// Draw renders one frame.
func Draw(sink Sink, s game.Snapshot) {
	c := s.Canvas
	sink.Clear()

	// net
	for y := c.Margin; y < c.Height-c.Margin; y += 16 {
		sink.Rect(c.Width/2-1, y, 2, 8, Muted)
	}

	drawPaddle(sink, s.Local)
	drawPaddle(sink, s.Opponent)
	drawLabel(sink, c, s.Local)
	drawLabel(sink, c, s.Opponent)

	if s.Ball.Visible {
		sink.Circle(s.Ball.Position.X, s.Ball.Position.Y, s.Ball.Radius, Ball)
	}

	footer := c.Height - c.Margin/2
	if s.HasRTT {
		sink.Text(c.Margin, footer, fmt.Sprintf("%dms", s.RTT.Milliseconds()), Muted)
	}
	if s.Message != "" {
		centered(sink, c.Width/2, footer, s.Message, Muted)
	}

	switch {
	case !s.Connected:
		centered(sink, c.Width/2, c.Height/2-c.Margin, "connection lost", Alert)
	case s.Status == room.NotStarted && s.Code != "":
		centered(sink, c.Width/2, c.Height/2-c.Margin, "room "+s.Code+", waiting for an opponent", Foreground)
	case s.Status == room.NotStarted:
		centered(sink, c.Width/2, c.Height/2-c.Margin, "not in a room", Foreground)
	case s.Status == room.Running && !s.Opponent.Connected:
		centered(sink, c.Width/2, c.Height/2-c.Margin, "opponent disconnected", Alert)
	}

	if s.Notice != "" {
		w := sink.TextWidth(s.Notice) + 2*c.Margin
		sink.Rect(c.Width/2-w/2, c.Height/2-c.Margin, w, 2*c.Margin, Background)
		centered(sink, c.Width/2, c.Height/2, s.Notice, Alert)
	}
}

func drawPaddle(sink Sink, p game.PaddleView) {
	col := Paddle
	if !p.Connected {
		col = Muted
	}
	sink.Rect(p.Position.X, p.Position.Y, p.Width, p.Length, col)
}

// drawLabel anchors the name on the outer edge of the player's half.
func drawLabel(sink Sink, c canvas.Canvas, p game.PaddleView) {
	name := p.Name
	if name == "" {
		name = "..."
	}
	text := fmt.Sprintf("%s %d", name, p.Score)
	col := Foreground
	if !p.Connected {
		col = Muted
	}
	x := p.Label.X
	if x > c.Width/2 {
		x -= sink.TextWidth(text)
	}
	sink.Text(x, p.Label.Y, text, col)
}

func centered(sink Sink, x, y float64, s string, c Color) {
	sink.Text(x-sink.TextWidth(s)/2, y, s, c)
}
