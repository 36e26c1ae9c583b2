package game

import (
	"time"

	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/room"
)

type PaddleView struct {
	Position  canvas.Position
	Width     float64
	Length    float64
	Side      canvas.Side
	Name      string
	Score     int
	Connected bool
	Label     canvas.Position
}

type BallView struct {
	Position canvas.Position
	Radius   float64
	Visible  bool
}

// Snapshot is a copy of everything a renderer needs for one frame.
type Snapshot struct {
	Canvas    canvas.Canvas
	Status    room.Status
	Code      string
	Local     PaddleView
	Opponent  PaddleView
	Ball      BallView
	Connected bool
	RTT       time.Duration
	HasRTT    bool

	// Notice blocks the game until dismissed
	Notice  string
	Message string
	Frame   uint64
}

func (s *Session) Snapshot() Snapshot {
	rtt, hasRTT := s.probe.RTT()
	return Snapshot{
		Canvas: s.opts.Canvas,
		Status: s.meta.Status,
		Code:   s.meta.Code,
		Local: PaddleView{
			Position:  s.local.Position,
			Width:     s.local.Width,
			Length:    s.local.Length,
			Side:      s.localSide,
			Name:      s.meta.Local.Name,
			Score:     s.meta.Local.Score,
			Connected: s.meta.Local.Connected,
			Label:     s.labels[0],
		},
		Opponent: PaddleView{
			Position:  s.opponent.Rendered(),
			Width:     s.opponent.Width,
			Length:    s.opponent.Length,
			Side:      s.localSide.Opposite(),
			Name:      s.meta.Opponent.Name,
			Score:     s.meta.Opponent.Score,
			Connected: s.meta.Opponent.Connected,
			Label:     s.labels[1],
		},
		Ball: BallView{
			Position: s.ball.Rendered(),
			Radius:   s.ball.Radius,
			Visible:  s.ball.Visible,
		},
		Connected: s.connected,
		RTT:       rtt,
		HasRTT:    hasRTT,
		Notice:    s.notice,
		Message:   s.message,
		Frame:     s.frames,
	}
}
