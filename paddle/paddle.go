package paddle

import (
	"math"

	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/entity"
	"github.com/mo-shahab/go-pong-client/input"
)

// Paddle constants, same as the server defaults
const (
	DefaultLength = 40
	DefaultWidth  = 4
	DefaultSpeed  = 300 // pixels per second
	DefaultInset  = 30
)

type Paddle struct {
	Length float64
	Width  float64
	Speed  float64
}

func Default() Paddle {
	return Paddle{
		Length: DefaultLength,
		Width:  DefaultWidth,
		Speed:  DefaultSpeed,
	}
}

// Local is the paddle owned by this client. It is simulated every frame from
// the held keys, independent of network latency. Position.Y is whole pixels;
// the simulation keeps the fractional part in y so slow steps add up.
type Local struct {
	Paddle
	Position canvas.Position
	bounds   canvas.Bounds
	y        float64
}

func NewLocal(p Paddle, start canvas.Position, bounds canvas.Bounds) *Local {
	l := &Local{
		Paddle:   p,
		Position: start,
		bounds:   bounds,
	}
	l.setY(start.Y)
	return l
}

func (l *Local) setY(y float64) {
	l.y = l.bounds.Clamp(y)
	l.Position.Y = math.Round(l.y)
}

// Advance moves the paddle for dt seconds. Up and down held together cancel
// out. The result is clamped to the bounds and rounded to a whole pixel.
func (l *Local) Advance(dt float64, held input.State) bool {
	prev := l.Position.Y
	l.setY(l.y + held.Direction()*l.Speed*dt)
	return l.Position.Y != prev
}

// Place moves the paddle without simulation, e.g. when sides are swapped
func (l *Local) Place(p canvas.Position) {
	l.Position.X = p.X
	l.setY(p.Y)
}

func (l *Local) Bounds() canvas.Bounds { return l.bounds }

// SetBounds changes the allowed range, for instance after the server resized
// the paddle.
func (l *Local) SetBounds(b canvas.Bounds) {
	l.bounds = b
	l.setY(l.y)
}

// Remote is the opponent paddle.
type Remote struct {
	Paddle
	*entity.Remote
}

func NewRemote(p Paddle, start canvas.Position, factor float64, bounds canvas.Bounds) *Remote {
	return &Remote{
		Paddle: p,
		Remote: entity.NewRemote(start, factor, &bounds),
	}
}

// OnY records a vertical sample; paddles never move horizontally.
func (r *Remote) OnY(y float64) {
	r.OnSample(canvas.Position{X: r.Target().X, Y: y})
}
