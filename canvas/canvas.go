package canvas

import "math"

// default arena, the server simulates on the same logical size
const (
	DefaultWidth  = 640
	DefaultHeight = 360
	DefaultMargin = 25
)

type Canvas struct {
	Width  float64
	Height float64
	// Margin is the HUD band kept free at the top and bottom of the arena
	Margin float64
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bounds is an inclusive vertical range an entity is clamped to
type Bounds struct {
	MinY float64
	MaxY float64
}

type Side int

const (
	Left Side = iota
	Right
)

func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

func New(width, height, margin float64) Canvas {
	return Canvas{
		Width:  width,
		Height: height,
		Margin: margin,
	}
}

func Default() Canvas {
	return New(DefaultWidth, DefaultHeight, DefaultMargin)
}

// PaddleBounds returns the range of the top edge of a paddle of the given length
func (c Canvas) PaddleBounds(length float64) Bounds {
	minY := c.Margin
	maxY := c.Height - c.Margin - length
	if maxY < minY {
		maxY = minY
	}
	return Bounds{MinY: minY, MaxY: maxY}
}

func (c Canvas) Center() Position {
	return Position{X: c.Width / 2, Y: c.Height / 2}
}

// PaddleX is the x coordinate of a paddle placed inset from the given side
func (c Canvas) PaddleX(side Side, inset float64) float64 {
	if side == Left {
		return inset
	}
	return c.Width - inset
}

func (b Bounds) Clamp(y float64) float64 {
	return math.Max(b.MinY, math.Min(y, b.MaxY))
}

func (b Bounds) Contains(y float64) bool {
	return y >= b.MinY && y <= b.MaxY
}

func (p Position) Add(o Position) Position {
	return Position{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Position) Scale(f float64) Position {
	return Position{X: p.X * f, Y: p.Y * f}
}

func (p Position) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}
