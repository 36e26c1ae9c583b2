package tui

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/render"
)

const (
	DefaultCols = 80
	DefaultRows = 24
)

var glyphs = map[render.Color]rune{
	render.Background: ' ',
	render.Foreground: '#',
	render.Paddle:     '█',
	render.Ball:       '●',
	render.Muted:      '·',
	render.Alert:      '!',
}

// Grid rasterises arena coordinates onto a character grid. It implements
// render.Sink.
type Grid struct {
	arena canvas.Canvas
	cols  int
	rows  int
	cells [][]rune
}

func NewGrid(arena canvas.Canvas, cols, rows int) *Grid {
	g := &Grid{arena: arena}
	g.Resize(cols, rows)
	return g
}

func (g *Grid) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	g.cols, g.rows = cols, rows
	g.cells = make([][]rune, rows)
	for r := range g.cells {
		g.cells[r] = make([]rune, cols)
	}
	g.Clear()
}

func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

func (g *Grid) cellW() float64 { return g.arena.Width / float64(g.cols) }

func (g *Grid) cellH() float64 { return g.arena.Height / float64(g.rows) }

func (g *Grid) col(x float64) int { return int(math.Floor(x / g.cellW())) }

func (g *Grid) row(y float64) int { return int(math.Floor(y / g.cellH())) }

func (g *Grid) set(c, r int, ch rune) {
	if r < 0 || r >= g.rows || c < 0 || c >= g.cols {
		return
	}
	g.cells[r][c] = ch
}

func (g *Grid) Clear() {
	for r := range g.cells {
		for c := range g.cells[r] {
			g.cells[r][c] = ' '
		}
	}
}

// Rect fills every cell the rectangle touches; at least one cell is drawn.
func (g *Grid) Rect(x, y, w, h float64, col render.Color) {
	c0, r0 := g.col(x), g.row(y)
	c1, r1 := g.col(x+w-1e-9), g.row(y+h-1e-9)
	if c1 < c0 {
		c1 = c0
	}
	if r1 < r0 {
		r1 = r0
	}
	ch := glyphs[col]
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			g.set(c, r, ch)
		}
	}
}

func (g *Grid) Circle(x, y, radius float64, col render.Color) {
	ch := glyphs[col]
	g.set(g.col(x), g.row(y), ch)
	for r := g.row(y - radius); r <= g.row(y+radius); r++ {
		for c := g.col(x - radius); c <= g.col(x+radius); c++ {
			cx := (float64(c) + 0.5) * g.cellW()
			cy := (float64(r) + 0.5) * g.cellH()
			if math.Hypot(cx-x, cy-y) <= radius {
				g.set(c, r, ch)
			}
		}
	}
}

// Text writes s starting at the cell containing (x, y). The color is ignored.
func (g *Grid) Text(x, y float64, s string, _ render.Color) {
	c, r := g.col(x), g.row(y)
	for _, ch := range s {
		g.set(c, r, ch)
		c++
	}
}

func (g *Grid) TextWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * g.cellW()
}

func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.cols + 1) * g.rows * 2)
	for r, line := range g.cells {
		if r > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(line))
	}
	return b.String()
}
