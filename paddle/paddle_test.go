package paddle

import (
	"math/rand"
	"testing"

	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/input"
)

func newTestLocal(y float64) *Local {
	c := canvas.Default()
	return NewLocal(Default(), canvas.Position{X: DefaultInset, Y: y}, c.PaddleBounds(DefaultLength))
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		held  input.State
		dt    float64
		want  float64
	}{
		{"up", 100, input.State{Up: true}, 0.1, 70},
		{"down", 100, input.State{Down: true}, 0.1, 130},
		{"both cancel", 100, input.State{Up: true, Down: true}, 0.1, 100},
		{"none", 100, input.State{}, 0.1, 100},
		{"clamp top", 30, input.State{Up: true}, 1, 25},
		{"clamp bottom", 290, input.State{Down: true}, 1, 295},
		{"rounded", 100, input.State{Down: true}, 0.0161, 105},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLocal(tc.start)
			l.Advance(tc.dt, tc.held)
			if l.Position.Y != tc.want {
				t.Fatalf("y = %v, want %v", l.Position.Y, tc.want)
			}
		})
	}
}

func TestSlowStepsAccumulate(t *testing.T) {
	tests := []struct {
		name  string
		speed float64
		dt    float64
		steps int
		want  float64
	}{
		{"25px/s at 60fps", 25, 1.0 / 60, 600, 295},
		{"300px/s at 1000fps", 300, 0.001, 100, 190},
		{"0.3px steps", 18, 1.0 / 60, 10, 163},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newTestLocal(160)
			l.Speed = tc.speed
			for i := 0; i < tc.steps; i++ {
				l.Advance(tc.dt, input.State{Down: true})
			}
			if l.Position.Y != tc.want {
				t.Fatalf("y = %v, want %v", l.Position.Y, tc.want)
			}
		})
	}
}

func TestAdvanceReportsMovement(t *testing.T) {
	l := newTestLocal(25)
	if l.Advance(0.1, input.State{Up: true}) {
		t.Fatal("moved while pinned at the top")
	}
	if !l.Advance(0.1, input.State{Down: true}) {
		t.Fatal("did not report movement")
	}
}

func TestStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	l := newTestLocal(180)
	b := l.Bounds()
	for i := 0; i < 5000; i++ {
		held := input.State{Up: rng.Intn(2) == 0, Down: rng.Intn(2) == 0}
		l.Advance(rng.Float64()*0.2, held)
		if !b.Contains(l.Position.Y) {
			t.Fatalf("step %d: y=%v outside [%v, %v]", i, l.Position.Y, b.MinY, b.MaxY)
		}
	}
}

func TestSetBoundsClamps(t *testing.T) {
	l := newTestLocal(290)
	l.SetBounds(canvas.Default().PaddleBounds(80))
	if l.Position.Y != 255 {
		t.Fatalf("y = %v, want 255", l.Position.Y)
	}
}

func TestRemoteOnYKeepsX(t *testing.T) {
	c := canvas.Default()
	r := NewRemote(Default(), canvas.Position{X: 610, Y: 100}, 0.9, c.PaddleBounds(DefaultLength))
	r.OnY(150)
	if r.Target() != (canvas.Position{X: 610, Y: 150}) {
		t.Fatalf("target = %+v", r.Target())
	}
}
