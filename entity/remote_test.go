package entity

import (
	"math"
	"testing"

	"github.com/mo-shahab/go-pong-client/canvas"
)

func TestAdvanceRenderAtRestIsNoop(t *testing.T) {
	r := NewRemote(canvas.Position{X: 10, Y: 20}, DefaultFactor, nil)
	for i := 0; i < 5; i++ {
		r.AdvanceRender()
	}
	if got := r.Rendered(); got != (canvas.Position{X: 10, Y: 20}) {
		t.Fatalf("rendered moved at rest: %+v", got)
	}
}

func TestOnSampleDoesNotMoveRendered(t *testing.T) {
	r := NewRemote(canvas.Position{Y: 100}, DefaultFactor, nil)
	r.OnSample(canvas.Position{Y: 140})
	if r.Rendered().Y != 100 {
		t.Fatalf("rendered jumped to %v", r.Rendered().Y)
	}
	if r.Target().Y != 140 {
		t.Fatalf("target = %v, want 140", r.Target().Y)
	}
}

func TestInterpolationApproachesWithoutOvershoot(t *testing.T) {
	r := NewRemote(canvas.Position{Y: 100}, DefaultFactor, nil)
	r.OnSample(canvas.Position{Y: 140})

	prev := r.Rendered().Y
	for i := 0; i < 10; i++ {
		r.AdvanceRender()
		y := r.Rendered().Y
		if y > 140 {
			t.Fatalf("frame %d: overshoot to %v", i, y)
		}
		if y < prev {
			t.Fatalf("frame %d: moved away from target, %v -> %v", i, prev, y)
		}
		if y == prev && y != 140 {
			t.Fatalf("frame %d: stalled at %v", i, y)
		}
		prev = y
	}
	if math.Abs(140-prev) > 1e-6 {
		t.Fatalf("did not converge, at %v", prev)
	}
}

func TestNewerSampleWhileInterpolating(t *testing.T) {
	r := NewRemote(canvas.Position{Y: 0}, DefaultFactor, nil)
	r.OnSample(canvas.Position{Y: 100})
	r.AdvanceRender()
	r.OnSample(canvas.Position{Y: 140})

	prev := r.Rendered().Y
	for i := 0; i < 10; i++ {
		r.AdvanceRender()
		y := r.Rendered().Y
		if y > 140 {
			t.Fatalf("frame %d: overshoot to %v", i, y)
		}
		if y <= prev {
			t.Fatalf("frame %d: y %v -> %v is not increasing", i, prev, y)
		}
		prev = y
	}
	if math.Abs(140-prev) > 1e-6 {
		t.Fatalf("did not converge, at %v", prev)
	}
}

func TestFirstStepClosesFactorOfGap(t *testing.T) {
	r := NewRemote(canvas.Position{X: 0, Y: 0}, 0.5, nil)
	r.OnSample(canvas.Position{X: 100, Y: -40})
	r.AdvanceRender()
	if got := r.Rendered(); got != (canvas.Position{X: 50, Y: -20}) {
		t.Fatalf("rendered = %+v, want {50 -20}", got)
	}
}

func TestConvergenceIsBounded(t *testing.T) {
	tests := []struct {
		factor float64
		frames int
	}{
		{0.9, 6},
		{0.5, 20},
		{0.1, 150},
	}
	for _, tc := range tests {
		r := NewRemote(canvas.Position{}, tc.factor, nil)
		r.OnSample(canvas.Position{X: 300, Y: 300})
		for i := 0; i < tc.frames; i++ {
			r.AdvanceRender()
		}
		gap := r.Target().Sub(r.Rendered())
		if math.Abs(gap.X) > 0.01 || math.Abs(gap.Y) > 0.01 {
			t.Errorf("factor %v: gap %+v after %d frames", tc.factor, gap, tc.frames)
		}
	}
}

func TestClampedAfterSmoothing(t *testing.T) {
	b := canvas.Bounds{MinY: 25, MaxY: 295}
	r := NewRemote(canvas.Position{Y: 290}, DefaultFactor, &b)
	r.OnSample(canvas.Position{Y: 400})
	for i := 0; i < 10; i++ {
		r.AdvanceRender()
		if y := r.Rendered().Y; y > b.MaxY {
			t.Fatalf("rendered %v above bound %v", y, b.MaxY)
		}
	}
	if r.Rendered().Y != b.MaxY {
		t.Fatalf("rendered = %v, want %v", r.Rendered().Y, b.MaxY)
	}
}

func TestUnboundedEntityIsNotClamped(t *testing.T) {
	r := NewRemote(canvas.Position{Y: 0}, DefaultFactor, nil)
	r.OnSample(canvas.Position{Y: -50})
	r.AdvanceRender()
	if r.Rendered().Y >= 0 {
		t.Fatalf("rendered = %v, want negative", r.Rendered().Y)
	}
}

func TestResetSkipsInterpolation(t *testing.T) {
	r := NewRemote(canvas.Position{X: 600, Y: 10}, DefaultFactor, nil)
	r.OnSample(canvas.Position{X: 620, Y: 12})
	r.AdvanceRender()

	center := canvas.Position{X: 320, Y: 180}
	r.Reset(center)
	if r.Rendered() != center || r.Target() != center {
		t.Fatalf("after reset rendered=%+v target=%+v", r.Rendered(), r.Target())
	}
	r.AdvanceRender()
	if r.Rendered() != center {
		t.Fatalf("rendered left center: %+v", r.Rendered())
	}
}

func TestDuplicateSampleIsIdempotent(t *testing.T) {
	a := NewRemote(canvas.Position{}, DefaultFactor, nil)
	b := NewRemote(canvas.Position{}, DefaultFactor, nil)
	a.OnSample(canvas.Position{X: 5, Y: 5})
	b.OnSample(canvas.Position{X: 5, Y: 5})
	b.OnSample(canvas.Position{X: 5, Y: 5})
	a.AdvanceRender()
	b.AdvanceRender()
	if a.Rendered() != b.Rendered() {
		t.Fatalf("duplicate sample changed result: %+v vs %+v", a.Rendered(), b.Rendered())
	}
}

func TestNonFiniteSampleIgnored(t *testing.T) {
	r := NewRemote(canvas.Position{Y: 10}, DefaultFactor, nil)
	r.OnSample(canvas.Position{Y: math.NaN()})
	if r.Target().Y != 10 {
		t.Fatalf("target = %v", r.Target().Y)
	}
}

func TestFactorOutOfRangePanics(t *testing.T) {
	for _, f := range []float64{0, 1, -0.5, 1.5, math.NaN()} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("factor %v did not panic", f)
				}
			}()
			NewRemote(canvas.Position{}, f, nil)
		}()
	}
}
