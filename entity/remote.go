// Package entity holds the remote-controlled entities of a session. They never
// simulate: they keep the last authoritative sample and blend the drawn
// position toward it once per frame.
package entity

import (
	"fmt"

	"github.com/mo-shahab/go-pong-client/canvas"
)

// DefaultFactor closes 90% of the remaining gap each frame.
//
// The blend is applied per frame and not scaled by elapsed time, so
// convergence is faster at higher frame rates.
const DefaultFactor = 0.9

type Remote struct {
	rendered canvas.Position
	target   canvas.Position
	factor   float64
	bounds   *canvas.Bounds
}

// NewRemote creates an entity at rest at start. bounds may be nil for an
// unclamped entity such as the ball. factor must be in (0,1).
func NewRemote(start canvas.Position, factor float64, bounds *canvas.Bounds) *Remote {
	if err := ValidateFactor(factor); err != nil {
		panic(err)
	}
	r := &Remote{
		factor: factor,
		bounds: bounds,
	}
	r.Reset(start)
	return r
}

func ValidateFactor(factor float64) error {
	if !(factor > 0 && factor < 1) {
		return fmt.Errorf("interpolation factor %v out of range (0,1)", factor)
	}
	return nil
}

// OnSample replaces the target. The rendered position is left alone until the
// next AdvanceRender. Applying the same sample twice is harmless.
func (r *Remote) OnSample(p canvas.Position) {
	if !p.IsFinite() {
		return
	}
	r.target = p
}

// AdvanceRender performs one exponential smoothing step.
func (r *Remote) AdvanceRender() {
	if r.rendered == r.target {
		return
	}
	gap := r.target.Sub(r.rendered)
	r.rendered = r.rendered.Add(gap.Scale(r.factor))
	if r.bounds != nil {
		r.rendered.Y = r.bounds.Clamp(r.rendered.Y)
	}
}

// Reset force-sets both positions, skipping interpolation.
func (r *Remote) Reset(p canvas.Position) {
	if r.bounds != nil {
		p.Y = r.bounds.Clamp(p.Y)
	}
	r.rendered = p
	r.target = p
}

func (r *Remote) SetBounds(b *canvas.Bounds) {
	r.bounds = b
	if b != nil {
		r.rendered.Y = b.Clamp(r.rendered.Y)
	}
}

func (r *Remote) Rendered() canvas.Position { return r.rendered }

func (r *Remote) Target() canvas.Position { return r.target }

