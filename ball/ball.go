package ball

import (
	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/entity"
)

const DefaultRadius = 7

// Ball is drawn from server samples only. It is not clamped, the server is
// trusted to keep it inside the arena.
type Ball struct {
	*entity.Remote
	Radius  float64
	Visible bool
}

func New(center canvas.Position, radius, factor float64) *Ball {
	return &Ball{
		Remote:  entity.NewRemote(center, factor, nil),
		Radius:  radius,
		Visible: true,
	}
}

// Recenter puts the ball back in the middle without sliding, used on goals
func (b *Ball) Recenter(c canvas.Canvas) {
	b.Reset(c.Center())
}
