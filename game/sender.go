package game

import "time"

const (
	DefaultSendInterval      = 16 * time.Millisecond
	DefaultMaxSendIterations = 10000
)

// positionSender throttles paddle updates while a movement key is held. Each
// iteration is a separate task on the loop; it never waits inline.
type positionSender struct {
	sched    Scheduler
	interval time.Duration
	maxIter  int

	held     func() bool
	position func() float64
	send     func(y float64)

	active   bool
	iter     int
	cancel   func()
	lastSent float64
	hasSent  bool
}

func (ps *positionSender) start() {
	if ps.active {
		return
	}
	ps.active = true
	ps.iter = 0
	ps.schedule()
}

func (ps *positionSender) schedule() {
	ps.cancel = ps.sched.After(ps.interval, ps.tick)
}

func (ps *positionSender) tick() {
	ps.cancel = nil
	if !ps.active {
		return
	}
	if !ps.held() || ps.iter >= ps.maxIter {
		if ps.iter >= ps.maxIter {
			log.Debugf("Position sender stopped after %d iterations", ps.iter)
		}
		ps.active = false
		return
	}
	ps.iter++
	y := ps.position()
	if !ps.hasSent || y != ps.lastSent {
		ps.emit(y)
	}
	ps.schedule()
}

func (ps *positionSender) emit(y float64) {
	ps.send(y)
	ps.lastSent = y
	ps.hasSent = true
}

// stop ends the loop and sends the final resting position.
func (ps *positionSender) stop(flush bool) {
	if ps.cancel != nil {
		ps.cancel()
		ps.cancel = nil
	}
	ps.active = false
	if flush {
		ps.emit(ps.position())
	}
}

// forget drops the last sent position, used when the paddle is moved by the
// server so the next held key always reports.
func (ps *positionSender) forget() {
	ps.hasSent = false
}
