// Package latency measures the round trip time to the game server with an
// application level ping. The result is informational only.
package latency

import (
	"time"

	"github.com/google/uuid"

	"github.com/mo-shahab/go-pong-client/protocol"
)

const (
	DefaultInterval = 4 * time.Second
	DefaultTimeout  = 2 * time.Second
	DefaultMaxRTT   = 10 * time.Second
)

// Scheduler runs fn after d on the owning loop.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

type Config struct {
	Interval time.Duration
	Timeout  time.Duration
	// MaxRTT is the largest reading that is believed
	MaxRTT time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Timeout:  DefaultTimeout,
		MaxRTT:   DefaultMaxRTT,
	}
}

type pending struct {
	id        string
	timestamp int64
}

// Probe sends one ping at a time. The next ping goes out Interval after the
// echo arrives, or after Interval once a ping timed out.
type Probe struct {
	cfg   Config
	send  func(protocol.Ping) error
	sched Scheduler
	now   func() time.Time
	newID func() string

	running  bool
	inFlight *pending
	cancel   func()

	rtt       time.Duration
	hasRTT    bool
	timeouts  int
	discarded int
}

func New(cfg Config, sched Scheduler, send func(protocol.Ping) error) *Probe {
	return &Probe{
		cfg:   cfg,
		send:  send,
		sched: sched,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SetClock replaces the time source, used by tests.
func (p *Probe) SetClock(now func() time.Time) {
	p.now = now
}

func (p *Probe) Start() {
	if p.running {
		return
	}
	p.running = true
	p.measure()
}

func (p *Probe) Stop() {
	p.running = false
	p.inFlight = nil
	p.stopTimer()
}

func (p *Probe) Running() bool { return p.running }

func (p *Probe) stopTimer() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

func (p *Probe) measure() {
	if !p.running {
		return
	}
	ping := protocol.Ping{
		ID:        p.newID(),
		Timestamp: p.now().UnixMilli(),
	}
	p.inFlight = &pending{id: ping.ID, timestamp: ping.Timestamp}
	if err := p.send(ping); err != nil {
		log.Warnf("Failed to send ping %s: %v", ping.ID, err)
	}

	id := ping.ID
	p.stopTimer()
	p.cancel = p.sched.After(p.cfg.Timeout, func() { p.expire(id) })
}

func (p *Probe) expire(id string) {
	if !p.running || p.inFlight == nil || p.inFlight.id != id {
		return
	}
	log.Debugf("Ping %s timed out after %v", id, p.cfg.Timeout)
	p.timeouts++
	p.inFlight = nil
	p.scheduleNext()
}

func (p *Probe) scheduleNext() {
	p.stopTimer()
	p.cancel = p.sched.After(p.cfg.Interval, p.measure)
}

// OnEcho handles a ping echo. Echoes that do not belong to the ping in
// flight are ignored.
func (p *Probe) OnEcho(echo protocol.PingEcho) {
	if !p.running || p.inFlight == nil || echo.Timestamp == nil {
		return
	}
	if echo.ID != "" && echo.ID != p.inFlight.id {
		log.Tracef("Ignoring stale ping echo %s", echo.ID)
		return
	}
	if echo.ID == "" && *echo.Timestamp != p.inFlight.timestamp {
		log.Tracef("Ignoring stale ping echo at %d", *echo.Timestamp)
		return
	}
	p.inFlight = nil

	rtt := time.Duration(p.now().UnixMilli()-*echo.Timestamp) * time.Millisecond
	if rtt < 0 || rtt > p.cfg.MaxRTT {
		log.Warnf("Discarding implausible round trip time %v", rtt)
		p.discarded++
	} else {
		p.rtt = rtt
		p.hasRTT = true
		log.Tracef("Round trip time %v", rtt)
	}
	p.scheduleNext()
}

// RTT returns the last plausible measurement.
func (p *Probe) RTT() (time.Duration, bool) {
	return p.rtt, p.hasRTT
}

func (p *Probe) Timeouts() int { return p.timeouts }

func (p *Probe) Discarded() int { return p.discarded }
