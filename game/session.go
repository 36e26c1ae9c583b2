// Package game mirrors a pong room on the client. The local paddle is
// predicted from the keyboard, the opponent paddle and the ball follow server
// samples through interpolation, and everything else is copied from server
// events.
package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/mo-shahab/go-pong-client/ball"
	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/entity"
	"github.com/mo-shahab/go-pong-client/input"
	"github.com/mo-shahab/go-pong-client/latency"
	"github.com/mo-shahab/go-pong-client/paddle"
	"github.com/mo-shahab/go-pong-client/protocol"
	"github.com/mo-shahab/go-pong-client/room"
)

var (
	ErrNotRunning  = errors.New("session is not running")
	ErrOffline     = errors.New("connection lost")
	ErrInvalidCode = errors.New("invalid room code")
)

// Scheduler runs deferred work on the loop that owns the session.
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Transport delivers encoded frames to the server without waiting.
type Transport interface {
	Send(frame []byte) error
}

type Options struct {
	Canvas            canvas.Canvas
	Paddle            paddle.Paddle
	PaddleInset       float64
	BallRadius        float64
	Factor            float64
	SendInterval      time.Duration
	MaxSendIterations int
	MaxFrameDelta     time.Duration
	Latency           latency.Config
	LocalName         string
}

func DefaultOptions() Options {
	return Options{
		Canvas:            canvas.Default(),
		Paddle:            paddle.Default(),
		PaddleInset:       paddle.DefaultInset,
		BallRadius:        ball.DefaultRadius,
		Factor:            entity.DefaultFactor,
		SendInterval:      DefaultSendInterval,
		MaxSendIterations: DefaultMaxSendIterations,
		MaxFrameDelta:     100 * time.Millisecond,
		Latency:           latency.DefaultConfig(),
	}
}

// Session owns every entity and the room metadata. All methods must be
// called from the loop goroutine.
type Session struct {
	opts  Options
	codec *protocol.Codec
	out   Transport
	sched Scheduler

	clock    *Clock
	held     input.State
	local    *paddle.Local
	opponent *paddle.Remote
	ball     *ball.Ball
	meta     *room.Metadata
	probe    *latency.Probe
	sender   *positionSender

	localSide canvas.Side
	swapped   bool
	labels    [2]canvas.Position // local, opponent

	connected bool
	notice    string
	message   string
	frames    uint64
}

func NewSession(opts Options, sched Scheduler, out Transport) *Session {
	s := &Session{
		opts:      opts,
		codec:     protocol.NewCodec(protocol.Pong),
		out:       out,
		sched:     sched,
		clock:     NewClock(opts.MaxFrameDelta),
		meta:      room.New(opts.LocalName),
		localSide: canvas.Left,
		connected: true,
	}

	c := opts.Canvas
	bounds := c.PaddleBounds(opts.Paddle.Length)
	startY := (c.Height - opts.Paddle.Length) / 2
	s.local = paddle.NewLocal(opts.Paddle,
		canvas.Position{X: c.PaddleX(canvas.Left, opts.PaddleInset), Y: startY}, bounds)
	s.opponent = paddle.NewRemote(opts.Paddle,
		canvas.Position{X: c.PaddleX(canvas.Right, opts.PaddleInset), Y: startY}, opts.Factor, bounds)
	s.ball = ball.New(c.Center(), opts.BallRadius, opts.Factor)
	s.labels = [2]canvas.Position{s.labelAnchor(canvas.Left), s.labelAnchor(canvas.Right)}

	s.probe = latency.New(opts.Latency, sched, func(p protocol.Ping) error {
		if !s.connected {
			return ErrOffline
		}
		return s.send(protocol.KindPing, p)
	})
	s.sender = &positionSender{
		sched:    sched,
		interval: opts.SendInterval,
		maxIter:  opts.MaxSendIterations,
		held:     func() bool { return s.held.Any() && s.canMove() },
		position: func() float64 { return s.local.Position.Y },
		send:     s.sendPosition,
	}
	return s
}

func (s *Session) labelAnchor(side canvas.Side) canvas.Position {
	c := s.opts.Canvas
	return canvas.Position{X: c.PaddleX(side, s.opts.PaddleInset), Y: c.Margin / 2}
}

// Start begins latency probing once the transport is up.
func (s *Session) Start() {
	s.probe.Start()
}

func (s *Session) Stop() {
	s.probe.Stop()
	s.sender.stop(false)
}

func (s *Session) send(k protocol.Kind, payload any) error {
	b, err := s.codec.Encode(k, payload)
	if err != nil {
		return err
	}
	return s.out.Send(b)
}

func (s *Session) canMove() bool {
	return s.connected && s.meta.Online()
}

func (s *Session) sendPosition(y float64) {
	if !s.canMove() {
		return
	}
	if err := s.send(protocol.KindPaddleMoved, &protocol.PaddlePosition{Y: &y}); err != nil {
		log.Warnf("Failed to send paddle position: %v", err)
	}
}

func (s *Session) CreateRoom() error {
	if !s.connected {
		return ErrOffline
	}
	log.Infof("Creating room")
	return s.send(protocol.KindCreateRoom, nil)
}

func (s *Session) JoinRoom(code string) error {
	if code == "" {
		return ErrInvalidCode
	}
	if !s.connected {
		return ErrOffline
	}
	log.Infof("Joining room %s", code)
	return s.send(protocol.KindJoinRoom, &protocol.RoomCode{Code: code})
}

// Say sends a chat message to the server.
func (s *Session) Say(msg string) error {
	if !s.connected {
		return ErrOffline
	}
	return s.send(protocol.KindMessage, &protocol.Message{Message: msg})
}

// Key applies a keyboard event.
func (s *Session) Key(ev input.KeyEvent) {
	if ev.Key == input.KeyShoot {
		if ev.Down {
			s.shoot()
		}
		return
	}

	// presses outside a running room are not remembered
	if ev.Down && !s.canMove() {
		return
	}
	if !s.held.Apply(ev) {
		return
	}
	if ev.Down {
		s.sender.start()
		return
	}
	if !s.held.Any() {
		s.sender.stop(true)
	}
}

func (s *Session) shoot() {
	if !s.canMove() {
		log.Debugf("Ignoring shot, %v", s.meta.Status)
		return
	}
	if err := s.send(protocol.KindBallShot, nil); err != nil {
		log.Warnf("Failed to send ball shot: %v", err)
	}
}

// Frame advances one frame: input is read, the local paddle is simulated and
// the remote entities move toward their targets.
func (s *Session) Frame(now time.Time) {
	dt := s.clock.Tick(now)
	s.frames++

	if s.canMove() {
		s.local.Advance(dt, s.held)
	}
	s.opponent.AdvanceRender()
	s.ball.AdvanceRender()
}

// Swap exchanges the sides of the two players. Paddles and labels move in the
// same call so no frame observes a half swapped room.
func (s *Session) Swap() {
	c := s.opts.Canvas
	localY := s.local.Position.Y
	opponentY := s.opponent.Rendered().Y

	s.localSide = s.localSide.Opposite()
	s.local.Place(canvas.Position{X: c.PaddleX(s.localSide, s.opts.PaddleInset), Y: opponentY})
	s.opponent.Reset(canvas.Position{X: c.PaddleX(s.localSide.Opposite(), s.opts.PaddleInset), Y: localY})
	s.labels[0], s.labels[1] = s.labels[1], s.labels[0]
	s.swapped = !s.swapped
	s.sender.forget()

	log.Debugf("Swapped sides, local plays %v", s.localSide)
}

// ConnectionLost freezes the room: both players are shown disconnected and
// nothing is sent until a new session is created.
func (s *Session) ConnectionLost(err error) {
	if !s.connected {
		return
	}
	log.Warnf("Connection lost: %v", err)
	s.connected = false
	s.meta.ConnectionLost()
	s.held.Release()
	s.Stop()
}

// DismissNotice clears a blocking notice.
func (s *Session) DismissNotice() {
	s.notice = ""
}

func (s *Session) setNotice(format string, args ...any) {
	s.notice = fmt.Sprintf(format, args...)
	log.Infof("Notice: %s", s.notice)
}

func (s *Session) Status() room.Status { return s.meta.Status }

func (s *Session) Connected() bool { return s.connected }

func (s *Session) LocalSide() canvas.Side { return s.localSide }

// localIsPlayer1 reports whether the local player is player 1 on the server,
// the room owner on the left.
func (s *Session) localIsPlayer1() bool {
	return !s.swapped
}
