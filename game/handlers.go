package game

import (
	"github.com/mo-shahab/go-pong-client/canvas"
	"github.com/mo-shahab/go-pong-client/protocol"
)

// InboundKinds are the events the server sends to a pong client.
var InboundKinds = []protocol.Kind{
	protocol.KindGameSettings,
	protocol.KindMessage,
	protocol.KindOpponentDisconnected,
	protocol.KindRoomCreated,
	protocol.KindRoomJoined,
	protocol.KindOpponentJoined,
	protocol.KindPaddleMoved,
	protocol.KindBallUpdate,
	protocol.KindGoal,
	protocol.KindSyncGameState,
	protocol.KindPingEcho,
}

// RequestKinds are the requests the server may answer with an error.
var RequestKinds = []protocol.Kind{
	protocol.KindCreateRoom,
	protocol.KindJoinRoom,
	protocol.KindPaddleMoved,
	protocol.KindBallShot,
	protocol.KindPing,
	protocol.KindMessage,
}

// Register installs the session handlers on d.
func (s *Session) Register(d *protocol.Dispatcher) {
	d.On(protocol.KindGameSettings, s.onGameSettings)
	d.On(protocol.KindMessage, s.onMessage)
	d.On(protocol.KindOpponentDisconnected, s.onOpponentDisconnected)
	d.On(protocol.KindRoomCreated, s.onRoomCreated)
	d.On(protocol.KindRoomJoined, s.onRoomJoined)
	d.On(protocol.KindOpponentJoined, s.onOpponentJoined)
	d.On(protocol.KindPaddleMoved, s.onPaddleMoved)
	d.On(protocol.KindBallUpdate, s.onBallUpdate)
	d.On(protocol.KindGoal, s.onGoal)
	d.On(protocol.KindSyncGameState, s.onSyncGameState)
	d.On(protocol.KindPingEcho, s.onPingEcho)

	d.OnError(protocol.KindCreateRoom, s.requestFailed("Could not create room"))
	d.OnError(protocol.KindJoinRoom, s.onJoinError)
	d.OnError(protocol.KindPaddleMoved, s.logFailure)
	d.OnError(protocol.KindBallShot, s.logFailure)
	d.OnError(protocol.KindPing, s.logFailure)
	d.OnError(protocol.KindMessage, s.logFailure)
}

// decode fails closed: a payload that does not validate is dropped whole.
func decode(ev protocol.Event, p protocol.Payload) bool {
	if err := ev.Decode(p); err != nil {
		log.Errorf("Dropping %v: %v", ev.Kind, err)
		return false
	}
	return true
}

func errorMessage(ev protocol.Event) string {
	var e protocol.Error
	if err := ev.Decode(&e); err != nil || e.Message == "" {
		return "server error"
	}
	return e.Message
}

func (s *Session) onGameSettings(ev protocol.Event) {
	var p protocol.GameSettings
	if !decode(ev, &p) {
		return
	}
	if p.PaddleSpeed != nil && *p.PaddleSpeed > 0 {
		s.local.Speed = *p.PaddleSpeed
		s.opponent.Speed = *p.PaddleSpeed
	}
	if p.PaddleWidth != nil && *p.PaddleWidth > 0 {
		s.local.Width = *p.PaddleWidth
		s.opponent.Width = *p.PaddleWidth
	}
	if p.PaddleLength != nil && *p.PaddleLength > 0 {
		s.local.Length = *p.PaddleLength
		s.opponent.Length = *p.PaddleLength
		b := s.opts.Canvas.PaddleBounds(*p.PaddleLength)
		s.local.SetBounds(b)
		s.opponent.SetBounds(&b)
	}
	if p.BallRadius != nil && *p.BallRadius > 0 {
		s.ball.Radius = *p.BallRadius
	}
	log.Debugf("Applied game settings: speed=%v length=%v", s.local.Speed, s.local.Length)
}

func (s *Session) onMessage(ev protocol.Event) {
	fields, err := protocol.Opaque(ev)
	if err != nil {
		log.Errorf("Dropping message: %v", err)
		return
	}
	msg, ok := protocol.OpaqueString(fields, "message")
	if !ok {
		log.Debugf("Message without text: %v", fields)
		return
	}
	if from, ok := protocol.OpaqueString(fields, "from"); ok && from != "" {
		msg = from + ": " + msg
	}
	s.message = msg
	log.Infof("Server message: %s", msg)
}

func (s *Session) onRoomCreated(ev protocol.Event) {
	var p protocol.RoomCreated
	if !decode(ev, &p) {
		return
	}
	name := ev.To
	if name == "" {
		name = p.Username
	}
	s.meta.Created(p.Code, name)
	log.Infof("Created room %s, waiting for an opponent", p.Code)
}

// onRoomJoined handles the reply to our own JoinRoom. The joiner always plays
// on the right.
func (s *Session) onRoomJoined(ev protocol.Event) {
	var p protocol.RoomJoined
	if !decode(ev, &p) {
		return
	}
	if p.Username != "" {
		s.meta.Local.Name = p.Username
	}
	s.meta.Joined(p.Code, p.Player)
	s.notice = ""
	if !s.swapped {
		s.Swap()
	}
	log.Infof("Joined room %s against %s", s.meta.Code, p.Player)
}

func (s *Session) onOpponentJoined(ev protocol.Event) {
	var p protocol.OpponentJoined
	if !decode(ev, &p) {
		return
	}
	s.meta.Joined(p.Code, p.Player)
	log.Infof("%s joined room %s", p.Player, s.meta.Code)
}

// onOpponentDisconnected keeps the room running; the opponent paddle stays
// where it was last drawn.
func (s *Session) onOpponentDisconnected(ev protocol.Event) {
	var p protocol.OpponentDisconnected
	if len(ev.Data) > 0 && !decode(ev, &p) {
		return
	}
	s.meta.OpponentLeft()
	s.opponent.Reset(s.opponent.Rendered())
	log.Infof("Opponent %s disconnected", s.meta.Opponent.Name)
}

func (s *Session) onPaddleMoved(ev protocol.Event) {
	var p protocol.PaddlePosition
	if !decode(ev, &p) {
		return
	}
	s.opponent.OnY(*p.Y)
}

func (s *Session) onBallUpdate(ev protocol.Event) {
	var p protocol.BallPosition
	if !decode(ev, &p) {
		return
	}
	s.ball.OnSample(canvas.Position{X: *p.X, Y: *p.Y})
}

func (s *Session) onGoal(ev protocol.Event) {
	var p protocol.Goal
	if !decode(ev, &p) {
		return
	}
	if s.localIsPlayer1() {
		s.meta.Local.Score, s.meta.Opponent.Score = *p.Player1Score, *p.Player2Score
	} else {
		s.meta.Local.Score, s.meta.Opponent.Score = *p.Player2Score, *p.Player1Score
	}
	s.ball.Recenter(s.opts.Canvas)
	log.Infof("Goal, score %d-%d", *p.Player1Score, *p.Player2Score)
}

// onSyncGameState applies a full snapshot. Remote entities are reset to the
// server positions without interpolation.
func (s *Session) onSyncGameState(ev protocol.Event) {
	var p protocol.SyncGameState
	if !decode(ev, &p) {
		return
	}

	local, opponent := p.Player1, p.Player2
	switch {
	case p.Player2 != nil && p.Player2.Username != "" && p.Player2.Username == s.meta.Local.Name:
		local, opponent = p.Player2, p.Player1
	case p.Player1 != nil && p.Player1.Username != "" && p.Player1.Username == s.meta.Local.Name:
	case !s.localIsPlayer1():
		local, opponent = p.Player2, p.Player1
	}

	if local != nil {
		s.meta.Local.Score = local.Points
		if local.Paddle != nil {
			s.local.Place(canvas.Position{X: s.local.Position.X, Y: local.Paddle.Position.Y})
			s.sender.forget()
		}
	}
	if opponent != nil {
		if opponent.Username != "" {
			s.meta.Opponent.Name = opponent.Username
		}
		s.meta.Opponent.Score = opponent.Points
		s.meta.Opponent.Connected = opponent.Connected
		if opponent.Paddle != nil {
			s.opponent.Reset(canvas.Position{X: s.opponent.Target().X, Y: opponent.Paddle.Position.Y})
		}
	}
	if p.Ball != nil {
		s.ball.Reset(canvas.Position{X: p.Ball.Position.X, Y: p.Ball.Position.Y})
		if p.Ball.Radius > 0 {
			s.ball.Radius = p.Ball.Radius
		}
	}
	log.Debugf("Synced game state, score %d-%d", s.meta.Local.Score, s.meta.Opponent.Score)
}

func (s *Session) onPingEcho(ev protocol.Event) {
	var p protocol.PingEcho
	if !decode(ev, &p) {
		return
	}
	s.probe.OnEcho(p)
}

func (s *Session) onJoinError(ev protocol.Event) {
	s.setNotice("Could not join room: %s", errorMessage(ev))
}

func (s *Session) requestFailed(prefix string) func(protocol.Event) {
	return func(ev protocol.Event) {
		s.setNotice("%s: %s", prefix, errorMessage(ev))
	}
}

func (s *Session) logFailure(ev protocol.Event) {
	log.Warnf("Server rejected %v: %s", ev.Kind, errorMessage(ev))
}
