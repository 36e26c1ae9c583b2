package room

import "fmt"

type Status int

// Paused is reserved; no event enters it yet
const (
	NotStarted Status = iota
	Running
	Paused
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

type Player struct {
	Name      string
	Connected bool
	Score     int
}

// Metadata is what the client knows about the room it plays in. It changes
// only on server events.
type Metadata struct {
	Code     string
	Status   Status
	Local    Player
	Opponent Player
}

func New(localName string) *Metadata {
	return &Metadata{
		Status: NotStarted,
		Local:  Player{Name: localName},
	}
}

// Created records a room this client owns and waits in.
func (m *Metadata) Created(code, localName string) {
	m.Code = code
	if localName != "" {
		m.Local.Name = localName
	}
	m.Local.Connected = true
}

// Joined marks both players present and starts the session.
func (m *Metadata) Joined(code, opponent string) {
	if code != "" {
		m.Code = code
	}
	m.Opponent.Name = opponent
	m.Opponent.Connected = true
	m.Local.Connected = true
	m.Status = Running
}

// OpponentLeft clears the opponent flag. The session keeps running.
func (m *Metadata) OpponentLeft() {
	m.Opponent.Connected = false
}

// ConnectionLost is the local equivalent of both players leaving.
func (m *Metadata) ConnectionLost() {
	m.Local.Connected = false
	m.Opponent.Connected = false
}

func (m *Metadata) Running() bool {
	return m.Status == Running
}

// Online reports whether outbound messages may be sent.
func (m *Metadata) Online() bool {
	return m.Running() && m.Local.Connected
}
