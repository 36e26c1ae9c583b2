// Package tictactoe mirrors a tic-tac-toe game played on the server.
package tictactoe

import (
	"errors"
	"fmt"
	"time"

	"github.com/mo-shahab/go-pong-client/protocol"
)

const (
	Size               = protocol.BoardSize
	DefaultResultDelay = 1500 * time.Millisecond
)

var (
	ErrInvalidCell = errors.New("invalid cell")
	ErrCellTaken   = errors.New("cell already taken")
	ErrOffline     = errors.New("connection lost")
	ErrInvalidCode = errors.New("invalid game code")
)

type Mark int

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return " "
}

type Result int

const (
	NoResult Result = iota
	Tie
	Victory
	Defeat
)

func (r Result) String() string {
	switch r {
	case Tie:
		return "tie"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	}
	return ""
}

type Status int

// same numbering as the server
const (
	Paused Status = iota
	Running
	Finished
)

type Player struct {
	Name      string
	Wins      int
	Connected bool
}

type Cell struct {
	Row, Col int
}

type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

type Transport interface {
	Send(frame []byte) error
}

// Game is owned by the loop goroutine.
type Game struct {
	codec *protocol.Codec
	out   Transport
	sched Scheduler
	delay time.Duration

	code      string
	localName string
	board     [Size][Size]Mark
	players   [2]*Player
	turn      int
	status    Status
	ties      int

	result      Result
	winning     []Cell
	cancelClear func()

	connected bool
	notice    string
	message   string
}

func New(localName string, sched Scheduler, out Transport) *Game {
	return &Game{
		codec:     protocol.NewCodec(protocol.TicTacToe),
		out:       out,
		sched:     sched,
		delay:     DefaultResultDelay,
		localName: localName,
		connected: true,
	}
}

// SetResultDelay changes how long a finished board stays on screen.
func (g *Game) SetResultDelay(d time.Duration) {
	g.delay = d
}

func (g *Game) send(k protocol.Kind, payload any) error {
	if !g.connected {
		return ErrOffline
	}
	b, err := g.codec.Encode(k, payload)
	if err != nil {
		return err
	}
	return g.out.Send(b)
}

func (g *Game) Create() error {
	log.Infof("Creating game")
	return g.send(protocol.KindCreateGame, nil)
}

func (g *Game) Join(code string) error {
	if code == "" {
		return ErrInvalidCode
	}
	log.Infof("Joining game %s", code)
	return g.send(protocol.KindJoinGame, &protocol.RoomCode{Code: code})
}

// Play asks the server to mark a cell. Turn order is enforced by the server.
func (g *Game) Play(row, col int) error {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return fmt.Errorf("%w: %d,%d", ErrInvalidCell, row, col)
	}
	if g.board[row][col] != Empty {
		return fmt.Errorf("%w: %d,%d", ErrCellTaken, row, col)
	}
	return g.send(protocol.KindMakePlay, &protocol.Play{Row: row, Col: col})
}

func (g *Game) ConnectionLost(err error) {
	if !g.connected {
		return
	}
	log.Warnf("Connection lost: %v", err)
	g.connected = false
	for _, p := range g.players {
		if p != nil {
			p.Connected = false
		}
	}
	if g.cancelClear != nil {
		g.cancelClear()
		g.cancelClear = nil
	}
}

func (g *Game) DismissNotice() {
	g.notice = ""
}

// LocalMark is the mark of this client, Empty while unknown.
func (g *Game) LocalMark() Mark {
	for i, p := range g.players {
		if p != nil && p.Name != "" && p.Name == g.localName {
			return Mark(i + 1)
		}
	}
	return Empty
}

// ToMove returns the mark expected to play next.
func (g *Game) ToMove() Mark {
	if g.turn%2 == 0 {
		return X
	}
	return O
}

func (g *Game) Board() [Size][Size]Mark { return g.board }

func (g *Game) Result() Result { return g.result }

// winningCells returns the cells of every full line through c.
func winningCells(b [Size][Size]Mark, c Cell) []Cell {
	m := b[c.Row][c.Col]
	if m == Empty {
		return nil
	}
	lines := [][]Cell{
		{{c.Row, 0}, {c.Row, 1}, {c.Row, 2}},
		{{0, c.Col}, {1, c.Col}, {2, c.Col}},
	}
	if c.Row == c.Col {
		lines = append(lines, []Cell{{0, 0}, {1, 1}, {2, 2}})
	}
	if c.Row+c.Col == Size-1 {
		lines = append(lines, []Cell{{0, 2}, {1, 1}, {2, 0}})
	}

	var out []Cell
	for _, line := range lines {
		full := true
		for _, lc := range line {
			if b[lc.Row][lc.Col] != m {
				full = false
				break
			}
		}
		if full {
			out = append(out, line...)
		}
	}
	return out
}
