package protocol

import (
	"errors"
	"fmt"
	"math"
)

// Payload is the data of one event kind. Validate is called after unmarshal
// and rejects shapes the handlers could not apply completely.
type Payload interface {
	Validate() error
}

var (
	errMissingField = errors.New("missing field")
	errOutOfRange   = errors.New("value out of range")
)

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func requireFloat(name string, v *float64) error {
	if v == nil {
		return fmt.Errorf("%w %s", errMissingField, name)
	}
	if !finite(*v) {
		return fmt.Errorf("%w: %s=%v", errOutOfRange, name, *v)
	}
	return nil
}

// Pong

type RoomCode struct {
	Code string `json:"code"`
}

func (p *RoomCode) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("%w code", errMissingField)
	}
	return nil
}

type RoomCreated struct {
	Code     string `json:"code"`
	Username string `json:"username"`
}

func (p *RoomCreated) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("%w code", errMissingField)
	}
	return nil
}

// RoomJoined is sent to the client that joined; Player is the opponent. The
// joiner always plays on the right, so the is_player_1 hint is not decoded.
type RoomJoined struct {
	Code     string `json:"code"`
	Username string `json:"username"`
	Player   string `json:"player"`
}

func (p *RoomJoined) Validate() error {
	if p.Code == "" {
		return fmt.Errorf("%w code", errMissingField)
	}
	if p.Player == "" {
		return fmt.Errorf("%w player", errMissingField)
	}
	return nil
}

// OpponentJoined is sent to the room owner when the second player arrives.
type OpponentJoined struct {
	Code   string `json:"code"`
	Player string `json:"player"`
}

func (p *OpponentJoined) Validate() error {
	if p.Player == "" {
		return fmt.Errorf("%w player", errMissingField)
	}
	return nil
}

type OpponentDisconnected struct {
	Username string `json:"username"`
}

func (p *OpponentDisconnected) Validate() error { return nil }

type PaddlePosition struct {
	Y *float64 `json:"y"`
}

func (p *PaddlePosition) Validate() error {
	return requireFloat("y", p.Y)
}

type BallPosition struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func (p *BallPosition) Validate() error {
	if err := requireFloat("x", p.X); err != nil {
		return err
	}
	return requireFloat("y", p.Y)
}

type Goal struct {
	Player1Score *int `json:"player1_score"`
	Player2Score *int `json:"player2_score"`
}

func (p *Goal) Validate() error {
	if p.Player1Score == nil || p.Player2Score == nil {
		return fmt.Errorf("%w score", errMissingField)
	}
	if *p.Player1Score < 0 || *p.Player2Score < 0 {
		return fmt.Errorf("%w: negative score", errOutOfRange)
	}
	return nil
}

type Ping struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
}

// PingEcho repeats the probe. ID may be missing on servers that only echo
// the timestamp.
type PingEcho struct {
	ID        string `json:"id,omitempty"`
	Timestamp *int64 `json:"timestamp"`
}

func (p *PingEcho) Validate() error {
	if p.Timestamp == nil {
		return fmt.Errorf("%w timestamp", errMissingField)
	}
	return nil
}

// GameSettings carries the server side tuning. Absent or non-positive values
// leave the local defaults in place.
type GameSettings struct {
	PaddleSpeed  *float64 `json:"paddle_speed,omitempty"`
	PaddleLength *float64 `json:"paddle_length,omitempty"`
	PaddleWidth  *float64 `json:"paddle_width,omitempty"`
	BallRadius   *float64 `json:"ball_radius,omitempty"`
}

func (p *GameSettings) Validate() error {
	for name, v := range map[string]*float64{
		"paddle_speed":  p.PaddleSpeed,
		"paddle_length": p.PaddleLength,
		"paddle_width":  p.PaddleWidth,
		"ball_radius":   p.BallRadius,
	} {
		if v != nil && !finite(*v) {
			return fmt.Errorf("%w: %s", errOutOfRange, name)
		}
	}
	return nil
}

type Message struct {
	Message string `json:"message"`
	From    string `json:"from,omitempty"`
}

func (p *Message) Validate() error { return nil }

// Error is the data of a frame flagged isError.
type Error struct {
	Message string `json:"message"`
}

func (p *Error) Validate() error { return nil }

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type SyncPaddle struct {
	Position Vector `json:"position"`
}

type SyncPlayer struct {
	Username  string      `json:"username"`
	Points    int         `json:"points"`
	Paddle    *SyncPaddle `json:"paddle"`
	Connected bool        `json:"connected"`
}

type SyncBall struct {
	Position Vector  `json:"position"`
	Radius   float64 `json:"radius"`
}

// SyncGameState is a full snapshot of a pong room.
type SyncGameState struct {
	Player1 *SyncPlayer `json:"player1"`
	Player2 *SyncPlayer `json:"player2"`
	Ball    *SyncBall   `json:"ball"`
}

func (p *SyncGameState) Validate() error {
	for i, pl := range []*SyncPlayer{p.Player1, p.Player2} {
		if pl == nil {
			continue
		}
		if pl.Points < 0 {
			return fmt.Errorf("%w: player%d points", errOutOfRange, i+1)
		}
		if pl.Paddle != nil && !(finite(pl.Paddle.Position.X) && finite(pl.Paddle.Position.Y)) {
			return fmt.Errorf("%w: player%d paddle", errOutOfRange, i+1)
		}
	}
	if p.Ball != nil && !(finite(p.Ball.Position.X) && finite(p.Ball.Position.Y)) {
		return fmt.Errorf("%w: ball", errOutOfRange)
	}
	return nil
}

// Tic-Tac-Toe

const BoardSize = 3

func validCell(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func validMark(v int) bool {
	return v >= 0 && v <= 2
}

type Play struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p *Play) Validate() error {
	if !validCell(p.Row, p.Col) {
		return fmt.Errorf("%w: cell %d,%d", errOutOfRange, p.Row, p.Col)
	}
	return nil
}

type BoardPlayer struct {
	Username  string `json:"username"`
	Connected bool   `json:"connected"`
	Wins      int    `json:"wins"`
}

func (p *BoardPlayer) Validate() error {
	if p.Username == "" {
		return fmt.Errorf("%w username", errMissingField)
	}
	return nil
}

type BoardState struct {
	Code    string                    `json:"code"`
	Board   [BoardSize][BoardSize]int `json:"board"`
	Player1 *BoardPlayer              `json:"player1"`
	Player2 *BoardPlayer              `json:"player2"`
	Turn    int                       `json:"current_turn"`
	Status  int                       `json:"status"`
	Ties    int                       `json:"ties"`
	Winner  int                       `json:"winner"`
}

func (p *BoardState) Validate() error {
	for r := range p.Board {
		for c, v := range p.Board[r] {
			if !validMark(v) {
				return fmt.Errorf("%w: board[%d][%d]=%d", errOutOfRange, r, c, v)
			}
		}
	}
	return nil
}

// CellUpdate is a single move. Value is the player number, 1 or 2.
type CellUpdate struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

func (p *CellUpdate) Validate() error {
	if !validCell(p.Row, p.Col) {
		return fmt.Errorf("%w: cell %d,%d", errOutOfRange, p.Row, p.Col)
	}
	if !validMark(p.Value) {
		return fmt.Errorf("%w: value %d", errOutOfRange, p.Value)
	}
	return nil
}

type TieResult struct {
	Ties int `json:"ties"`
	CellUpdate
}

type WinResult struct {
	Winner  int          `json:"winner"`
	Player1 *BoardPlayer `json:"player1"`
	Player2 *BoardPlayer `json:"player2"`
	CellUpdate
}

func (p *WinResult) Validate() error {
	if p.Winner != 1 && p.Winner != 2 {
		return fmt.Errorf("%w: winner %d", errOutOfRange, p.Winner)
	}
	return p.CellUpdate.Validate()
}
