package tictactoe

import (
	"github.com/mo-shahab/go-pong-client/protocol"
)

var InboundKinds = []protocol.Kind{
	protocol.KindGameJoined,
	protocol.KindOtherPlayerJoined,
	protocol.KindStateUpdate,
	protocol.KindBoardCellUpdate,
	protocol.KindTie,
	protocol.KindVictory,
	protocol.KindDefeat,
	protocol.KindOpponentDisconnected,
	protocol.KindOpponentReconnected,
	protocol.KindMessage,
}

var RequestKinds = []protocol.Kind{
	protocol.KindCreateGame,
	protocol.KindJoinGame,
	protocol.KindMakePlay,
}

func (g *Game) Register(d *protocol.Dispatcher) {
	d.On(protocol.KindGameJoined, g.onState)
	d.On(protocol.KindStateUpdate, g.onState)
	d.On(protocol.KindOtherPlayerJoined, g.onOtherPlayerJoined)
	d.On(protocol.KindBoardCellUpdate, g.onCellUpdate)
	d.On(protocol.KindTie, g.onTie)
	d.On(protocol.KindVictory, g.onWin(Victory))
	d.On(protocol.KindDefeat, g.onWin(Defeat))
	d.On(protocol.KindOpponentDisconnected, g.onPresence(false))
	d.On(protocol.KindOpponentReconnected, g.onPresence(true))
	d.On(protocol.KindMessage, g.onMessage)

	d.OnError(protocol.KindCreateGame, g.onRequestError("Could not create game"))
	d.OnError(protocol.KindJoinGame, g.onRequestError("Could not join game"))
	d.OnError(protocol.KindMakePlay, g.onRequestError("Play refused"))
}

func decode(ev protocol.Event, p protocol.Payload) bool {
	if err := ev.Decode(p); err != nil {
		log.Errorf("Dropping %v: %v", ev.Kind, err)
		return false
	}
	return true
}

func toPlayer(p *protocol.BoardPlayer) *Player {
	if p == nil {
		return nil
	}
	return &Player{Name: p.Username, Wins: p.Wins, Connected: p.Connected}
}

func (g *Game) onState(ev protocol.Event) {
	var p protocol.BoardState
	if !decode(ev, &p) {
		return
	}
	if g.result != NoResult {
		g.clearResult()
	}
	if p.Code != "" {
		g.code = p.Code
	}
	for r := range p.Board {
		for c, v := range p.Board[r] {
			g.board[r][c] = Mark(v)
		}
	}
	g.players = [2]*Player{toPlayer(p.Player1), toPlayer(p.Player2)}
	g.turn = p.Turn
	g.status = Status(p.Status)
	g.ties = p.Ties
	log.Debugf("State of game %s, turn %d", g.code, g.turn)
}

func (g *Game) onOtherPlayerJoined(ev protocol.Event) {
	var p protocol.BoardPlayer
	if !decode(ev, &p) {
		return
	}
	g.players[1] = toPlayer(&p)
	g.status = Running
	log.Infof("%s joined game %s", p.Username, g.code)
}

func (g *Game) mark(c protocol.CellUpdate) {
	g.board[c.Row][c.Col] = Mark(c.Value)
}

func (g *Game) onCellUpdate(ev protocol.Event) {
	var p protocol.CellUpdate
	if !decode(ev, &p) {
		return
	}
	g.mark(p)
	g.turn++
}

func (g *Game) onTie(ev protocol.Event) {
	var p protocol.TieResult
	if !decode(ev, &p) {
		return
	}
	g.mark(p.CellUpdate)
	g.ties = p.Ties
	g.finish(Tie, nil)
}

func (g *Game) onWin(r Result) func(protocol.Event) {
	return func(ev protocol.Event) {
		var p protocol.WinResult
		if !decode(ev, &p) {
			return
		}
		g.mark(p.CellUpdate)
		if p.Player1 != nil {
			g.players[0] = toPlayer(p.Player1)
		}
		if p.Player2 != nil {
			g.players[1] = toPlayer(p.Player2)
		}
		g.finish(r, winningCells(g.board, Cell{Row: p.Row, Col: p.Col}))
	}
}

// finish shows the result and clears the board after the result delay.
func (g *Game) finish(r Result, cells []Cell) {
	g.result = r
	g.winning = cells
	g.status = Finished
	log.Infof("Game %s finished: %v", g.code, r)

	if g.cancelClear != nil {
		g.cancelClear()
	}
	g.cancelClear = g.sched.After(g.delay, g.clearResult)
}

func (g *Game) clearResult() {
	if g.cancelClear != nil {
		g.cancelClear()
		g.cancelClear = nil
	}
	g.board = [Size][Size]Mark{}
	g.result = NoResult
	g.winning = nil
	g.turn = 0
	g.status = Running
}

func (g *Game) onPresence(connected bool) func(protocol.Event) {
	return func(ev protocol.Event) {
		var p protocol.BoardPlayer
		if !decode(ev, &p) {
			return
		}
		for _, pl := range g.players {
			if pl != nil && pl.Name == p.Username {
				pl.Connected = connected
				log.Infof("%s connected=%v", p.Username, connected)
				return
			}
		}
		log.Debugf("Presence update for unknown player %s", p.Username)
	}
}

func (g *Game) onMessage(ev protocol.Event) {
	fields, err := protocol.Opaque(ev)
	if err != nil {
		log.Errorf("Dropping message: %v", err)
		return
	}
	if msg, ok := protocol.OpaqueString(fields, "message"); ok {
		if from, ok := protocol.OpaqueString(fields, "from"); ok && from != "" {
			msg = from + ": " + msg
		}
		g.message = msg
	}
}

func (g *Game) onRequestError(prefix string) func(protocol.Event) {
	return func(ev protocol.Event) {
		var e protocol.Error
		msg := "server error"
		if err := ev.Decode(&e); err == nil && e.Message != "" {
			msg = e.Message
		}
		g.notice = prefix + ": " + msg
		log.Infof("Notice: %s", g.notice)
	}
}
