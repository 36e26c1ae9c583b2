package tui

import (
	"fmt"
	"strings"

	"github.com/mo-shahab/go-pong-client/tictactoe"
)

const (
	PongHelp      = "w/s or arrows: move  space: shoot  c: create room  enter: dismiss  q: quit"
	TicTacToeHelp = "1-9: play cell  c: create game  enter: dismiss  q: quit"
)

// Board renders a tic-tac-toe snapshot as text. Winning cells are bracketed.
func Board(s tictactoe.Snapshot) string {
	var b strings.Builder

	if s.Code != "" {
		fmt.Fprintf(&b, "game %s\n", s.Code)
	} else {
		b.WriteString("not in a game\n")
	}
	for i, p := range s.Players {
		mark := tictactoe.Mark(i + 1)
		name := p.Name
		if name == "" {
			name = "..."
		}
		state := ""
		if name != "..." && !p.Connected {
			state = " (disconnected)"
		}
		you := ""
		if s.Local == mark {
			you = " (you)"
		}
		fmt.Fprintf(&b, "%v %s%s: %d wins%s\n", mark, name, you, p.Wins, state)
	}
	fmt.Fprintf(&b, "ties: %d\n\n", s.Ties)

	for r := 0; r < tictactoe.Size; r++ {
		if r > 0 {
			b.WriteString("---+---+---\n")
		}
		for c := 0; c < tictactoe.Size; c++ {
			if c > 0 {
				b.WriteByte('|')
			}
			cell := s.Board[r][c].String()
			if s.Board[r][c] == tictactoe.Empty {
				cell = fmt.Sprint(r*tictactoe.Size + c + 1)
			}
			if s.IsWinning(r, c) {
				fmt.Fprintf(&b, "[%s]", cell)
			} else {
				fmt.Fprintf(&b, " %s ", cell)
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch {
	case !s.Connected:
		b.WriteString("connection lost\n")
	case s.Result != tictactoe.NoResult:
		fmt.Fprintf(&b, "%s!\n", s.Result)
	case s.Local != tictactoe.Empty && s.ToMove == s.Local:
		b.WriteString("your turn\n")
	case s.Local != tictactoe.Empty:
		b.WriteString("waiting for the opponent\n")
	}
	if s.Message != "" {
		fmt.Fprintf(&b, "%s\n", s.Message)
	}
	if s.Notice != "" {
		fmt.Fprintf(&b, "\n!! %s (enter to dismiss)\n", s.Notice)
	}
	return b.String()
}
