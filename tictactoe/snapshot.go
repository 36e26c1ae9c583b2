package tictactoe

type Snapshot struct {
	Code      string
	Board     [Size][Size]Mark
	Players   [2]Player
	Local     Mark
	ToMove    Mark
	Ties      int
	Status    Status
	Result    Result
	Winning   []Cell
	Connected bool
	Notice    string
	Message   string
}

func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Code:      g.code,
		Board:     g.board,
		Local:     g.LocalMark(),
		ToMove:    g.ToMove(),
		Ties:      g.ties,
		Status:    g.status,
		Result:    g.result,
		Winning:   append([]Cell(nil), g.winning...),
		Connected: g.connected,
		Notice:    g.notice,
		Message:   g.message,
	}
	for i, p := range g.players {
		if p != nil {
			s.Players[i] = *p
		}
	}
	return s
}

// IsWinning reports whether the cell is part of the winning line.
func (s Snapshot) IsWinning(row, col int) bool {
	for _, c := range s.Winning {
		if c.Row == row && c.Col == col {
			return true
		}
	}
	return false
}
