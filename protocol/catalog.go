package protocol

import (
	"fmt"
	"sort"
)

// Catalog maps kinds to the wire numbers one game server uses.
type Catalog struct {
	name     string
	toWire   map[Kind]uint32
	fromWire map[uint32]Kind
}

// NewCatalog builds a catalog. It panics if a kind or a wire number is used
// twice, catalogs are static tables.
func NewCatalog(name string, table map[Kind]uint32) *Catalog {
	c := &Catalog{
		name:     name,
		toWire:   make(map[Kind]uint32, len(table)),
		fromWire: make(map[uint32]Kind, len(table)),
	}
	for k, w := range table {
		if k == KindUnknown {
			panic(fmt.Sprintf("protocol: catalog %s maps the unknown kind", name))
		}
		if other, dup := c.fromWire[w]; dup {
			panic(fmt.Sprintf("protocol: catalog %s maps wire type %d to both %v and %v", name, w, other, k))
		}
		c.toWire[k] = w
		c.fromWire[w] = k
	}
	return c
}

// Pong is the room based paddle game.
var Pong = NewCatalog("pong", map[Kind]uint32{
	KindGameSettings:         0,
	KindMessage:              1,
	KindOpponentDisconnected: 4,
	KindCreateRoom:           21,
	KindRoomCreated:          22,
	KindJoinRoom:             23,
	KindRoomJoined:           24,
	KindOpponentJoined:       25,
	KindPaddleMoved:          35,
	KindBallShot:             36,
	KindBallUpdate:           37,
	KindGoal:                 38,
	KindSyncGameState:        39,
	KindPing:                 40,
	KindPingEcho:             41,
})

var TicTacToe = NewCatalog("tictactoe", map[Kind]uint32{
	KindCreateGame:           1,
	KindJoinGame:             2,
	KindMakePlay:             3,
	KindMessage:              4,
	KindOpponentDisconnected: 5,
	KindOpponentReconnected:  6,
	KindBoardCellUpdate:      8,
	KindStateUpdate:          9,
	KindTie:                  10,
	KindVictory:              11,
	KindDefeat:               12,
	KindGameJoined:           22,
	KindOtherPlayerJoined:    23,
})

func (c *Catalog) Name() string { return c.name }

func (c *Catalog) Wire(k Kind) (uint32, bool) {
	w, ok := c.toWire[k]
	return w, ok
}

func (c *Catalog) Kind(wire uint32) (Kind, bool) {
	k, ok := c.fromWire[wire]
	return k, ok
}

// Kinds returns every kind of the catalog ordered by wire number.
func (c *Catalog) Kinds() []Kind {
	kinds := make([]Kind, 0, len(c.toWire))
	for k := range c.toWire {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return c.toWire[kinds[i]] < c.toWire[kinds[j]]
	})
	return kinds
}
