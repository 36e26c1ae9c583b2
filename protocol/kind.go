package protocol

import "fmt"

// Kind identifies an event independent of its wire number. The wire number
// is assigned by the server and looked up through a Catalog.
type Kind int

const (
	KindUnknown Kind = iota

	// shared
	KindGameSettings
	KindMessage
	KindOpponentDisconnected

	// pong
	KindCreateRoom
	KindRoomCreated
	KindJoinRoom
	KindRoomJoined
	KindOpponentJoined
	KindPaddleMoved
	KindBallShot
	KindBallUpdate
	KindGoal
	KindSyncGameState
	KindPing
	KindPingEcho

	// tic-tac-toe
	KindCreateGame
	KindJoinGame
	KindMakePlay
	KindOpponentReconnected
	KindBoardCellUpdate
	KindStateUpdate
	KindTie
	KindVictory
	KindDefeat
	KindGameJoined
	KindOtherPlayerJoined
)

var kindNames = map[Kind]string{
	KindUnknown:              "Unknown",
	KindGameSettings:         "GameSettings",
	KindMessage:              "Message",
	KindOpponentDisconnected: "OpponentDisconnected",
	KindCreateRoom:           "CreateRoom",
	KindRoomCreated:          "RoomCreated",
	KindJoinRoom:             "JoinRoom",
	KindRoomJoined:           "RoomJoined",
	KindOpponentJoined:       "OpponentJoined",
	KindPaddleMoved:          "PaddleMoved",
	KindBallShot:             "BallShot",
	KindBallUpdate:           "BallUpdate",
	KindGoal:                 "Goal",
	KindSyncGameState:        "SyncGameState",
	KindPing:                 "Ping",
	KindPingEcho:             "PingEcho",
	KindCreateGame:           "CreateGame",
	KindJoinGame:             "JoinGame",
	KindMakePlay:             "MakePlay",
	KindOpponentReconnected:  "OpponentReconnected",
	KindBoardCellUpdate:      "BoardCellUpdate",
	KindStateUpdate:          "StateUpdate",
	KindTie:                  "Tie",
	KindVictory:              "Victory",
	KindDefeat:               "Defeat",
	KindGameJoined:           "GameJoined",
	KindOtherPlayerJoined:    "OtherPlayerJoined",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
