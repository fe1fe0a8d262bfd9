package handler

import (
	"encoding/json"
	"fmt"

	"github.com/Lokesh-1511/chain-reaction/internal/game"
)

// Client -> server events.
const (
	MsgJoinGame        = "joinGame"
	MsgCreateRoom      = "createRoom"
	MsgJoinRoom        = "joinRoom"
	MsgMakeMove        = "makeMove"
	MsgExitGame        = "exitGame"
	MsgSurrenderGame   = "surrenderGame"
	MsgRequestReplay   = "requestReplay"
	MsgRespondToReplay = "respondToReplay"
)

// Server -> client events.
const (
	MsgJoined            = "joined"
	MsgRoomCreated       = "roomCreated"
	MsgRoomJoined        = "roomJoined"
	MsgPlayerJoined      = "playerJoined"
	MsgGameUpdate        = "gameUpdate"
	MsgGameOver          = "gameOver"
	MsgPlayerLeft        = "playerLeft"
	MsgPlayerSurrendered = "playerSurrendered"
	MsgReplayRequested   = "replayRequested"
	MsgReplayResponse    = "replayResponse"
	MsgGameRestarted     = "gameRestarted"
	MsgReplayCancelled   = "replayCancelled"
	MsgClosedByHost      = "gameClosedByHost"
	MsgError             = "error"
)

// Envelope is the wire frame for every websocket message: an event name
// and a raw payload decoded per event. Unknown event names and malformed
// payloads are dropped, never dispatched on.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Event wraps an outbound payload in the envelope frame.
func Event(t string, payload any) any {
	return struct {
		T string `json:"t"`
		P any    `json:"p"`
	}{T: t, P: payload}
}

// DecodePayload decodes the envelope payload into the event's fixed
// shape.
func DecodePayload[T any](env Envelope) (T, error) {
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("empty payload for event %q", env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

// Inbound payloads.

type JoinGamePayload struct {
	GameID   string        `json:"gameId"`
	PlayerID game.PlayerID `json:"playerId"`
}

type CreateRoomPayload struct {
	Username string `json:"username"`
	Row      int    `json:"row,omitempty"`
	Col      int    `json:"col,omitempty"`
	Players  int    `json:"players,omitempty"`
}

type JoinRoomPayload struct {
	RoomCode string `json:"roomCode"`
	Username string `json:"username"`
}

type Move struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MovePayload struct {
	GameID   string        `json:"gameId"`
	PlayerID game.PlayerID `json:"playerId"`
	Move     Move          `json:"move"`
}

type ExitPayload struct {
	GameID   string        `json:"gameId"`
	PlayerID game.PlayerID `json:"playerId"`
}

type RespondPayload struct {
	GameID   string        `json:"gameId"`
	PlayerID game.PlayerID `json:"playerId"`
	Response bool          `json:"response"`
}

// Outbound payloads.

type joinedPayload struct {
	GameID   string        `json:"gameId"`
	PlayerID game.PlayerID `json:"playerId"`
}

type roomPayload struct {
	RoomCode string        `json:"roomCode"`
	PlayerID game.PlayerID `json:"playerId"`
	Username string        `json:"username,omitempty"`
	IsHost   bool          `json:"isHost"`
	Game     game.Snapshot `json:"game"`
}

type playerJoinedPayload struct {
	RoomCode string        `json:"roomCode"`
	PlayerID game.PlayerID `json:"playerId"`
	Username string        `json:"username,omitempty"`
	Game     game.Snapshot `json:"game"`
}

type gameUpdatePayload struct {
	GameID string        `json:"gameId"`
	State  game.Snapshot `json:"state"`
}

type gameOverPayload struct {
	Winner         game.PlayerID `json:"winner"`
	WinnerUsername string        `json:"winnerUsername,omitempty"`
}

type playerLeftPayload struct {
	GameID    string          `json:"gameId"`
	PlayerID  game.PlayerID   `json:"playerId"`
	Remaining []game.PlayerID `json:"remainingPlayers"`
	Message   string          `json:"message"`
}

type replayRequestedPayload struct {
	GameID      string        `json:"gameId"`
	RequestedBy game.PlayerID `json:"requestedBy"`
	Message     string        `json:"message"`
}

type replayResponsePayload struct {
	GameID     string          `json:"gameId"`
	PlayerID   game.PlayerID   `json:"playerId"`
	Response   bool            `json:"response"`
	WaitingFor []game.PlayerID `json:"waitingFor"`
}

type gameRestartedPayload struct {
	GameID string        `json:"gameId"`
	State  game.Snapshot `json:"state"`
}

type replayCancelledPayload struct {
	GameID string `json:"gameId"`
}

type closedPayload struct {
	GameID  string `json:"gameId"`
	Message string `json:"message"`
}

type errorPayload struct {
	Message string `json:"message"`
}
