package handler

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Lokesh-1511/chain-reaction/internal/hub"
	"github.com/Lokesh-1511/chain-reaction/internal/player"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
	CheckOrigin:       func(r *http.Request) bool { return true },
}

// WebSocketHandler owns the real-time event surface. Each connection
// gets a read loop that decodes envelopes and dispatches them; the
// loop ending is the disconnect signal.
type WebSocketHandler struct {
	Hub *hub.Hub
}

func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	p := player.New(conn)
	defer h.handleDisconnect(p)

	for {
		var env Envelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}
		p.UpdateActivity()
		h.dispatch(p, env)
	}
}

// dispatch routes one decoded envelope. A malformed payload or unknown
// event name is dropped here rather than propagated: nothing a single
// client sends may take down another session.
func (h *WebSocketHandler) dispatch(p *player.Player, env Envelope) {
	switch env.T {
	case MsgJoinGame:
		if pl, err := DecodePayload[JoinGamePayload](env); err == nil {
			h.handleJoinGame(p, pl)
		}
	case MsgCreateRoom:
		if pl, err := DecodePayload[CreateRoomPayload](env); err == nil {
			h.handleCreateRoom(p, pl)
		}
	case MsgJoinRoom:
		if pl, err := DecodePayload[JoinRoomPayload](env); err == nil {
			h.handleJoinRoom(p, pl)
		}
	case MsgMakeMove:
		if pl, err := DecodePayload[MovePayload](env); err == nil {
			h.handleMove(pl)
		}
	case MsgExitGame:
		if pl, err := DecodePayload[ExitPayload](env); err == nil {
			h.handleExit(pl)
		}
	case MsgSurrenderGame:
		if pl, err := DecodePayload[ExitPayload](env); err == nil {
			h.handleSurrender(pl)
		}
	case MsgRequestReplay:
		if pl, err := DecodePayload[ExitPayload](env); err == nil {
			h.handleRequestReplay(pl)
		}
	case MsgRespondToReplay:
		if pl, err := DecodePayload[RespondPayload](env); err == nil {
			h.handleRespondToReplay(pl)
		}
	default:
		log.Printf("dropping unknown event %q", env.T)
	}
}
