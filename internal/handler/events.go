package handler

import (
	"fmt"

	"github.com/Lokesh-1511/chain-reaction/internal/game"
	"github.com/Lokesh-1511/chain-reaction/internal/player"
)

func (h *WebSocketHandler) handleJoinGame(p *player.Player, pl JoinGamePayload) {
	g, err := h.Hub.Get(pl.GameID)
	if err != nil {
		p.SendJSON(Event(MsgError, errorPayload{Message: "Game not found"}))
		return
	}
	p.Bind(g.ID, pl.PlayerID)
	g.Subscribe(pl.PlayerID, p)
	p.SendJSON(Event(MsgJoined, joinedPayload{GameID: g.ID, PlayerID: pl.PlayerID}))
}

func (h *WebSocketHandler) handleCreateRoom(p *player.Player, pl CreateRoomPayload) {
	rows, cols, players := pl.Row, pl.Col, pl.Players
	if rows <= 0 {
		rows = defaultRows
	}
	if cols <= 0 {
		cols = defaultCols
	}
	if players <= 0 {
		players = defaultPlayers
	}
	g, err := h.Hub.Create("", game.ModeMulti, rows, cols, players)
	if err != nil {
		p.SendJSON(Event(MsgError, errorPayload{Message: err.Error()}))
		return
	}
	id, isHost, err := g.Join(pl.Username)
	if err != nil {
		p.SendJSON(Event(MsgError, errorPayload{Message: err.Error()}))
		return
	}
	p.Bind(g.ID, id)
	g.Subscribe(id, p)
	p.SendJSON(Event(MsgRoomCreated, roomPayload{
		RoomCode: g.ID,
		PlayerID: id,
		Username: pl.Username,
		IsHost:   isHost,
		Game:     g.Snapshot(),
	}))
}

func (h *WebSocketHandler) handleJoinRoom(p *player.Player, pl JoinRoomPayload) {
	g, err := h.Hub.Get(pl.RoomCode)
	if err != nil {
		p.SendJSON(Event(MsgError, errorPayload{Message: "Room not found"}))
		return
	}
	id, isHost, err := g.Join(pl.Username)
	if err != nil {
		p.SendJSON(Event(MsgError, errorPayload{Message: "Room is full"}))
		return
	}
	p.Bind(g.ID, id)
	g.Subscribe(id, p)

	g.Broadcast(Event(MsgPlayerJoined, playerJoinedPayload{
		RoomCode: g.ID,
		PlayerID: id,
		Username: pl.Username,
		Game:     g.Snapshot(),
	}))
	p.SendJSON(Event(MsgRoomJoined, roomPayload{
		RoomCode: g.ID,
		PlayerID: id,
		Username: pl.Username,
		IsHost:   isHost,
		Game:     g.Snapshot(),
	}))
}

func (h *WebSocketHandler) handleMove(pl MovePayload) {
	g, err := h.Hub.Get(pl.GameID)
	if err != nil {
		return
	}
	res := g.ApplyMove(pl.PlayerID, pl.Move.X, pl.Move.Y)
	if !res.Applied {
		return
	}
	snap := g.Snapshot()
	g.Broadcast(Event(MsgGameUpdate, gameUpdatePayload{GameID: g.ID, State: snap}))
	if res.Finished {
		g.Broadcast(Event(MsgGameOver, gameOverPayload{
			Winner:         res.Winner,
			WinnerUsername: winnerName(snap, res.Winner),
		}))
	}
}

func (h *WebSocketHandler) handleExit(pl ExitPayload) {
	g, err := h.Hub.Get(pl.GameID)
	if err != nil || g.Mode != game.ModeMulti {
		return
	}
	res := g.RemovePlayer(pl.PlayerID, game.ReasonExit)
	h.finishRemoval(g, pl.PlayerID, game.ReasonExit, res)
}

func (h *WebSocketHandler) handleSurrender(pl ExitPayload) {
	g, err := h.Hub.Get(pl.GameID)
	if err != nil {
		return
	}
	res := g.RemovePlayer(pl.PlayerID, game.ReasonSurrender)
	h.finishRemoval(g, pl.PlayerID, game.ReasonSurrender, res)
}

func (h *WebSocketHandler) handleRequestReplay(pl ExitPayload) {
	g, err := h.Hub.Get(pl.GameID)
	if err != nil {
		return
	}
	if !g.RequestReplay(pl.PlayerID) {
		return
	}
	g.Broadcast(Event(MsgReplayRequested, replayRequestedPayload{
		GameID:      g.ID,
		RequestedBy: pl.PlayerID,
		Message:     fmt.Sprintf("Player %d wants to play again!", pl.PlayerID),
	}))
}

func (h *WebSocketHandler) handleRespondToReplay(pl RespondPayload) {
	g, err := h.Hub.Get(pl.GameID)
	if err != nil {
		return
	}
	res := g.RespondToReplay(pl.PlayerID, pl.Response)
	if res.Removal != nil {
		h.finishRemoval(g, pl.PlayerID, game.ReasonDecline, *res.Removal)
	}
	switch res.Outcome {
	case game.ReplayRestarted:
		g.Broadcast(Event(MsgGameRestarted, gameRestartedPayload{GameID: g.ID, State: g.Snapshot()}))
	case game.ReplayCancelled:
		g.Broadcast(Event(MsgReplayCancelled, replayCancelledPayload{GameID: g.ID}))
	case game.ReplayWaiting:
		g.Broadcast(Event(MsgReplayResponse, replayResponsePayload{
			GameID:     g.ID,
			PlayerID:   pl.PlayerID,
			Response:   pl.Response,
			WaitingFor: res.WaitingFor,
		}))
	}
}

// handleDisconnect runs when the read loop ends for any reason. A
// disconnect after an explicit exit or surrender is a no-op because the
// player is already gone from the active set.
func (h *WebSocketHandler) handleDisconnect(p *player.Player) {
	gameID, num := p.Bound()
	if gameID == "" {
		return
	}
	g, err := h.Hub.Get(gameID)
	if err != nil {
		return
	}
	g.Unsubscribe(num)
	if g.Mode != game.ModeMulti {
		return
	}
	res := g.RemovePlayer(num, game.ReasonDisconnect)
	h.finishRemoval(g, num, game.ReasonDisconnect, res)
}

// finishRemoval turns a removal outcome into its broadcast sequence and,
// for the terminal outcomes, tears the game down in the hub.
func (h *WebSocketHandler) finishRemoval(g *game.Game, p game.PlayerID, reason game.RemoveReason, res game.RemoveResult) {
	switch res.Outcome {
	case game.RemoveClosed:
		g.Broadcast(Event(MsgClosedByHost, closedPayload{GameID: g.ID, Message: hostCloseMessage(reason)}))
		h.Hub.Remove(g.ID)
	case game.RemoveDefaultWin:
		snap := g.Snapshot()
		g.Broadcast(Event(MsgGameOver, gameOverPayload{
			Winner:         res.Winner,
			WinnerUsername: winnerName(snap, res.Winner),
		}))
	case game.RemoveEmptied:
		g.Broadcast(Event(MsgClosedByHost, closedPayload{GameID: g.ID, Message: "Game closed: No players remaining"}))
		h.Hub.Remove(g.ID)
	case game.RemoveContinue:
		if reason == game.ReasonSurrender {
			g.Broadcast(Event(MsgPlayerSurrendered, playerLeftPayload{
				GameID:    g.ID,
				PlayerID:  p,
				Remaining: res.Remaining,
				Message:   fmt.Sprintf("Player %d has surrendered", p),
			}))
			g.Broadcast(Event(MsgGameUpdate, gameUpdatePayload{GameID: g.ID, State: g.Snapshot()}))
			return
		}
		g.Broadcast(Event(MsgPlayerLeft, playerLeftPayload{
			GameID:    g.ID,
			PlayerID:  p,
			Remaining: res.Remaining,
			Message:   leftMessage(reason, p),
		}))
	}
}

func hostCloseMessage(reason game.RemoveReason) string {
	switch reason {
	case game.ReasonSurrender:
		return "Game closed: Host has surrendered"
	case game.ReasonDecline:
		return "Game closed: Host declined to play again"
	default:
		return "Game closed: Host has left the game"
	}
}

func leftMessage(reason game.RemoveReason, p game.PlayerID) string {
	if reason == game.ReasonDecline {
		return fmt.Sprintf("Player %d declined to play again and left the game", p)
	}
	return fmt.Sprintf("Player %d has left the game", p)
}

func winnerName(snap game.Snapshot, winner game.PlayerID) string {
	if winner == game.NoPlayer {
		return ""
	}
	return snap.Username(winner)
}
