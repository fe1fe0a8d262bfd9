package player

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Lokesh-1511/chain-reaction/internal/game"
)

// Player is one websocket client. It may be bound to a game after a
// join event; until then GameID is empty and Num is zero. The mutex
// serializes writes, since broadcasts and direct replies share the conn.
type Player struct {
	ID       string
	Conn     *websocket.Conn
	GameID   string
	Num      game.PlayerID
	LastSeen time.Time
	mu       sync.Mutex
}

func New(conn *websocket.Conn) *Player {
	return &Player{
		ID:       uuid.NewString(),
		Conn:     conn,
		LastSeen: time.Now(),
	}
}

// Bind attaches the client to a game seat.
func (p *Player) Bind(gameID string, num game.PlayerID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.GameID = gameID
	p.Num = num
}

// Bound returns the game seat this client holds, if any.
func (p *Player) Bound() (string, game.PlayerID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.GameID, p.Num
}

func (p *Player) UpdateActivity() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.LastSeen = time.Now()
}

func (p *Player) SendJSON(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Conn.WriteJSON(v)
}
