package game

import "fmt"

// Snapshot is the full client-facing view of a game, shipped whole on
// every update so clients never have to merge partial state.
type Snapshot struct {
	ID            string              `json:"id"`
	Mode          Mode                `json:"mode"`
	Grid          *Grid               `json:"grid"`
	PlayerCount   int                 `json:"playerCount"`
	CurrentPlayer PlayerID            `json:"currentPlayer"`
	ActivePlayers []PlayerID          `json:"activePlayers"`
	PlayersMoved  []PlayerID          `json:"playersMoved"`
	Players       []PlayerID          `json:"players"`
	Usernames     map[PlayerID]string `json:"usernames"`
	Surrendered   []PlayerID          `json:"surrendered"`
	Status        Status              `json:"status"`
	Winner        PlayerID            `json:"winner"`
	HostID        PlayerID            `json:"hostId"`
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	usernames := make(map[PlayerID]string, len(g.usernames))
	for id, name := range g.usernames {
		usernames[id] = name
	}
	moved := make([]PlayerID, 0, len(g.moved))
	surrendered := make([]PlayerID, 0, len(g.surrendered))
	for _, id := range g.roster {
		if g.moved[id] {
			moved = append(moved, id)
		}
		if g.surrendered[id] {
			surrendered = append(surrendered, id)
		}
	}

	return Snapshot{
		ID:            g.ID,
		Mode:          g.Mode,
		Grid:          g.grid.Clone(),
		PlayerCount:   g.playerCount,
		CurrentPlayer: g.current,
		ActivePlayers: append([]PlayerID(nil), g.active...),
		PlayersMoved:  moved,
		Players:       append([]PlayerID(nil), g.roster...),
		Usernames:     usernames,
		Surrendered:   surrendered,
		Status:        g.status,
		Winner:        g.winner,
		HostID:        g.host,
	}
}

// Username returns the player's chosen name, or a positional default.
func (s Snapshot) Username(p PlayerID) string {
	if name, ok := s.Usernames[p]; ok {
		return name
	}
	return fmt.Sprintf("Player %d", p)
}
