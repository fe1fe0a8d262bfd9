package game

import (
	"errors"
	"sync"
	"time"
)

type Mode string

const (
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

func (m Mode) Valid() bool { return m == ModeSingle || m == ModeMulti }

type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// RemoveReason says why a player is leaving the active set. The cascading
// outcomes are the same for every reason; surrender additionally records
// the player as having given up.
type RemoveReason int

const (
	ReasonExit RemoveReason = iota
	ReasonSurrender
	ReasonDecline
	ReasonDisconnect
)

// ErrFull is returned by Join once the roster has reached the configured
// player count.
var ErrFull = errors.New("game is full")

// Conn is the send side of one connected client. *player.Player satisfies
// it; tests use in-memory fakes.
type Conn interface {
	SendJSON(v any) error
}

// Game is one session: the board, the roster, turn rotation, and the
// replay vote. All methods serialize on the internal mutex, so every
// inbound event is handled to completion before the next one. Games never
// share state with each other.
type Game struct {
	ID   string
	Mode Mode

	mu          sync.Mutex
	grid        *Grid
	playerCount int // configured seats, fixed at creation
	roster      []PlayerID
	usernames   map[PlayerID]string
	active      []PlayerID
	moved       map[PlayerID]bool
	surrendered map[PlayerID]bool
	current     PlayerID
	status      Status
	winner      PlayerID
	host        PlayerID
	votes       map[PlayerID]bool
	requestedBy PlayerID
	subscribers map[PlayerID]Conn
	createdAt   time.Time
}

func New(id string, mode Mode, rows, cols, players int) *Game {
	return &Game{
		ID:          id,
		Mode:        mode,
		grid:        NewGrid(rows, cols),
		playerCount: players,
		usernames:   make(map[PlayerID]string),
		moved:       make(map[PlayerID]bool),
		surrendered: make(map[PlayerID]bool),
		current:     1,
		status:      StatusWaiting,
		votes:       make(map[PlayerID]bool),
		subscribers: make(map[PlayerID]Conn),
		createdAt:   time.Now(),
	}
}

// Join assigns the next sequential player id. The first joiner becomes
// host. The game activates once the roster is full, or immediately in
// single mode.
func (g *Game) Join(username string) (PlayerID, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.roster) >= g.playerCount {
		return NoPlayer, false, ErrFull
	}
	id := PlayerID(len(g.roster) + 1)
	g.roster = append(g.roster, id)
	g.active = append(g.active, id)
	if username != "" {
		g.usernames[id] = username
	}
	if g.host == NoPlayer {
		g.host = id
	}
	if len(g.roster) == g.playerCount || g.Mode == ModeSingle {
		g.status = StatusActive
	}
	return id, id == g.host, nil
}

type MoveResult struct {
	Applied  bool
	Finished bool
	Winner   PlayerID
}

// ApplyMove runs one turn: place, cascade, eliminate, then finish or
// advance, as a single step. Anything that makes the move stale or
// illegal (wrong status, not this player's turn, occupied cell, out of
// bounds) is absorbed as a no-op so a stray click never disturbs state.
func (g *Game) ApplyMove(p PlayerID, x, y int) MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.status != StatusActive || g.current != p || !g.grid.ValidMove(p, x, y) {
		return MoveResult{}
	}

	g.grid.PlaceOrb(p, x, y)
	g.grid.ResolveCascade(p)
	g.moved[p] = true

	g.active = Eliminate(g.active, PlayersWithPresence(g.grid), g.moved)
	switch {
	case g.playerCount > 1 && len(g.active) == 1:
		g.winner = g.active[0]
		g.status = StatusFinished
	case len(g.active) == 0:
		g.status = StatusFinished
	default:
		g.current = Advance(g.active, p)
	}
	return MoveResult{Applied: true, Finished: g.status == StatusFinished, Winner: g.winner}
}

// RemoveOutcome is the cascading result of a player leaving, in the
// priority order the caller must honor.
type RemoveOutcome int

const (
	// RemoveIgnored: the player was not in the active set (e.g. a
	// disconnect after an explicit exit) and nothing changed.
	RemoveIgnored RemoveOutcome = iota
	// RemoveClosed: the host left; the whole game is over for everyone.
	RemoveClosed
	// RemoveDefaultWin: exactly one player remains and wins by default.
	RemoveDefaultWin
	// RemoveEmptied: no active players remain.
	RemoveEmptied
	// RemoveContinue: the game goes on with the remaining players.
	RemoveContinue
)

type RemoveResult struct {
	Outcome   RemoveOutcome
	Winner    PlayerID
	Remaining []PlayerID
}

// RemovePlayer takes p out of the active set. Idempotent: removing an
// already-gone player is a no-op, which makes a late disconnect signal
// after an explicit exit or surrender harmless.
func (g *Game) RemovePlayer(p PlayerID, reason RemoveReason) RemoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeLocked(p, reason)
}

func (g *Game) removeLocked(p PlayerID, reason RemoveReason) RemoveResult {
	if !g.isActive(p) {
		return RemoveResult{Outcome: RemoveIgnored}
	}
	if reason == ReasonSurrender && g.status != StatusActive {
		return RemoveResult{Outcome: RemoveIgnored}
	}

	g.active = removeID(g.active, p)
	delete(g.votes, p)
	if reason == ReasonSurrender {
		g.surrendered[p] = true
	}

	if p == g.host {
		g.status = StatusFinished
		return RemoveResult{Outcome: RemoveClosed}
	}
	switch len(g.active) {
	case 1:
		g.winner = g.active[0]
		g.status = StatusFinished
		return RemoveResult{Outcome: RemoveDefaultWin, Winner: g.winner, Remaining: g.remaining()}
	case 0:
		g.status = StatusFinished
		return RemoveResult{Outcome: RemoveEmptied}
	default:
		if g.current == p {
			g.current = Advance(g.active, p)
		}
		return RemoveResult{Outcome: RemoveContinue, Remaining: g.remaining()}
	}
}

// ResetForReplay rebuilds a fresh board at the original dimensions and
// reactivates the full original roster, not just whoever survived the
// last round. Status returns to active with the first joiner to move.
func (g *Game) ResetForReplay() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resetLocked()
}

func (g *Game) resetLocked() {
	g.grid = NewGrid(g.grid.Rows, g.grid.Cols)
	g.active = append([]PlayerID(nil), g.roster...)
	g.current = g.roster[0]
	g.moved = make(map[PlayerID]bool)
	g.surrendered = make(map[PlayerID]bool)
	g.votes = make(map[PlayerID]bool)
	g.requestedBy = NoPlayer
	g.winner = NoPlayer
	g.status = StatusActive
}

func (g *Game) isActive(p PlayerID) bool {
	for _, id := range g.active {
		if id == p {
			return true
		}
	}
	return false
}

func (g *Game) remaining() []PlayerID {
	return append([]PlayerID(nil), g.active...)
}

func removeID(list []PlayerID, p PlayerID) []PlayerID {
	kept := make([]PlayerID, 0, len(list))
	for _, id := range list {
		if id != p {
			kept = append(kept, id)
		}
	}
	return kept
}

// Subscribe registers the connection that receives broadcasts for p.
func (g *Game) Subscribe(p PlayerID, c Conn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subscribers[p] = c
}

func (g *Game) Unsubscribe(p PlayerID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.subscribers, p)
}

// Broadcast sends v to every connected member. Sends are fire-and-forget;
// a failed write surfaces later as that client's disconnect.
func (g *Game) Broadcast(v any) {
	g.mu.Lock()
	conns := make([]Conn, 0, len(g.subscribers))
	for _, c := range g.subscribers {
		conns = append(conns, c)
	}
	g.mu.Unlock()

	for _, c := range conns {
		_ = c.SendJSON(v)
	}
}

// Empty reports whether no clients are connected.
func (g *Game) Empty() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subscribers) == 0
}

// Expired reports whether the game has outlived ttl.
func (g *Game) Expired(ttl time.Duration) bool {
	return time.Since(g.createdAt) > ttl
}

func (g *Game) Finished() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status == StatusFinished
}
