package hub

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Lokesh-1511/chain-reaction/internal/game"
)

var (
	ErrNotFound    = errors.New("game not found")
	ErrDuplicateID = errors.New("game id already exists")
	ErrInvalidMode = errors.New("invalid mode")
	ErrCapacity    = errors.New("too many concurrent games")
)

// Hub is the process-wide directory of games, keyed by numeric id
// (single mode) or room code (multiplayer). The id keyspace is the only
// state shared across games, and it changes only on create and remove.
type Hub struct {
	mu       sync.RWMutex
	games    map[string]*game.Game
	nextID   int
	maxGames int
}

func NewHub(maxGames int) *Hub {
	return &Hub{
		games:    make(map[string]*game.Game),
		nextID:   1,
		maxGames: maxGames,
	}
}

// Create registers a new game. An explicit id must be unused. Without
// one, multiplayer games get a short room code and single-player games
// an incrementing number.
func (h *Hub) Create(id string, mode game.Mode, rows, cols, players int) (*game.Game, error) {
	if !mode.Valid() {
		return nil, ErrInvalidMode
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.maxGames > 0 && len(h.games) >= h.maxGames {
		return nil, ErrCapacity
	}
	if id != "" {
		if _, exists := h.games[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
		}
	} else if mode == game.ModeMulti {
		id = h.newRoomCode()
	} else {
		id = strconv.Itoa(h.nextID)
		h.nextID++
	}

	g := game.New(id, mode, rows, cols, players)
	h.games[id] = g
	return g, nil
}

func (h *Hub) Get(id string) (*game.Game, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	g, ok := h.games[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return g, nil
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.games, id)
}

func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.games)
}

const (
	codeChars   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength  = 6
	codeRetries = 10
)

// newRoomCode draws short random codes until one is free, giving up
// after a fixed number of collisions and falling back to a
// timestamp-derived code. Caller holds the lock.
func (h *Hub) newRoomCode() string {
	for range codeRetries {
		code := randomCode(codeLength)
		if _, exists := h.games[code]; !exists {
			return code
		}
	}
	code := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))
	if len(code) > codeLength {
		code = code[len(code)-codeLength:]
	}
	return code
}

func randomCode(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(codeChars)))
	for i := range b {
		idx, _ := rand.Int(rand.Reader, max)
		b[i] = codeChars[idx.Int64()]
	}
	return string(b)
}

// Maintain periodically drops games that have either expired or finished
// with nobody still connected. Runs until stop is closed.
func (h *Hub) Maintain(interval, ttl time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			h.sweep(ttl)
		case <-stop:
			return
		}
	}
}

func (h *Hub) sweep(ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, g := range h.games {
		if g.Expired(ttl) || (g.Finished() && g.Empty()) {
			delete(h.games, id)
		}
	}
}
