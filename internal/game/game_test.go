package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multiGame(t *testing.T, players int) *Game {
	t.Helper()
	g := New("ROOM42", ModeMulti, 3, 3, players)
	for i := 1; i <= players; i++ {
		_, _, err := g.Join("")
		require.NoError(t, err)
	}
	return g
}

func TestJoinAssignsSeatsAndHost(t *testing.T) {
	g := New("ROOM42", ModeMulti, 3, 3, 2)

	id1, isHost1, err := g.Join("alice")
	require.NoError(t, err)
	assert.Equal(t, PlayerID(1), id1)
	assert.True(t, isHost1)
	assert.Equal(t, StatusWaiting, g.Snapshot().Status)

	id2, isHost2, err := g.Join("bob")
	require.NoError(t, err)
	assert.Equal(t, PlayerID(2), id2)
	assert.False(t, isHost2)

	snap := g.Snapshot()
	assert.Equal(t, StatusActive, snap.Status)
	assert.Equal(t, PlayerID(1), snap.HostID)
	assert.Equal(t, "alice", snap.Username(1))
	assert.Equal(t, "Player 2", snap.Username(2))
}

func TestJoinFullDoesNotMutateRoster(t *testing.T) {
	g := multiGame(t, 2)

	_, _, err := g.Join("late")
	require.ErrorIs(t, err, ErrFull)

	snap := g.Snapshot()
	assert.Equal(t, []PlayerID{1, 2}, snap.Players)
	assert.Equal(t, []PlayerID{1, 2}, snap.ActivePlayers)
}

func TestSingleModeActivatesImmediately(t *testing.T) {
	g := New("1", ModeSingle, 3, 3, 1)
	_, _, err := g.Join("")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, g.Snapshot().Status)
}

func TestApplyMoveRejectsStaleEvents(t *testing.T) {
	g := multiGame(t, 2)

	// Not player 2's turn.
	res := g.ApplyMove(2, 0, 0)
	assert.False(t, res.Applied)

	// Player 1 takes (0,0); player 2 cannot stack on it.
	require.True(t, g.ApplyMove(1, 0, 0).Applied)
	res = g.ApplyMove(2, 0, 0)
	assert.False(t, res.Applied)

	// Out of bounds.
	res = g.ApplyMove(2, 5, 5)
	assert.False(t, res.Applied)

	snap := g.Snapshot()
	assert.Equal(t, PlayerID(2), snap.CurrentPlayer)
	assert.Equal(t, 1, snap.Grid.OrbCount())
}

func TestApplyMoveAdvancesTurnCyclically(t *testing.T) {
	g := multiGame(t, 3)

	require.True(t, g.ApplyMove(1, 0, 0).Applied)
	assert.Equal(t, PlayerID(2), g.Snapshot().CurrentPlayer)
	require.True(t, g.ApplyMove(2, 2, 2).Applied)
	assert.Equal(t, PlayerID(3), g.Snapshot().CurrentPlayer)
	require.True(t, g.ApplyMove(3, 1, 1).Applied)
	assert.Equal(t, PlayerID(1), g.Snapshot().CurrentPlayer)
}

func TestApplyMoveWinByElimination(t *testing.T) {
	g := multiGame(t, 2)
	g.moved[1] = true
	g.moved[2] = true
	g.grid.Cells[0][0] = Cell{Value: 1, Owner: 1, Capacity: 1}
	g.grid.Cells[0][1] = Cell{Value: 1, Owner: 2, Capacity: 2}

	res := g.ApplyMove(1, 0, 0)
	require.True(t, res.Applied)
	assert.True(t, res.Finished)
	assert.Equal(t, PlayerID(1), res.Winner)

	snap := g.Snapshot()
	assert.Equal(t, StatusFinished, snap.Status)
	assert.Equal(t, []PlayerID{1}, snap.ActivePlayers)
}

func TestCascadeCannotEliminateUnmovedPlayer(t *testing.T) {
	g := multiGame(t, 2)
	g.moved[1] = true
	g.grid.Cells[0][0] = Cell{Value: 1, Owner: 1, Capacity: 1}
	g.grid.Cells[0][1] = Cell{Value: 1, Owner: 2, Capacity: 2}

	// Player 2 has not completed a move yet, so losing their only orb
	// to player 1's cascade does not eliminate them.
	res := g.ApplyMove(1, 0, 0)
	require.True(t, res.Applied)
	assert.False(t, res.Finished)

	snap := g.Snapshot()
	assert.Equal(t, []PlayerID{1, 2}, snap.ActivePlayers)
	assert.Equal(t, PlayerID(2), snap.CurrentPlayer)
}

func TestSinglePlayerNeverFinishesByElimination(t *testing.T) {
	g := New("1", ModeSingle, 3, 3, 1)
	_, _, err := g.Join("")
	require.NoError(t, err)

	res := g.ApplyMove(1, 1, 1)
	require.True(t, res.Applied)
	assert.False(t, res.Finished)

	snap := g.Snapshot()
	assert.Equal(t, StatusActive, snap.Status)
	assert.Equal(t, PlayerID(1), snap.CurrentPlayer)
}

func TestRemoveHostClosesGame(t *testing.T) {
	g := multiGame(t, 3)

	res := g.RemovePlayer(1, ReasonExit)
	assert.Equal(t, RemoveClosed, res.Outcome)
}

func TestRemoveToOneIsDefaultWin(t *testing.T) {
	g := multiGame(t, 2)

	res := g.RemovePlayer(2, ReasonExit)
	assert.Equal(t, RemoveDefaultWin, res.Outcome)
	assert.Equal(t, PlayerID(1), res.Winner)

	snap := g.Snapshot()
	assert.Equal(t, StatusFinished, snap.Status)
	assert.Equal(t, PlayerID(1), snap.Winner)
}

func TestRemoveLastPlayerEmptiesGame(t *testing.T) {
	g := multiGame(t, 2)
	// Host already eliminated from the rotation; the last remaining
	// player walks away.
	g.active = []PlayerID{2}

	res := g.RemovePlayer(2, ReasonExit)
	assert.Equal(t, RemoveEmptied, res.Outcome)
	assert.Equal(t, StatusFinished, g.Snapshot().Status)
}

func TestSurrenderKeepsGameRunning(t *testing.T) {
	g := multiGame(t, 3)
	g.current = 2

	res := g.RemovePlayer(2, ReasonSurrender)
	assert.Equal(t, RemoveContinue, res.Outcome)
	assert.Equal(t, []PlayerID{1, 3}, res.Remaining)

	snap := g.Snapshot()
	assert.Equal(t, StatusActive, snap.Status)
	assert.Equal(t, []PlayerID{2}, snap.Surrendered)
	// The surrendering player held the turn; it advances from their
	// former position.
	assert.Equal(t, PlayerID(3), snap.CurrentPlayer)
}

func TestRemoveIsIdempotent(t *testing.T) {
	g := multiGame(t, 3)

	first := g.RemovePlayer(2, ReasonExit)
	require.Equal(t, RemoveContinue, first.Outcome)

	// A late disconnect signal for the same player changes nothing.
	second := g.RemovePlayer(2, ReasonDisconnect)
	assert.Equal(t, RemoveIgnored, second.Outcome)
	assert.Equal(t, []PlayerID{1, 3}, g.Snapshot().ActivePlayers)
}

func TestSurrenderAfterFinishIgnored(t *testing.T) {
	g := multiGame(t, 3)
	g.status = StatusFinished

	res := g.RemovePlayer(2, ReasonSurrender)
	assert.Equal(t, RemoveIgnored, res.Outcome)
}

func TestResetForReplayRestoresOriginalRoster(t *testing.T) {
	g := New("ROOM42", ModeMulti, 4, 5, 3)
	for i := 0; i < 3; i++ {
		_, _, err := g.Join("")
		require.NoError(t, err)
	}
	require.True(t, g.ApplyMove(1, 0, 0).Applied)
	require.Equal(t, RemoveContinue, g.RemovePlayer(2, ReasonSurrender).Outcome)

	g.ResetForReplay()

	snap := g.Snapshot()
	assert.Equal(t, StatusActive, snap.Status)
	assert.Equal(t, 4, snap.Grid.Rows)
	assert.Equal(t, 5, snap.Grid.Cols)
	assert.Equal(t, 0, snap.Grid.OrbCount())
	assert.Equal(t, []PlayerID{1, 2, 3}, snap.ActivePlayers)
	assert.Equal(t, PlayerID(1), snap.CurrentPlayer)
	assert.Empty(t, snap.Surrendered)
	assert.Empty(t, snap.PlayersMoved)
	assert.Equal(t, PlayerID(0), snap.Winner)
}

type fakeConn struct {
	sent []any
}

func (f *fakeConn) SendJSON(v any) error {
	f.sent = append(f.sent, v)
	return nil
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	g := multiGame(t, 2)
	c1, c2 := &fakeConn{}, &fakeConn{}
	g.Subscribe(1, c1)
	g.Subscribe(2, c2)

	g.Broadcast("hello")
	assert.Equal(t, []any{"hello"}, c1.sent)
	assert.Equal(t, []any{"hello"}, c2.sent)

	g.Unsubscribe(2)
	g.Broadcast("again")
	assert.Len(t, c1.sent, 2)
	assert.Len(t, c2.sent, 1)
}
