package game

// Replay consensus. A finished game restarts only if every active player
// votes yes. The vote has no expiry: it sits waiting on human input until
// the tally completes or the room dissolves.

type ReplayOutcome int

const (
	// ReplayNone: nothing further to announce (bad game/mode, or a
	// decline already ended the game through its removal outcome).
	ReplayNone ReplayOutcome = iota
	// ReplayWaiting: votes are still outstanding.
	ReplayWaiting
	// ReplayRestarted: unanimous yes; the board was reset.
	ReplayRestarted
	// ReplayCancelled: somebody said no; votes were cleared.
	ReplayCancelled
)

type ReplayResult struct {
	Outcome    ReplayOutcome
	Removal    *RemoveResult // set when a decline removed the voter
	WaitingFor []PlayerID
}

// RequestReplay opens (or joins) a vote, recording an implicit yes for
// the requester. Returns false if the request does not apply, so the
// caller knows not to announce it.
func (g *Game) RequestReplay(p PlayerID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Mode != ModeMulti || !g.isActive(p) {
		return false
	}
	g.requestedBy = p
	g.votes[p] = true
	return true
}

// RespondToReplay records p's vote and re-evaluates consensus against the
// current active set. A no vote is first treated as leaving the game
// (same cascading outcomes as any other departure), so a decline can end
// the game by default win or host departure without a tally ever
// completing. Removing the decliner can itself complete the tally, in
// which case the remaining unanimous yes still restarts the game.
func (g *Game) RespondToReplay(p PlayerID, accept bool) ReplayResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.Mode != ModeMulti {
		return ReplayResult{}
	}
	g.votes[p] = accept

	if !accept {
		res := g.removeLocked(p, ReasonDecline)
		out := ReplayResult{Removal: &res}
		if res.Outcome != RemoveContinue {
			return out
		}
		if responded, agreed, _ := g.tallyLocked(); responded && agreed {
			g.resetLocked()
			out.Outcome = ReplayRestarted
		}
		return out
	}

	responded, agreed, waiting := g.tallyLocked()
	switch {
	case !responded:
		return ReplayResult{Outcome: ReplayWaiting, WaitingFor: waiting}
	case agreed:
		g.resetLocked()
		return ReplayResult{Outcome: ReplayRestarted}
	default:
		g.votes = make(map[PlayerID]bool)
		g.requestedBy = NoPlayer
		return ReplayResult{Outcome: ReplayCancelled}
	}
}

func (g *Game) tallyLocked() (responded, agreed bool, waiting []PlayerID) {
	agreed = true
	for _, id := range g.active {
		v, ok := g.votes[id]
		if !ok {
			waiting = append(waiting, id)
			continue
		}
		if !v {
			agreed = false
		}
	}
	responded = len(waiting) == 0
	return responded, responded && agreed, waiting
}
