package game

// PlayersWithPresence returns the set of players owning at least one orb.
func PlayersWithPresence(g *Grid) map[PlayerID]bool {
	present := make(map[PlayerID]bool)
	for x := range g.Cells {
		for y := range g.Cells[x] {
			cell := g.Cells[x][y]
			if cell.Value > 0 && cell.Owner != NoPlayer {
				present[cell.Owner] = true
			}
		}
	}
	return present
}

// Eliminate filters the active list after a settled cascade. A player
// stays if they still hold orbs, or if they have not completed their
// first move yet: an opponent's cascade cannot knock out someone who
// never got to play.
func Eliminate(active []PlayerID, present map[PlayerID]bool, moved map[PlayerID]bool) []PlayerID {
	kept := make([]PlayerID, 0, len(active))
	for _, p := range active {
		if present[p] || !moved[p] {
			kept = append(kept, p)
		}
	}
	return kept
}

// Advance returns the player whose turn follows current. Active lists are
// kept in join order (ascending ids), so the successor is the first id
// greater than current, wrapping around to the head. This also covers the
// case where current itself was just removed: the scan picks up from its
// former position in the rotation.
func Advance(active []PlayerID, current PlayerID) PlayerID {
	if len(active) == 0 {
		return NoPlayer
	}
	for _, p := range active {
		if p > current {
			return p
		}
	}
	return active[0]
}
