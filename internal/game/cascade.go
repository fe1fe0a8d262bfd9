package game

var directions = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// ResolveCascade resolves all over-capacity cells to a fixed point. Each
// pass snapshots the full set of overflowing cells before touching the
// board, resets every one of them, and only then distributes orbs to
// in-bounds orthogonal neighbors, so the result of a pass does not depend
// on traversal order. Ownership of every receiving cell transfers to the
// triggering player.
//
// An exploding cell sheds its entire value even though corner and edge
// cells have fewer than 4 neighbors, so orbs leave play at the board
// boundary and total orb count never grows.
func (g *Grid) ResolveCascade(player PlayerID) {
	for {
		overflow := g.overflowing()
		if len(overflow) == 0 {
			return
		}
		for _, c := range overflow {
			cell := &g.Cells[c[0]][c[1]]
			cell.Value = 0
			cell.Owner = NoPlayer
		}
		for _, c := range overflow {
			for _, d := range directions {
				nx, ny := c[0]+d[0], c[1]+d[1]
				if !g.InBounds(nx, ny) {
					continue
				}
				neighbor := &g.Cells[nx][ny]
				neighbor.Value++
				neighbor.Owner = player
			}
		}
	}
}

func (g *Grid) overflowing() [][2]int {
	var cells [][2]int
	for x := range g.Cells {
		for y := range g.Cells[x] {
			if g.Cells[x][y].Value > g.Cells[x][y].Capacity {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return cells
}
