package game

// PlayerID identifies a player within a single game. Players are numbered
// sequentially from 1 in join order; 0 means no player.
type PlayerID int

const NoPlayer PlayerID = 0

type Cell struct {
	Value    int      `json:"value"`
	Owner    PlayerID `json:"ownerId"`
	Capacity int      `json:"capacity"`
}

// Grid is a fixed-size board of cells. Capacity is assigned once from
// position (corner 1, edge 2, interior 3) and never changes afterwards.
type Grid struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]Cell `json:"cells"`
}

func NewGrid(rows, cols int) *Grid {
	cells := make([][]Cell, rows)
	for x := range cells {
		cells[x] = make([]Cell, cols)
		for y := range cells[x] {
			cells[x][y] = Cell{Capacity: capacityFor(x, y, rows, cols)}
		}
	}
	return &Grid{Rows: rows, Cols: cols, Cells: cells}
}

func capacityFor(x, y, rows, cols int) int {
	onRowEdge := x == 0 || x == rows-1
	onColEdge := y == 0 || y == cols-1
	switch {
	case onRowEdge && onColEdge:
		return 1
	case onRowEdge || onColEdge:
		return 2
	default:
		return 3
	}
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Rows && y >= 0 && y < g.Cols
}

// ValidMove reports whether player may place an orb at (x, y): the cell
// must exist and be either empty or already owned by the player.
func (g *Grid) ValidMove(player PlayerID, x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	cell := g.Cells[x][y]
	return cell.Value == 0 || cell.Owner == player
}

// PlaceOrb adds one orb for player at (x, y). An illegal placement is a
// silent no-op; callers are expected to pre-check with ValidMove.
func (g *Grid) PlaceOrb(player PlayerID, x, y int) {
	if !g.ValidMove(player, x, y) {
		return
	}
	cell := &g.Cells[x][y]
	if cell.Owner == player {
		cell.Value++
	} else {
		cell.Value = 1
		cell.Owner = player
	}
}

// Clone returns a deep copy of the grid, safe to hand out in snapshots.
func (g *Grid) Clone() *Grid {
	cells := make([][]Cell, len(g.Cells))
	for x := range g.Cells {
		cells[x] = make([]Cell, len(g.Cells[x]))
		copy(cells[x], g.Cells[x])
	}
	return &Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// OrbCount returns the total number of orbs on the board.
func (g *Grid) OrbCount() int {
	total := 0
	for x := range g.Cells {
		for y := range g.Cells[x] {
			total += g.Cells[x][y].Value
		}
	}
	return total
}
