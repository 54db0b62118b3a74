package tetris

// cellState tags the Cell variant.
type cellState uint8

const (
	cellEmpty cellState = iota
	cellOccupied
)

// Cell is either empty or occupied by a block of a known piece and kind.
// The zero value is an empty cell.
type Cell struct {
	state cellState
	owner PieceID
	kind  ShapeKind
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{}
}

// OccupiedCell returns a cell holding a block of the given piece.
func OccupiedCell(owner PieceID, kind ShapeKind) Cell {
	return Cell{state: cellOccupied, owner: owner, kind: kind}
}

// IsOccupied reports whether the cell holds a block.
func (c Cell) IsOccupied() bool {
	return c.state == cellOccupied
}

// Owner returns the owning piece, or false for an empty cell.
func (c Cell) Owner() (PieceID, bool) {
	if c.state != cellOccupied {
		return 0, false
	}
	return c.owner, true
}

// Kind returns the kind of the owning piece, or false for an empty cell.
func (c Cell) Kind() (ShapeKind, bool) {
	if c.state != cellOccupied {
		return 0, false
	}
	return c.kind, true
}

// Grid is the dense occupancy map of the playfield.
// It always holds exactly width*height cells.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates an all-empty grid.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows, hidden spawn rows included.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether l is a cell of the grid.
func (g *Grid) InBounds(l Location) bool {
	return l.Col >= 0 && l.Col < g.width && l.Row >= 0 && l.Row < g.height
}

// At returns the cell at l. Out-of-bounds locations read as empty.
func (g *Grid) At(l Location) Cell {
	if !g.InBounds(l) {
		return EmptyCell()
	}
	return g.cells[l.Row*g.width+l.Col]
}

// Set writes the cell at l. Out-of-bounds writes are ignored.
func (g *Grid) Set(l Location, c Cell) {
	if !g.InBounds(l) {
		return
	}
	g.cells[l.Row*g.width+l.Col] = c
}

// Reset empties every cell.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// RowOccupied reports whether any cell of the row is occupied.
func (g *Grid) RowOccupied(row int) bool {
	if row < 0 || row >= g.height {
		return false
	}
	for _, c := range g.cells[row*g.width : (row+1)*g.width] {
		if c.IsOccupied() {
			return true
		}
	}
	return false
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	n := 0
	for _, c := range g.cells {
		if c.IsOccupied() {
			n++
		}
	}
	return n
}

// clearRow empties a row.
func (g *Grid) clearRow(row int) {
	clear(g.cells[row*g.width : (row+1)*g.width])
}

// dropAbove moves every cell strictly above row down by one, overwriting row
// and leaving row 0 empty.
func (g *Grid) dropAbove(row int) {
	for r := row; r > 0; r-- {
		copy(g.cells[r*g.width:(r+1)*g.width], g.cells[(r-1)*g.width:r*g.width])
	}
	g.clearRow(0)
}
