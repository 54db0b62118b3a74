// Package tetris implements the falling-block puzzle engine: the playfield,
// the active and next pieces, scoring, leveling and the per-tick rules that
// spawn, move, lock and clear.
//
// The engine is driven entirely by the host. Tick is called once per cadence
// step with a monotonic clock value; the engine never sleeps or performs I/O.
package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// ShapeKind identifies one of the seven tetrominoes.
type ShapeKind int

const (
	KindI ShapeKind = iota
	KindJ
	KindL
	KindO
	KindS
	KindT
	KindZ
)

// KindCount is the number of tetromino kinds.
const KindCount = 7

// Kinds lists every kind in display order.
var Kinds = [KindCount]ShapeKind{KindI, KindJ, KindL, KindO, KindS, KindT, KindZ}

// String returns the single-letter name of the kind.
func (k ShapeKind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindZ:
		return "Z"
	default:
		return "?"
	}
}

// Color returns the conventional display color of the kind.
func (k ShapeKind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	case KindO:
		return core.ColorYellow
	case KindS:
		return core.ColorGreen
	case KindT:
		return core.ColorMagenta
	case KindZ:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

// Location is a (column, row) cell on the playfield. Row 0 is the top.
type Location struct {
	Col, Row int
}

// Add returns l shifted by (dc, dr).
func (l Location) Add(dc, dr int) Location {
	return Location{Col: l.Col + dc, Row: l.Row + dr}
}

// PieceID identifies a piece for its whole life, including after it settles.
// Zero is never assigned to a piece on the grid.
type PieceID uint64

// Block is one of the four cells of a piece.
type Block struct {
	Owner    PieceID
	Location Location
}

// RotationStates is the number of orientations every kind cycles through.
const RotationStates = 4

// rotationTable holds, per rotation state, the four block offsets relative to
// the top-left corner of the piece's bounding box.
type rotationTable [RotationStates][4]Location

// rotations follows the SRS orientation charts. Each state is a fixed table;
// rotation is a lookup, never a matrix transform, and there are no wall kicks.
var rotations = [KindCount]rotationTable{
	KindI: {
		{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		{{2, 0}, {2, 1}, {2, 2}, {2, 3}},
		{{0, 2}, {1, 2}, {2, 2}, {3, 2}},
		{{1, 0}, {1, 1}, {1, 2}, {1, 3}},
	},
	KindJ: {
		{{0, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {2, 0}, {1, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 0}, {1, 1}, {0, 2}, {1, 2}},
	},
	KindL: {
		{{2, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {1, 2}, {2, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {0, 2}},
		{{0, 0}, {1, 0}, {1, 1}, {1, 2}},
	},
	KindO: {
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
		{{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	},
	KindS: {
		{{1, 0}, {2, 0}, {0, 1}, {1, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {2, 2}},
		{{1, 1}, {2, 1}, {0, 2}, {1, 2}},
		{{0, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	KindT: {
		{{1, 0}, {0, 1}, {1, 1}, {2, 1}},
		{{1, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {2, 1}, {1, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {1, 2}},
	},
	KindZ: {
		{{0, 0}, {1, 0}, {1, 1}, {2, 1}},
		{{2, 0}, {1, 1}, {2, 1}, {1, 2}},
		{{0, 1}, {1, 1}, {1, 2}, {2, 2}},
		{{1, 0}, {0, 1}, {1, 1}, {0, 2}},
	},
}

// boxWidths is the bounding box width of each kind, used to center spawns.
var boxWidths = [KindCount]int{
	KindI: 4,
	KindJ: 3,
	KindL: 3,
	KindO: 2,
	KindS: 3,
	KindT: 3,
	KindZ: 3,
}

// Piece is a tetromino at a position and orientation.
// Pieces are values: Translate and RotateClockwise return candidates and
// leave the receiver untouched.
type Piece struct {
	ID       PieceID
	Kind     ShapeKind
	Rotation int      // 0..RotationStates-1, 0 is the spawn orientation
	Origin   Location // Top-left corner of the bounding box
}

// Locations returns the four cells the piece covers.
func (p Piece) Locations() [4]Location {
	var out [4]Location
	for i, off := range rotations[p.Kind][p.Rotation] {
		out[i] = p.Origin.Add(off.Col, off.Row)
	}
	return out
}

// Blocks returns the four blocks of the piece, tagged with its identity.
func (p Piece) Blocks() [4]Block {
	var out [4]Block
	for i, loc := range p.Locations() {
		out[i] = Block{Owner: p.ID, Location: loc}
	}
	return out
}

// Translate returns the piece moved by (dc, dr).
func (p Piece) Translate(dc, dr int) Piece {
	p.Origin = p.Origin.Add(dc, dr)
	return p
}

// RotateClockwise returns the piece in its next orientation.
func (p Piece) RotateClockwise() Piece {
	p.Rotation = (p.Rotation + 1) % RotationStates
	return p
}

// Bounds returns the inclusive extent of the piece's cells.
func (p Piece) Bounds() (minLoc, maxLoc Location) {
	locs := p.Locations()
	minLoc, maxLoc = locs[0], locs[0]
	for _, l := range locs[1:] {
		minLoc.Col = min(minLoc.Col, l.Col)
		minLoc.Row = min(minLoc.Row, l.Row)
		maxLoc.Col = max(maxLoc.Col, l.Col)
		maxLoc.Row = max(maxLoc.Row, l.Row)
	}
	return minLoc, maxLoc
}
