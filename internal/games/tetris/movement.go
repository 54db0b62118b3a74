package tetris

// Movement is a transform the player or gravity can request.
type Movement int

const (
	MoveLeft Movement = iota
	MoveRight
	MoveDown
	MoveRotateClockwise
)

// String returns the movement name.
func (m Movement) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case MoveDown:
		return "down"
	case MoveRotateClockwise:
		return "rotate"
	default:
		return "unknown"
	}
}

// Apply returns the candidate piece for m. The input piece is not modified.
func (m Movement) Apply(p Piece) Piece {
	switch m {
	case MoveLeft:
		return p.Translate(-1, 0)
	case MoveRight:
		return p.Translate(1, 0)
	case MoveDown:
		return p.Translate(0, 1)
	case MoveRotateClockwise:
		return p.RotateClockwise()
	default:
		return p
	}
}

// CanApply reports whether p may take movement m on the session's grid.
// Cells owned by p itself do not block it.
func CanApply(s *Session, p Piece, m Movement) bool {
	return fits(s.grid, m.Apply(p))
}

// fits reports whether every block of candidate lies inside the grid on a
// cell that is empty or already owned by the candidate.
func fits(g *Grid, candidate Piece) bool {
	for _, loc := range candidate.Locations() {
		if !g.InBounds(loc) {
			return false
		}
		if owner, ok := g.At(loc).Owner(); ok && owner != candidate.ID {
			return false
		}
	}
	return true
}

// Apply moves the session's current piece by m.
// A rejected movement returns false and changes nothing.
func Apply(s *Session, m Movement) bool {
	if s.current == nil {
		return false
	}

	candidate := m.Apply(*s.current)
	if !fits(s.grid, candidate) {
		return false
	}

	// Clear first so the candidate may reuse cells the piece is leaving.
	for _, loc := range s.current.Locations() {
		s.grid.Set(loc, EmptyCell())
	}
	place(s.grid, candidate)
	s.current = &candidate
	return true
}

// place writes the piece's blocks into the grid.
func place(g *Grid, p Piece) {
	for _, b := range p.Blocks() {
		g.Set(b.Location, OccupiedCell(b.Owner, p.Kind))
	}
}
