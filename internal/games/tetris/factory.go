package tetris

import "math/rand"

// ShapeFactory produces the pieces the engine spawns.
// Implementations must always succeed.
type ShapeFactory interface {
	CreateRandomShape() Piece
}

// RandomShapeFactory picks kinds uniformly from a seeded source, so the same
// seed always yields the same piece sequence.
type RandomShapeFactory struct {
	rng   *rand.Rand
	width int
}

// NewRandomShapeFactory creates a factory for a playfield of the given width.
func NewRandomShapeFactory(width int, seed int64) *RandomShapeFactory {
	return &RandomShapeFactory{
		rng:   rand.New(rand.NewSource(seed)),
		width: width,
	}
}

// CreateRandomShape returns a new piece of a uniformly chosen kind at its
// spawn position.
func (f *RandomShapeFactory) CreateRandomShape() Piece {
	kind := Kinds[f.rng.Intn(KindCount)]
	return SpawnPiece(kind, f.width)
}

// SpawnPiece returns a piece of the given kind in its spawn orientation,
// horizontally centered and entirely inside the two hidden spawn rows.
// The piece has no identity until the session promotes it.
func SpawnPiece(kind ShapeKind, width int) Piece {
	return Piece{
		Kind:     kind,
		Rotation: 0,
		Origin:   Location{Col: (width - boxWidths[kind]) / 2, Row: 0},
	}
}
