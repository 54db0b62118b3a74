package tetris

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

// scriptedFactory returns kinds in a fixed cycle.
type scriptedFactory struct {
	kinds []ShapeKind
	width int
	calls int
}

func (f *scriptedFactory) CreateRandomShape() Piece {
	k := f.kinds[f.calls%len(f.kinds)]
	f.calls++
	return SpawnPiece(k, f.width)
}

func newScriptedSession(t *testing.T, kinds ...ShapeKind) *Session {
	t.Helper()
	cfg := config.DefaultTetrisConfig()
	return NewSession(cfg, &scriptedFactory{kinds: kinds, width: cfg.Board.Width})
}

// spawned returns a session whose first piece is already on the grid.
func spawned(t *testing.T, kinds ...ShapeKind) *Session {
	t.Helper()
	s := newScriptedSession(t, kinds...)
	res := Tick(s, 0)
	if res.Phase != PhaseFalling {
		t.Fatalf("phase after first tick = %v, want falling", res.Phase)
	}
	return s
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// fillRow occupies the row with blocks of a settled piece, leaving skip empty.
func fillRow(g *Grid, row int, owner PieceID, skip ...int) {
	for col := range g.Width() {
		skipped := false
		for _, s := range skip {
			if s == col {
				skipped = true
			}
		}
		if !skipped {
			g.Set(Location{Col: col, Row: row}, OccupiedCell(owner, KindZ))
		}
	}
}

func current(t *testing.T, s *Session) Piece {
	t.Helper()
	p, ok := s.Current()
	if !ok {
		t.Fatal("expected a current piece")
	}
	return p
}

func hasEvent[E Event](events []Event) bool {
	for _, e := range events {
		if _, ok := e.(E); ok {
			return true
		}
	}
	return false
}
