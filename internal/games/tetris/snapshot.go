package tetris

// Snapshot is a read-only copy of a session for renderers. It shares no
// memory with the session it was taken from.
type Snapshot struct {
	Grid          *Grid
	Current       *Piece
	Next          Piece
	Score         int
	Level         int
	CompletedRows int
	TotalRows     int
	SpeedMs       int
	Phase         Phase
	GameOver      bool
	Paused        bool
	Statistics    [KindCount]int
}

// Snapshot returns a deep copy of the renderer-visible state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Grid:          s.grid.Clone(),
		Next:          s.next,
		Score:         s.score,
		Level:         s.level,
		CompletedRows: s.completed,
		TotalRows:     s.totalRows,
		SpeedMs:       s.speed,
		Phase:         s.Phase(),
		GameOver:      s.gameOver,
		Paused:        s.paused,
		Statistics:    s.stats,
	}
	if s.current != nil {
		p := *s.current
		snap.Current = &p
	}
	return snap
}
