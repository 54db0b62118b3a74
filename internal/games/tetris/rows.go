package tetris

// IsRowComplete reports whether every cell of the row is occupied.
func IsRowComplete(g *Grid, row int) bool {
	if row < 0 || row >= g.height {
		return false
	}
	for col := range g.width {
		if !g.At(Location{Col: col, Row: row}).IsOccupied() {
			return false
		}
	}
	return true
}

// completeRows returns the complete visible rows in ascending order.
func completeRows(g *Grid, spawnRows int) []int {
	var rows []int
	for row := spawnRows; row < g.height; row++ {
		if IsRowComplete(g, row) {
			rows = append(rows, row)
		}
	}
	return rows
}

// ClearCompletedRows removes every complete visible row, drops the blocks
// above each removed row by one, and applies scoring and leveling.
// It returns the number of rows removed.
func ClearCompletedRows(s *Session) int {
	rows := completeRows(s.grid, s.cfg.Board.SpawnRows)
	if len(rows) == 0 {
		return 0
	}

	// Ascending order: compacting a row never moves rows below it, so the
	// indices collected above stay valid.
	for _, row := range rows {
		s.grid.clearRow(row)
		s.grid.dropAbove(row)
	}

	count := len(rows)
	points := s.cfg.Scoring.Rewards[count] * (s.level + 1)
	s.score += points
	s.totalRows += count
	s.emit(EventRowsCleared{Rows: count, Points: points})

	s.completed += count
	if s.completed >= s.cfg.Scoring.RowsPerLevel {
		s.level++
		s.completed = 0
		s.speed = nextSpeed(s.speed, s.cfg.Gravity.DecayDivisor, s.cfg.Gravity.MinSpeedMs)
		s.emit(EventLevelUp{Level: s.level, SpeedMs: s.speed})
	}
	return count
}

// nextSpeed shrinks the gravity interval by a truncated 1/divisor, never
// going below floor.
func nextSpeed(speed, divisor, floor int) int {
	return max(speed-speed/divisor, floor)
}
