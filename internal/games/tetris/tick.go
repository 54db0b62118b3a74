package tetris

import "time"

// TickResult describes the outcome of one tick.
type TickResult struct {
	Phase  Phase
	Paused bool
	Events []Event
}

// Tick advances the session by one cadence step. now is a monotonic clock
// value supplied by the host; only its differences matter.
func Tick(s *Session, now time.Duration) TickResult {
	s.events = nil
	s.advanceClock(now)

	if !s.gameOver && !s.paused {
		s.step()
	} else if s.paused {
		s.pending = nil
	}

	return TickResult{Phase: s.Phase(), Paused: s.paused, Events: s.events}
}

// advanceClock adds the time since the previous tick to the gravity clock
// unless play is frozen.
func (s *Session) advanceClock(now time.Duration) {
	if !s.clockStarted {
		s.clockStarted = true
		s.lastNow = now
	}
	delta := max(now-s.lastNow, 0)
	s.lastNow = now
	if !s.paused && !s.gameOver {
		s.clock += delta
	}
}

func (s *Session) step() {
	if s.current == nil {
		s.spawn()
	}

	if s.pending != nil {
		m := *s.pending
		s.pending = nil
		if Apply(s, m) {
			s.emit(EventMove{Movement: m, Piece: *s.current})
		}
	}

	if s.clock-s.lastGravity < time.Duration(s.speed)*time.Millisecond {
		return
	}
	s.lastGravity = s.clock

	if Apply(s, MoveDown) {
		return
	}

	s.emit(EventLock{Piece: *s.current})
	if s.grid.RowOccupied(s.cfg.Board.SpawnRows) {
		s.gameOver = true
		s.emit(EventGameOver{Score: s.score, Level: s.level})
		return
	}

	ClearCompletedRows(s)
	s.current = nil
}

// spawn promotes the next piece and draws a new one.
func (s *Session) spawn() {
	s.nextID++
	p := s.next
	p.ID = s.nextID
	s.next = s.factory.CreateRandomShape()

	place(s.grid, p)
	s.current = &p
	s.lastGravity = s.clock
	s.stats[p.Kind]++
	s.emit(EventSpawn{Piece: p})
}
