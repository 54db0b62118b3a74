package tetris

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

func TestNewSessionAwaitsSpawn(t *testing.T) {
	s := newScriptedSession(t, KindT)
	if s.Phase() != PhaseAwaitingSpawn {
		t.Errorf("phase = %v, want awaiting-spawn", s.Phase())
	}
	if s.Grid().OccupiedCount() != 0 {
		t.Error("new session grid not empty")
	}
	if s.Level() != 1 || s.Score() != 0 || s.Speed() != 800 {
		t.Errorf("level=%d score=%d speed=%d", s.Level(), s.Score(), s.Speed())
	}
}

func TestFirstTickSpawns(t *testing.T) {
	s := newScriptedSession(t, KindT, KindI)
	res := Tick(s, 0)

	if !hasEvent[EventSpawn](res.Events) {
		t.Error("missing spawn event")
	}
	p := current(t, s)
	if p.Kind != KindT || p.ID == 0 {
		t.Errorf("current = %v id %d, want T with an id", p.Kind, p.ID)
	}
	if s.Next().Kind != KindI {
		t.Errorf("next = %v, want I", s.Next().Kind)
	}
	if s.Statistics()[KindT] != 1 {
		t.Errorf("T spawned %d times, want 1", s.Statistics()[KindT])
	}
	assertGridMatchesPiece(t, s.Grid(), p)
}

func TestGravityWaitsFullInterval(t *testing.T) {
	s := spawned(t, KindO)
	start := current(t, s).Origin.Row

	Tick(s, ms(799))
	if got := current(t, s).Origin.Row; got != start {
		t.Fatalf("piece fell before the interval: row %d", got)
	}

	Tick(s, ms(800))
	if got := current(t, s).Origin.Row; got != start+1 {
		t.Errorf("row = %d, want %d", got, start+1)
	}

	Tick(s, ms(1599))
	if got := current(t, s).Origin.Row; got != start+1 {
		t.Errorf("second drop came early: row %d", got)
	}
}

func TestPieceLocksAtFloor(t *testing.T) {
	s := spawned(t, KindI, KindO)
	for Apply(s, MoveDown) {
	}
	_, hi := current(t, s).Bounds()
	if hi.Row != 21 {
		t.Fatalf("bottom row = %d, want 21", hi.Row)
	}

	res := Tick(s, ms(800))
	if !hasEvent[EventLock](res.Events) {
		t.Error("missing lock event")
	}
	if res.Phase != PhaseAwaitingSpawn {
		t.Errorf("phase = %v, want awaiting-spawn", res.Phase)
	}
	if s.Grid().OccupiedCount() != 4 {
		t.Errorf("OccupiedCount = %d, want 4 settled blocks", s.Grid().OccupiedCount())
	}

	res = Tick(s, ms(801))
	if res.Phase != PhaseFalling || current(t, s).Kind != KindO {
		t.Errorf("next tick did not spawn the O piece")
	}
}

func TestSquareCompletesBottomRow(t *testing.T) {
	s := newScriptedSession(t, KindO)
	fillRow(s.Grid(), 21, 99, 4, 5)

	var cleared *EventRowsCleared
	now := time.Duration(0)
	for range 100 {
		res := Tick(s, now)
		for _, e := range res.Events {
			if ev, ok := e.(EventRowsCleared); ok {
				cleared = &ev
			}
		}
		if cleared != nil {
			break
		}
		now += ms(800)
	}

	if cleared == nil {
		t.Fatal("row 21 never cleared")
	}
	if want := 40 * (1 + 1); cleared.Points != want || s.Score() != want {
		t.Errorf("points = %d, score = %d, want %d", cleared.Points, s.Score(), want)
	}
	if s.TotalRows() != 1 {
		t.Errorf("total rows = %d, want 1", s.TotalRows())
	}
	// The square's upper half drops into the cleared row.
	for col := range 10 {
		want := col == 4 || col == 5
		if got := s.Grid().At(Location{Col: col, Row: 21}).IsOccupied(); got != want {
			t.Errorf("(%d,21) occupied = %v, want %v", col, got, want)
		}
	}
	if s.Grid().OccupiedCount() != 2 {
		t.Errorf("OccupiedCount = %d, want 2", s.Grid().OccupiedCount())
	}
}

func TestGameOverWhenLockReachesRowTwo(t *testing.T) {
	s := spawned(t, KindO)
	s.Grid().Set(Location{Col: 4, Row: 3}, OccupiedCell(99, KindZ))

	Tick(s, ms(800))
	res := Tick(s, ms(1600))

	if !hasEvent[EventLock](res.Events) || !hasEvent[EventGameOver](res.Events) {
		t.Fatalf("events = %#v, want lock and game over", res.Events)
	}
	if res.Phase != PhaseGameOver || !s.GameOver() {
		t.Fatalf("phase = %v, want game-over", res.Phase)
	}

	snap := s.Snapshot()
	RequestMovement(s, MoveLeft)
	for i := range 10 {
		res = Tick(s, ms(2400+800*i))
		if len(res.Events) != 0 {
			t.Errorf("events after game over: %#v", res.Events)
		}
	}
	if !reflect.DeepEqual(snap.Grid, s.Grid()) || s.Statistics() != snap.Statistics {
		t.Error("state changed after game over")
	}

	NewGame(s)
	if s.GameOver() || s.Grid().OccupiedCount() != 0 || s.Phase() != PhaseAwaitingSpawn {
		t.Error("NewGame did not reset the session")
	}
}

func TestPendingMovementLastWriteWins(t *testing.T) {
	s := spawned(t, KindO)
	col := current(t, s).Origin.Col

	RequestMovement(s, MoveLeft)
	RequestMovement(s, MoveRight)
	res := Tick(s, ms(1))

	if got := current(t, s).Origin.Col; got != col+1 {
		t.Errorf("col = %d, want %d", got, col+1)
	}
	if !hasEvent[EventMove](res.Events) {
		t.Error("missing move event")
	}
	if _, ok := s.Pending(); ok {
		t.Error("pending request not consumed")
	}
}

func TestRejectedPendingIsConsumed(t *testing.T) {
	s := spawned(t, KindO)
	for Apply(s, MoveLeft) {
	}

	RequestMovement(s, MoveLeft)
	res := Tick(s, ms(1))

	if hasEvent[EventMove](res.Events) {
		t.Error("rejected movement emitted a move event")
	}
	if _, ok := s.Pending(); ok {
		t.Error("rejected request left in the pending slot")
	}
}

func TestPauseStopsGravityClock(t *testing.T) {
	s := spawned(t, KindO)
	start := current(t, s).Origin.Row

	Tick(s, ms(500))
	RequestPause(s)
	RequestMovement(s, MoveLeft)
	for now := 600; now <= 10_000; now += 100 {
		res := Tick(s, ms(now))
		if !res.Paused {
			t.Fatal("tick not reported as paused")
		}
	}
	if _, ok := s.Pending(); ok {
		t.Error("movement requested while paused was kept")
	}
	if p := current(t, s); p.Origin.Row != start || p.Origin.Col != 4 {
		t.Fatalf("piece moved while paused: %+v", p.Origin)
	}

	Resume(s)
	Tick(s, ms(10_200))
	if got := current(t, s).Origin.Row; got != start {
		t.Fatalf("paused time counted toward gravity: row %d", got)
	}
	Tick(s, ms(10_300))
	if got := current(t, s).Origin.Row; got != start+1 {
		t.Errorf("row = %d after 800ms of play, want %d", got, start+1)
	}
}

func TestPauseWithoutTickFreezesNothing(t *testing.T) {
	s := spawned(t, KindO)
	start := current(t, s).Origin.Row

	RequestPause(s)
	Resume(s)
	Tick(s, ms(800))
	if got := current(t, s).Origin.Row; got != start+1 {
		t.Errorf("row = %d, want %d: a pause never seen by Tick still stops the clock", got, start+1)
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	s := spawned(t, KindT)
	snap := s.Snapshot()

	snap.Grid.Set(Location{Col: 0, Row: 21}, OccupiedCell(99, KindZ))
	snap.Current.Origin.Col = 0

	if s.Grid().At(Location{Col: 0, Row: 21}).IsOccupied() {
		t.Error("snapshot grid shares memory with session")
	}
	if current(t, s).Origin.Col == 0 {
		t.Error("snapshot piece shares memory with session")
	}
}

func TestSeededSessionsAreDeterministic(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	a := NewSession(cfg, NewRandomShapeFactory(cfg.Board.Width, 42))
	b := NewSession(cfg, NewRandomShapeFactory(cfg.Board.Width, 42))
	moves := []Movement{MoveLeft, MoveRight, MoveRotateClockwise, MoveDown}

	for i := range 2000 {
		if i%3 == 0 {
			m := moves[i%len(moves)]
			RequestMovement(a, m)
			RequestMovement(b, m)
		}
		now := ms(50 * i)
		ra, rb := Tick(a, now), Tick(b, now)
		if !reflect.DeepEqual(ra, rb) {
			t.Fatalf("tick %d results differ", i)
		}
	}
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Error("snapshots differ after identical play")
	}
}

// TestRandomPlayInvariants drives long random sessions and checks the
// invariants that must hold after every tick.
func TestRandomPlayInvariants(t *testing.T) {
	cfg := config.DefaultTetrisConfig()
	rng := rand.New(rand.NewSource(7))
	s := NewSession(cfg, NewRandomShapeFactory(cfg.Board.Width, 7))

	moves := []Movement{MoveLeft, MoveRight, MoveRotateClockwise, MoveDown}
	lastScore, lastLevel := 0, s.Level()
	games := 0

	for i := range 20_000 {
		if rng.Intn(2) == 0 {
			RequestMovement(s, moves[rng.Intn(len(moves))])
		}
		Tick(s, ms(100*i))

		if s.Score() < lastScore || s.Level() < lastLevel {
			t.Fatalf("tick %d: score/level decreased", i)
		}
		lastScore, lastLevel = s.Score(), s.Level()

		if s.CompletedRows() >= cfg.Scoring.RowsPerLevel {
			t.Fatalf("tick %d: completed rows %d not reset", i, s.CompletedRows())
		}
		if s.Speed() < cfg.Gravity.MinSpeedMs {
			t.Fatalf("tick %d: speed %d below floor", i, s.Speed())
		}
		if p, ok := s.Current(); ok && !s.GameOver() {
			seen := make(map[Location]bool)
			for _, loc := range p.Locations() {
				if seen[loc] {
					t.Fatalf("tick %d: piece covers %v twice", i, loc)
				}
				seen[loc] = true
				if owner, ok := s.Grid().At(loc).Owner(); !ok || owner != p.ID {
					t.Fatalf("tick %d: cell %v not owned by current piece", i, loc)
				}
			}
		}
		if s.GameOver() {
			games++
			NewGame(s)
			lastScore, lastLevel = 0, s.Level()
		}
	}
	if games == 0 {
		t.Log("no game ended during random play")
	}
}
