package tetris

// Event reports something observable that happened during a tick.
// The set of event types is closed.
type Event interface {
	tickEvent()
}

// EventSpawn fires when the next piece becomes the current piece.
type EventSpawn struct {
	Piece Piece
}

// EventMove fires when a requested movement is accepted.
type EventMove struct {
	Movement Movement
	Piece    Piece
}

// EventLock fires when gravity cannot move the current piece any further.
type EventLock struct {
	Piece Piece
}

// EventRowsCleared fires once per lock that completes at least one row.
type EventRowsCleared struct {
	Rows   int
	Points int
}

// EventLevelUp fires when the completed-rows threshold is reached.
type EventLevelUp struct {
	Level   int
	SpeedMs int
}

// EventGameOver fires once, on the tick the session ends.
type EventGameOver struct {
	Score int
	Level int
}

func (EventSpawn) tickEvent()       {}
func (EventMove) tickEvent()        {}
func (EventLock) tickEvent()        {}
func (EventRowsCleared) tickEvent() {}
func (EventLevelUp) tickEvent()     {}
func (EventGameOver) tickEvent()    {}
