package board

// EventKind names one semantic outcome of a board operation. The board
// emits these; the presentation layer decides what each one sounds like.
type EventKind string

const (
	// EventPopulated fires once per (re)population, before the initial
	// EventMoved for the origin cell.
	EventPopulated EventKind = "populated"

	// EventMoved fires when the cursor lands on a cell. The event carries
	// the cell's descriptive state.
	EventMoved EventKind = "moved"

	// EventBlocked fires when a move would leave the grid. The cursor does
	// not change.
	EventBlocked EventKind = "blocked"

	// EventProgress fires when a selection is accepted and the running sum
	// is still below the target.
	EventProgress EventKind = "progress"

	// EventRevealed fires when selecting an empty cell with nothing else
	// selected: a fresh value has been seeded onto its stack.
	EventRevealed EventKind = "revealed"

	// EventRerolled fires when selecting an empty cell with exactly one
	// other cell selected: that cell's top value has been replaced.
	EventRerolled EventKind = "rerolled"

	// EventWin fires when the selection sum hits the target exactly. Each
	// selected stack has already been popped. Followed by either
	// EventRoundContinues or EventGameWon.
	EventWin EventKind = "win"

	// EventRoundContinues fires after a win when numbers remain on the grid.
	EventRoundContinues EventKind = "round-continues"

	// EventGameWon fires after a win that empties every stack. Repopulation
	// is the caller's move, not the board's.
	EventGameWon EventKind = "game-won"

	// EventLose fires when the selection sum overshoots the target. Each
	// selected stack grows by one penalty value after this event.
	EventLose EventKind = "lose"

	// EventDeselected fires when a non-empty selection is cleared.
	EventDeselected EventKind = "deselected"

	// EventReject fires when selecting an already-selected cell.
	EventReject EventKind = "reject"

	// EventDepth reports the stack depth under the cursor.
	EventDepth EventKind = "depth"
)

// CellState describes the cell the cursor just landed on.
type CellState int

const (
	// CellNumber means the cell has a visible top value.
	CellNumber CellState = iota

	// CellEmpty means the cell's stack is empty (a wildcard).
	CellEmpty

	// CellSelected means the cell is part of the current selection.
	CellSelected
)

// Event is one semantic occurrence on the board. Only the fields relevant
// to Kind are set.
type Event struct {
	Kind EventKind

	// Cell is the coordinate the event concerns, when there is one.
	Cell Coord

	// State qualifies EventMoved.
	State CellState

	// Top is the visible value involved: the destination's top value for
	// EventMoved (CellNumber only), the seeded value for EventRevealed,
	// the replacement value for EventRerolled.
	Top int

	// Sum is the running selection sum for EventProgress, EventWin and
	// EventLose.
	Sum int

	// Depth is the stack length for EventDepth.
	Depth int
}

// Sink receives board events. Implementations must not call back into the
// board; events are delivered synchronously mid-operation.
type Sink interface {
	Handle(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

// Handle calls f(ev).
func (f SinkFunc) Handle(ev Event) { f(ev) }
