package board

import "fmt"

// Action is the closed set of player inputs the board understands. The
// host maps keys, hats or mouse buttons onto these; the board never sees
// the binding layer.
type Action int

const (
	ActionMoveNorth Action = iota
	ActionMoveSouth
	ActionMoveEast
	ActionMoveWest
	ActionSelect
	ActionDeselectAll
	ActionQueryDepth
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionMoveNorth:
		return "move-north"
	case ActionMoveSouth:
		return "move-south"
	case ActionMoveEast:
		return "move-east"
	case ActionMoveWest:
		return "move-west"
	case ActionSelect:
		return "select"
	case ActionDeselectAll:
		return "deselect-all"
	case ActionQueryDepth:
		return "query-depth"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// HandleInput dispatches one player action to the matching operation.
// Signaled gameplay results pass through; an action outside the enum is a
// programming error and reported as such.
func (b *Board) HandleInput(a Action) error {
	switch a {
	case ActionMoveNorth:
		return b.Move(North)
	case ActionMoveSouth:
		return b.Move(South)
	case ActionMoveEast:
		return b.Move(East)
	case ActionMoveWest:
		return b.Move(West)
	case ActionSelect:
		return b.Select()
	case ActionDeselectAll:
		return b.DeselectAll()
	case ActionQueryDepth:
		b.emit(Event{Kind: EventDepth, Cell: b.cursor, Depth: b.CurrentDepth()})
		return nil
	default:
		return fmt.Errorf("unknown action %d", int(a))
	}
}
