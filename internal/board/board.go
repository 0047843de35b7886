// Package board implements the Lucky Thirteen game state machine: a square
// grid of number stacks, a cursor, and a running selection that resolves
// the moment its sum reaches or passes the target.
//
// The board performs no I/O. Every state transition is synchronous and
// emits semantic events through a Sink; the presentation layer turns those
// into sounds. Expected gameplay outcomes (walking into a wall, selecting
// a cell twice) are signaled errors, not faults.
package board

import (
	"errors"
	"fmt"

	"luckythirteen/internal/rng"
)

// Signaled gameplay results. Callers branch on these; none of them aborts
// a session.
var (
	ErrOutOfBounds     = errors.New("move out of bounds")
	ErrAlreadySelected = errors.New("cell already selected")
	ErrNothingSelected = errors.New("nothing selected")
)

// Board owns the grid, the cursor and the current selection. It is
// single-writer: the session controller feeds it one input at a time and
// nothing else mutates it.
type Board struct {
	size     int
	target   int
	cells    map[Coord][]int
	cursor   Coord
	selected []Coord
	src      rng.Source
	sink     Sink
}

// New validates the configuration and returns a populated board. Size below
// 2 or a target below 1 makes the grid invariants unsatisfiable and is a
// configuration error.
func New(size, target int, src rng.Source, sink Sink) (*Board, error) {
	if size < 2 {
		return nil, fmt.Errorf("board size must be at least 2, got %d", size)
	}
	if target < 1 {
		return nil, fmt.Errorf("target must be at least 1, got %d", target)
	}
	b := &Board{
		size:   size,
		target: target,
		cells:  make(map[Coord][]int, size*size),
		src:    src,
		sink:   sink,
	}
	b.Populate()
	return b, nil
}

// Populate regenerates every stack, clears the selection and resets the
// cursor to the origin. Each stack is a fresh random permutation of
// 1..target, so every value appears exactly once per cell; duplicates only
// enter stacks through seeding, rerolls and lose penalties.
func (b *Board) Populate() {
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			b.cells[Coord{X: x, Y: y}] = b.src.Perm(b.target)
		}
	}
	b.selected = b.selected[:0]
	b.cursor = Coord{}
	b.emit(Event{Kind: EventPopulated})
	b.emitMoved()
}

// Size returns the side length of the grid.
func (b *Board) Size() int { return b.size }

// Target returns the sum selections must reach.
func (b *Board) Target() int { return b.target }

// Cursor returns the player's current coordinate.
func (b *Board) Cursor() Coord { return b.cursor }

// Selected returns a copy of the current selection in insertion order.
func (b *Board) Selected() []Coord {
	out := make([]Coord, len(b.selected))
	copy(out, b.selected)
	return out
}

// Top returns the visible value of the cell at c, or false when its stack
// is empty.
func (b *Board) Top(c Coord) (int, bool) {
	stack := b.cells[c]
	if len(stack) == 0 {
		return 0, false
	}
	return stack[len(stack)-1], true
}

// StackLen returns the stack length at c.
func (b *Board) StackLen(c Coord) int { return len(b.cells[c]) }

// CurrentDepth returns the stack length under the cursor. Zero means the
// cell is empty; callers render that as a failure signal.
func (b *Board) CurrentDepth() int { return len(b.cells[b.cursor]) }

// Cleared reports whether every stack on the grid is empty.
func (b *Board) Cleared() bool {
	for _, stack := range b.cells {
		if len(stack) > 0 {
			return false
		}
	}
	return true
}

// Move steps the cursor one cell in direction d. Walking into the grid edge
// returns ErrOutOfBounds, leaves the cursor where it was and emits a
// blocked event; this is part of the normal interaction loop.
func (b *Board) Move(d Direction) error {
	dest := b.cursor.offset(d)
	if dest.X < 0 || dest.X >= b.size || dest.Y < 0 || dest.Y >= b.size {
		b.emit(Event{Kind: EventBlocked, Cell: b.cursor})
		return ErrOutOfBounds
	}
	b.cursor = dest
	b.emitMoved()
	return nil
}

// emitMoved announces the cursor's cell with its descriptive state.
func (b *Board) emitMoved() {
	ev := Event{Kind: EventMoved, Cell: b.cursor}
	switch top, ok := b.Top(b.cursor); {
	case b.isSelected(b.cursor):
		ev.State = CellSelected
	case !ok:
		ev.State = CellEmpty
	default:
		ev.State = CellNumber
		ev.Top = top
	}
	b.emit(ev)
}

// Select applies the selection rules to the cursor's cell.
//
// A cell already in the selection is rejected. A cell with a visible number
// joins the selection and the running sum resolves: equal to the target
// wins, above it loses, below it keeps building. An empty cell is a
// wildcard whose meaning depends on how much is already selected: nothing
// selected seeds the empty stack with a fresh value, exactly one selected
// rerolls that cell's top value, two or more selected triggers the win
// outright without adding the empty cell.
func (b *Board) Select() error {
	if b.isSelected(b.cursor) {
		b.emit(Event{Kind: EventReject, Cell: b.cursor})
		return ErrAlreadySelected
	}

	if _, ok := b.Top(b.cursor); !ok {
		switch len(b.selected) {
		case 0:
			v := b.src.IntN(1, b.target)
			b.cells[b.cursor] = append(b.cells[b.cursor], v)
			b.emit(Event{Kind: EventRevealed, Cell: b.cursor, Top: v})
		case 1:
			chosen := b.selected[0]
			stack := b.cells[chosen]
			v := b.src.IntN(1, b.target)
			stack[len(stack)-1] = v
			b.selected = b.selected[:0]
			b.emit(Event{Kind: EventRerolled, Cell: chosen, Top: v})
		default:
			b.resolveWin()
		}
		return nil
	}

	b.selected = append(b.selected, b.cursor)
	sum := b.selectionSum()
	switch {
	case sum == b.target:
		b.resolveWin()
	case sum > b.target:
		b.resolveLose(sum)
	default:
		b.emit(Event{Kind: EventProgress, Cell: b.cursor, Sum: sum})
	}
	return nil
}

// DeselectAll clears the selection. An empty selection is signaled with
// ErrNothingSelected and changes nothing.
func (b *Board) DeselectAll() error {
	if len(b.selected) == 0 {
		return ErrNothingSelected
	}
	b.selected = b.selected[:0]
	b.emit(Event{Kind: EventDeselected})
	return nil
}

// resolveWin pops one value from every selected stack, clears the
// selection and announces the result. Emptying the whole grid ends the
// round with game-won; repopulating is the caller's decision.
func (b *Board) resolveWin() {
	sum := b.selectionSum()
	for _, c := range b.selected {
		stack := b.cells[c]
		b.cells[c] = stack[:len(stack)-1]
	}
	b.selected = b.selected[:0]
	b.emit(Event{Kind: EventWin, Sum: sum})
	if b.Cleared() {
		b.emit(Event{Kind: EventGameWon})
	} else {
		b.emit(Event{Kind: EventRoundContinues})
	}
}

// resolveLose announces the overshoot, then grows every selected stack by
// one fresh penalty value and clears the selection.
func (b *Board) resolveLose(sum int) {
	b.emit(Event{Kind: EventLose, Sum: sum})
	for _, c := range b.selected {
		b.cells[c] = append(b.cells[c], b.src.IntN(1, b.target))
	}
	b.selected = b.selected[:0]
}

func (b *Board) selectionSum() int {
	sum := 0
	for _, c := range b.selected {
		stack := b.cells[c]
		sum += stack[len(stack)-1]
	}
	return sum
}

func (b *Board) isSelected(c Coord) bool {
	for _, s := range b.selected {
		if s == c {
			return true
		}
	}
	return false
}

func (b *Board) emit(ev Event) {
	if b.sink != nil {
		b.sink.Handle(ev)
	}
}
