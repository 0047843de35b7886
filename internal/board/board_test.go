package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luckythirteen/internal/rng"
)

// recorder captures every emitted event in order.
type recorder struct {
	events []Event
}

func (r *recorder) Handle(ev Event) { r.events = append(r.events, ev) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Kind
	}
	return out
}

func (r *recorder) last() Event {
	return r.events[len(r.events)-1]
}

func (r *recorder) reset() { r.events = nil }

// newTestBoard builds a 2x2 target-13 board with scripted stacks. Populate
// consumes the perms row by row: (0,0), (1,0), (0,1), (1,1).
func newTestBoard(t *testing.T, script *rng.Script) (*Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	b, err := New(2, 13, script, rec)
	require.NoError(t, err)
	rec.reset()
	return b, rec
}

// standardScript seeds the scenario grid from the spec: tops 6, 7, 5, 8 at
// (0,0), (1,0), (0,1), (1,1), each on a two-deep stack.
func standardScript(ints ...int) *rng.Script {
	return &rng.Script{
		Perms: [][]int{{1, 6}, {2, 7}, {3, 5}, {4, 8}},
		Ints:  ints,
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	src := rng.New(1)
	t.Run("size too small", func(t *testing.T) {
		_, err := New(1, 13, src, nil)
		assert.Error(t, err)
	})
	t.Run("target too small", func(t *testing.T) {
		_, err := New(4, 0, src, nil)
		assert.Error(t, err)
	})
	t.Run("minimum valid", func(t *testing.T) {
		b, err := New(2, 1, src, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, b.Size())
		assert.Equal(t, 1, b.Target())
	})
}

func TestPopulate_PermutationStacks(t *testing.T) {
	rec := &recorder{}
	b, err := New(3, 13, rng.New(7), rec)
	require.NoError(t, err)

	// Every stack is a permutation of 1..13: depth 13, each value once.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := Coord{X: x, Y: y}
			require.Equal(t, 13, b.StackLen(c), "stack depth at %v", c)
			seen := map[int]bool{}
			for i := 0; i < 13; i++ {
				v, ok := b.Top(c)
				require.True(t, ok)
				assert.False(t, seen[v], "duplicate %d at %v", v, c)
				seen[v] = true
				stack := b.cells[c]
				b.cells[c] = stack[:len(stack)-1]
			}
		}
	}

	assert.Equal(t, Coord{}, b.Cursor())
	assert.Empty(t, b.Selected())
	require.GreaterOrEqual(t, len(rec.events), 2)
	assert.Equal(t, EventPopulated, rec.events[0].Kind)
	assert.Equal(t, EventMoved, rec.events[1].Kind)
	assert.Equal(t, Coord{}, rec.events[1].Cell)
}

func TestMove(t *testing.T) {
	t.Run("blocked at the edge", func(t *testing.T) {
		// Scenario C: moving west from the origin fails.
		b, rec := newTestBoard(t, standardScript())
		err := b.Move(West)
		assert.ErrorIs(t, err, ErrOutOfBounds)
		assert.Equal(t, Coord{}, b.Cursor())
		assert.Equal(t, []EventKind{EventBlocked}, rec.kinds())
	})

	t.Run("moved carries the top value", func(t *testing.T) {
		b, rec := newTestBoard(t, standardScript())
		require.NoError(t, b.Move(East))
		assert.Equal(t, Coord{X: 1}, b.Cursor())
		ev := rec.last()
		assert.Equal(t, EventMoved, ev.Kind)
		assert.Equal(t, CellNumber, ev.State)
		assert.Equal(t, 7, ev.Top)
	})

	t.Run("moved onto a selected cell", func(t *testing.T) {
		b, rec := newTestBoard(t, standardScript())
		require.NoError(t, b.Select())
		require.NoError(t, b.Move(East))
		require.NoError(t, b.Move(West))
		assert.Equal(t, CellSelected, rec.last().State)
	})

	t.Run("cursor stays in bounds", func(t *testing.T) {
		b, _ := newTestBoard(t, standardScript())
		dirs := []Direction{West, West, South, North, North, North, East, East, East, South}
		for _, d := range dirs {
			_ = b.Move(d)
			c := b.Cursor()
			assert.GreaterOrEqual(t, c.X, 0)
			assert.Less(t, c.X, b.Size())
			assert.GreaterOrEqual(t, c.Y, 0)
			assert.Less(t, c.Y, b.Size())
		}
	})
}

func TestSelect_WinAtTarget(t *testing.T) {
	// Scenario A: 6 at (0,0) plus 7 at (1,0) is exactly 13.
	b, rec := newTestBoard(t, standardScript())

	require.NoError(t, b.Select())
	assert.Equal(t, EventProgress, rec.last().Kind)
	assert.Equal(t, 6, rec.last().Sum)

	require.NoError(t, b.Move(East))
	require.NoError(t, b.Select())

	assert.Equal(t, []EventKind{EventProgress, EventMoved, EventWin, EventRoundContinues}, rec.kinds())
	assert.Empty(t, b.Selected())

	// Win shrinks: both stacks popped exactly once, lower values exposed.
	top, ok := b.Top(Coord{X: 0, Y: 0})
	require.True(t, ok)
	assert.Equal(t, 1, top)
	top, ok = b.Top(Coord{X: 1, Y: 0})
	require.True(t, ok)
	assert.Equal(t, 2, top)
	assert.Equal(t, 2, b.StackLen(Coord{X: 0, Y: 1}))
}

func TestSelect_LoseOnOvershoot(t *testing.T) {
	// Scenario B: 6 at (0,0) plus 8 at (1,1) overshoots to 14. Penalty
	// values 9 and 11 land on the two selected stacks.
	b, rec := newTestBoard(t, standardScript(9, 11))

	require.NoError(t, b.Select())
	require.NoError(t, b.Move(East))
	require.NoError(t, b.Move(North))
	require.NoError(t, b.Select())

	assert.Equal(t, EventLose, rec.last().Kind)
	assert.Equal(t, 14, rec.last().Sum)
	assert.Empty(t, b.Selected())

	// Lose grows: both stacks gained one value, in selection order.
	assert.Equal(t, 3, b.StackLen(Coord{X: 0, Y: 0}))
	assert.Equal(t, 3, b.StackLen(Coord{X: 1, Y: 1}))
	top, _ := b.Top(Coord{X: 0, Y: 0})
	assert.Equal(t, 9, top)
	top, _ = b.Top(Coord{X: 1, Y: 1})
	assert.Equal(t, 11, top)
	assert.Equal(t, 2, b.StackLen(Coord{X: 1, Y: 0}))
}

func TestSelect_AlreadySelected(t *testing.T) {
	b, rec := newTestBoard(t, standardScript())
	require.NoError(t, b.Select())
	err := b.Select()
	assert.ErrorIs(t, err, ErrAlreadySelected)
	assert.Equal(t, EventReject, rec.last().Kind)
	assert.Len(t, b.Selected(), 1)
}

func TestSelect_EmptyCell(t *testing.T) {
	// A one-deep grid: winning on a single cell empties it, which opens
	// the wildcard branches.
	oneDeep := func(ints ...int) *rng.Script {
		return &rng.Script{
			Perms: [][]int{{13}, {7}, {5}, {8}},
			Ints:  ints,
		}
	}

	t.Run("seed with nothing selected", func(t *testing.T) {
		// Scenario D: the emptied cell gets a fresh value; the selection
		// stays empty and the cell can then be selected normally.
		b, rec := newTestBoard(t, oneDeep(4))
		require.NoError(t, b.Select()) // 13 on its own wins and empties (0,0)
		rec.reset()

		require.NoError(t, b.Select())
		assert.Equal(t, []EventKind{EventRevealed}, rec.kinds())
		assert.Equal(t, 4, rec.last().Top)
		assert.Empty(t, b.Selected())
		assert.Equal(t, 1, b.StackLen(Coord{}))

		require.NoError(t, b.Select())
		assert.Equal(t, EventProgress, rec.last().Kind)
		assert.Equal(t, 4, rec.last().Sum)
	})

	t.Run("reroll with one selected", func(t *testing.T) {
		// Scenario E: the single selected cell's top value is replaced in
		// place; no stack grows or shrinks.
		b, rec := newTestBoard(t, oneDeep(9))
		require.NoError(t, b.Select())
		require.NoError(t, b.Move(East))
		require.NoError(t, b.Select()) // 7 selected at (1,0)
		require.NoError(t, b.Move(West))
		rec.reset()

		require.NoError(t, b.Select())
		assert.Equal(t, []EventKind{EventRerolled}, rec.kinds())
		assert.Equal(t, Coord{X: 1}, rec.last().Cell)
		assert.Equal(t, 9, rec.last().Top)
		assert.Empty(t, b.Selected())
		assert.Equal(t, 1, b.StackLen(Coord{X: 1}))
		top, _ := b.Top(Coord{X: 1})
		assert.Equal(t, 9, top)
		assert.Equal(t, 0, b.StackLen(Coord{}))
	})
}

func TestSelect_ImplicitWin(t *testing.T) {
	// Two cells selected (3 + 5), then the empty cell triggers the win
	// without being added to the selection.
	script := &rng.Script{
		Perms: [][]int{{13}, {3}, {5}, {8}},
	}
	b, rec := newTestBoard(t, script)
	require.NoError(t, b.Select()) // 13 wins, empties (0,0)
	require.NoError(t, b.Move(East))
	require.NoError(t, b.Select()) // 3
	require.NoError(t, b.Move(North))
	require.NoError(t, b.Move(West))
	require.NoError(t, b.Select()) // 5, sum 8
	require.NoError(t, b.Move(South))
	rec.reset()

	require.NoError(t, b.Select())
	assert.Equal(t, []EventKind{EventWin, EventRoundContinues}, rec.kinds())
	assert.Equal(t, 8, rec.events[0].Sum)
	assert.Empty(t, b.Selected())
	assert.Equal(t, 0, b.StackLen(Coord{X: 1}))
	assert.Equal(t, 0, b.StackLen(Coord{X: 0, Y: 1}))
	assert.Equal(t, 0, b.StackLen(Coord{}), "the empty trigger cell is untouched")
	assert.Equal(t, 1, b.StackLen(Coord{X: 1, Y: 1}))
}

func TestGameWon_OnFullClear(t *testing.T) {
	// target 1 gives single-value stacks; four solo wins clear the grid.
	rec := &recorder{}
	b, err := New(2, 1, &rng.Script{Perms: [][]int{{1}, {1}, {1}, {1}}}, rec)
	require.NoError(t, err)

	steps := []Action{
		ActionSelect,
		ActionMoveEast, ActionSelect,
		ActionMoveNorth, ActionSelect,
		ActionMoveWest, ActionSelect,
	}
	for _, a := range steps {
		rec.reset()
		require.NoError(t, b.HandleInput(a))
	}

	assert.Equal(t, []EventKind{EventWin, EventGameWon}, rec.kinds())
	assert.True(t, b.Cleared())
}

func TestDeselectAll(t *testing.T) {
	b, rec := newTestBoard(t, standardScript())

	err := b.DeselectAll()
	assert.ErrorIs(t, err, ErrNothingSelected)
	assert.Empty(t, rec.kinds())

	require.NoError(t, b.Select())
	rec.reset()
	require.NoError(t, b.DeselectAll())
	assert.Equal(t, []EventKind{EventDeselected}, rec.kinds())
	assert.Empty(t, b.Selected())
	assert.Equal(t, 2, b.StackLen(Coord{}), "deselect touches no stack")
}

func TestHandleInput(t *testing.T) {
	b, rec := newTestBoard(t, standardScript())

	t.Run("moves", func(t *testing.T) {
		require.NoError(t, b.HandleInput(ActionMoveEast))
		assert.Equal(t, Coord{X: 1}, b.Cursor())
		require.NoError(t, b.HandleInput(ActionMoveWest))
		assert.Equal(t, Coord{}, b.Cursor())
	})

	t.Run("depth query", func(t *testing.T) {
		rec.reset()
		require.NoError(t, b.HandleInput(ActionQueryDepth))
		assert.Equal(t, []EventKind{EventDepth}, rec.kinds())
		assert.Equal(t, 2, rec.last().Depth)
	})

	t.Run("unknown action", func(t *testing.T) {
		err := b.HandleInput(Action(99))
		assert.Error(t, err)
	})
}

func TestCurrentDepth_EmptyCell(t *testing.T) {
	b, _ := newTestBoard(t, &rng.Script{
		Perms: [][]int{{13}, {7}, {5}, {8}},
	})
	assert.Equal(t, 1, b.CurrentDepth())
	require.NoError(t, b.Select())
	assert.Equal(t, 0, b.CurrentDepth())
}

func TestSelected_ReturnsCopy(t *testing.T) {
	b, _ := newTestBoard(t, standardScript())
	require.NoError(t, b.Select())
	sel := b.Selected()
	sel[0] = Coord{X: 9, Y: 9}
	assert.Equal(t, []Coord{{}}, b.Selected())
}
