package board

import "fmt"

// Coord identifies one grid cell. Comparable; used as the cell map key.
type Coord struct {
	X int
	Y int
}

// String renders the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four cardinal movement directions.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// offset returns the coordinate one step from c in direction d. North is
// +Y, matching the original game's forward key.
func (c Coord) offset(d Direction) Coord {
	switch d {
	case North:
		return Coord{X: c.X, Y: c.Y + 1}
	case South:
		return Coord{X: c.X, Y: c.Y - 1}
	case East:
		return Coord{X: c.X + 1, Y: c.Y}
	case West:
		return Coord{X: c.X - 1, Y: c.Y}
	default:
		return c
	}
}
