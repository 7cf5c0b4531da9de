package gridpath

import (
	"fmt"

	"github.com/pdrpinto/gridpath/internal"
)

// Coord is a cell position on the grid.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d)", c.Row, c.Col) }

func (c Coord) add(d Coord) Coord { return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col} }

// directions in expansion order: +col, +row, -col, -row.
var directions = [4]Coord{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Bounds are the dimensions of a grid.
type Bounds struct {
	Rows int
	Cols int
}

// Contains reports whether c lies on the grid.
func (b Bounds) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < b.Rows && c.Col >= 0 && c.Col < b.Cols
}

func (b Bounds) validate() error {
	if b.Rows <= 0 || b.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidBounds, b.Rows, b.Cols)
	}
	return nil
}

func (b Bounds) check(name string, c Coord) error {
	if !b.Contains(c) {
		return fmt.Errorf("%w: %s %v outside %dx%d grid", ErrInvalidCoordinate, name, c, b.Rows, b.Cols)
	}
	return nil
}

// Manhattan returns |Δrow| + |Δcol|.
func Manhattan(a, b Coord) int {
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// CheckPath verifies that path is a walk of single orthogonal steps starting
// next to start, stays on the grid and never revisits a cell.
func (b Bounds) CheckPath(start Coord, path []Coord) error {
	adjacent := func(from, to Coord) bool { return Manhattan(from, to) == 1 }
	if err := internal.CheckPath(start, path, b.Contains, adjacent); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	return nil
}
