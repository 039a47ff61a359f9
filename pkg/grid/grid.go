// Package grid holds the cell-ownership map that tilings are built on.
//
// A Grid is a fixed width×height array of cells. Each cell is either
// unassigned or owned by exactly one rectangle. Commit is the only
// mutator: it assigns a whole rectangle at once or fails without touching
// the grid. Cells are never cleared or reassigned.
package grid

import (
	"github.com/matzehuels/blockfill/pkg/errors"
)

const unassigned = -1

// Grid is the ownership map. It is not safe for concurrent use.
type Grid struct {
	width, height int
	cells         []int32
	rects         []Rect
	assigned      int
}

// New returns an empty grid. Both dimensions must be positive.
func New(width, height int) (*Grid, error) {
	if err := errors.ValidateGridSize(width, height); err != nil {
		return nil, err
	}
	cells := make([]int32, width*height)
	for i := range cells {
		cells[i] = unassigned
	}
	return &Grid{width: width, height: height, cells: cells}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Cells returns width*height.
func (g *Grid) Cells() int { return len(g.cells) }

// InBounds reports whether (x, y) is a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Free reports whether (x, y) is in bounds and unassigned.
func (g *Grid) Free(x, y int) bool {
	return g.InBounds(x, y) && g.cells[y*g.width+x] == unassigned
}

// Owner returns the id of the rectangle covering (x, y).
func (g *Grid) Owner(x, y int) (int, bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	id := g.cells[y*g.width+x]
	if id == unassigned {
		return 0, false
	}
	return int(id), true
}

// Commit assigns the next id to every cell of the w×h rectangle at (x, y).
// It returns an OUT_OF_BOUNDS error if the rectangle leaves the grid and an
// OVERLAP error if any covered cell is already assigned. On error the grid
// is unchanged.
func (g *Grid) Commit(x, y, w, h int) (Rect, error) {
	if w < 1 || h < 1 {
		return Rect{}, errors.New(errors.ErrCodeOutOfBounds, "rectangle %dx%d at (%d,%d) is empty", w, h, x, y)
	}
	if x < 0 || y < 0 || w > g.width-x || h > g.height-y {
		return Rect{}, errors.New(errors.ErrCodeOutOfBounds,
			"rectangle %dx%d at (%d,%d) exceeds %dx%d grid", w, h, x, y, g.width, g.height)
	}
	for cy := y; cy < y+h; cy++ {
		row := cy * g.width
		for cx := x; cx < x+w; cx++ {
			if owner := g.cells[row+cx]; owner != unassigned {
				return Rect{}, errors.New(errors.ErrCodeOverlap,
					"cell (%d,%d) already owned by rectangle %d", cx, cy, owner)
			}
		}
	}

	r := Rect{ID: len(g.rects), X: x, Y: y, W: w, H: h}
	id := int32(r.ID)
	for cy := y; cy < y+h; cy++ {
		row := cy * g.width
		for cx := x; cx < x+w; cx++ {
			g.cells[row+cx] = id
		}
	}
	g.rects = append(g.rects, r)
	g.assigned += r.Area()
	return r, nil
}

// Assigned returns the number of assigned cells.
func (g *Grid) Assigned() int { return g.assigned }

// Full reports whether every cell is assigned.
func (g *Grid) Full() bool { return g.assigned == len(g.cells) }

// Rects returns the committed rectangles in commit order.
func (g *Grid) Rects() []Rect {
	out := make([]Rect, len(g.rects))
	copy(out, g.rects)
	return out
}
