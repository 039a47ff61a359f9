package tiling

import (
	"fmt"

	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/rng"
)

// Planner proposes rectangles for a session. Implementations keep a pool
// of starting points derived from the grid; the grid stays the source of
// truth and pool entries may be stale until the next Committed call.
type Planner interface {
	// Init binds the planner to the session's grid and random source.
	Init(g *grid.Grid, r *rng.Source)
	// Next returns the next starting point, or false when none remain.
	Next() (grid.Point, bool)
	// Plan computes an uncommitted rectangle for a starting point.
	Plan(seed grid.Point) Candidate
	// Committed is called after the session commits a rectangle.
	Committed(r grid.Rect)
}

// Box is a free region of the grid in cell coordinates.
type Box struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"width"`
	H int `json:"height"`
}

// Area returns W*H.
func (b Box) Area() int { return b.W * b.H }

// Candidate is a planned rectangle that has not been committed.
type Candidate struct {
	Seed      grid.Point
	X, Y      int
	W, H      int
	Available Box
	// Clamped is set when the available space was smaller than the minimum
	// block size and the planner wants that reported.
	Clamped bool
}

// Diagnostic describes a non-fatal degenerate step.
type Diagnostic struct {
	Step      int
	Seed      grid.Point
	Available Box
	MinBlock  int
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("available space %dx%d at (%d,%d) is below min block size %d",
		d.Available.W, d.Available.H, d.Seed.X, d.Seed.Y, d.MinBlock)
}

// NewPlanner returns the planner for a strategy.
func NewPlanner(s Strategy, minBlock, maxBlock int) (Planner, error) {
	switch s {
	case "", StrategyGrowth:
		return NewGrowthPlanner(minBlock, maxBlock), nil
	case StrategyTopLeft:
		return NewTopLeftPlanner(minBlock, maxBlock), nil
	}
	_, err := ParseStrategy(string(s))
	return nil, err
}

func sampleSize(r *rng.Source, avail, minBlock, maxBlock int) int {
	return r.RangeInt(min(avail, minBlock), min(avail, maxBlock))
}
