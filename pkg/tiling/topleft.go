package tiling

import (
	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/rng"
)

// TopLeftPlanner grows blocks from a frontier of rectangle corners, always
// taking the corner with the smallest x and then the smallest y.
//
// Because selection only moves right, block shapes drift from left to right
// when maxBlock is large. That is a property of the strategy.
type TopLeftPlanner struct {
	minBlock int
	maxBlock int

	grid     *grid.Grid
	rng      *rng.Source
	frontier []grid.Point
}

// NewTopLeftPlanner returns a frontier planner.
func NewTopLeftPlanner(minBlock, maxBlock int) *TopLeftPlanner {
	return &TopLeftPlanner{minBlock: minBlock, maxBlock: maxBlock}
}

func (p *TopLeftPlanner) Init(g *grid.Grid, r *rng.Source) {
	p.grid, p.rng = g, r
	p.frontier = []grid.Point{{X: 0, Y: 0}}
}

// Next returns the left-most, then top-most, frontier point.
func (p *TopLeftPlanner) Next() (grid.Point, bool) {
	if len(p.frontier) == 0 {
		return grid.Point{}, false
	}
	best := p.frontier[0]
	for _, pt := range p.frontier[1:] {
		if pt.X < best.X || (pt.X == best.X && pt.Y < best.Y) {
			best = pt
		}
	}
	return best, true
}

// Plan sizes a block at seed. Width is bounded by the right edge of the
// grid; height by the first assigned cell below seed in its own column.
func (p *TopLeftPlanner) Plan(seed grid.Point) Candidate {
	box := Box{
		X: seed.X,
		Y: seed.Y,
		W: p.grid.Width() - seed.X,
		H: 1 + Scan(p.grid, AxisY, Forward, seed.Y, seed.X, seed.X, p.grid.Height()),
	}
	w := sampleSize(p.rng, box.W, p.minBlock, p.maxBlock)
	h := sampleSize(p.rng, box.H, p.minBlock, p.maxBlock)
	return Candidate{
		Seed:      seed,
		X:         seed.X,
		Y:         seed.Y,
		W:         w,
		H:         h,
		Available: box,
		Clamped:   box.W < p.minBlock || box.H < p.minBlock,
	}
}

// Committed adds the three new corners of r and drops frontier points that
// sit on the far edges of the grid or on assigned cells.
func (p *TopLeftPlanner) Committed(r grid.Rect) {
	p.frontier = append(p.frontier,
		grid.Point{X: r.Right(), Y: r.Y},
		grid.Point{X: r.X, Y: r.Bottom()},
		grid.Point{X: r.Right(), Y: r.Bottom()},
	)
	kept := p.frontier[:0]
	for _, pt := range p.frontier {
		if pt.X >= p.grid.Width() || pt.Y >= p.grid.Height() {
			continue
		}
		if !p.grid.Free(pt.X, pt.Y) {
			continue
		}
		kept = append(kept, pt)
	}
	p.frontier = kept
}

// Frontier returns a copy of the current frontier.
func (p *TopLeftPlanner) Frontier() []grid.Point {
	out := make([]grid.Point, len(p.frontier))
	copy(out, p.frontier)
	return out
}
