package tiling

import (
	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/rng"
)

// GrowthPlanner grows a block around each seed cell. Seeds come from a pool
// holding every cell of the grid, shuffled once in Init.
type GrowthPlanner struct {
	minBlock int
	maxBlock int

	grid *grid.Grid
	rng  *rng.Source
	pool []grid.Point
}

// NewGrowthPlanner returns a planner for blocks between minBlock and
// maxBlock cells on each side.
func NewGrowthPlanner(minBlock, maxBlock int) *GrowthPlanner {
	return &GrowthPlanner{minBlock: minBlock, maxBlock: maxBlock}
}

func (p *GrowthPlanner) Init(g *grid.Grid, r *rng.Source) {
	p.grid, p.rng = g, r
	p.pool = make([]grid.Point, 0, g.Cells())
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			p.pool = append(p.pool, grid.Point{X: x, Y: y})
		}
	}
	r.Shuffle(len(p.pool), func(i, j int) { p.pool[i], p.pool[j] = p.pool[j], p.pool[i] })
	p.prune()
}

// Next returns the first pool cell that is still unassigned.
func (p *GrowthPlanner) Next() (grid.Point, bool) {
	p.prune()
	if len(p.pool) == 0 {
		return grid.Point{}, false
	}
	return p.pool[0], true
}

func (p *GrowthPlanner) Plan(seed grid.Point) Candidate {
	return p.Grow(seed)
}

// Committed drops assigned cells from the head of the pool. Assigned cells
// further back are skipped when they reach the head.
func (p *GrowthPlanner) Committed(grid.Rect) {
	p.prune()
}

// Remaining returns an upper bound on the number of seeds left.
func (p *GrowthPlanner) Remaining() int { return len(p.pool) }

func (p *GrowthPlanner) prune() {
	i := 0
	for i < len(p.pool) && !p.grid.Free(p.pool[i].X, p.pool[i].Y) {
		i++
	}
	p.pool = p.pool[i:]
}

// Grow plans a block for seed. Width is sampled before height, and the
// block is centred in the free box returned by Available, so it always
// lies inside that box but need not cover seed itself.
func (p *GrowthPlanner) Grow(seed grid.Point) Candidate {
	box := p.Available(seed)
	w := sampleSize(p.rng, box.W, p.minBlock, p.maxBlock)
	h := sampleSize(p.rng, box.H, p.minBlock, p.maxBlock)
	return Candidate{
		Seed:      seed,
		X:         box.X + box.W/2 - w/2,
		Y:         box.Y + box.H/2 - h/2,
		W:         w,
		H:         h,
		Available: box,
	}
}

// Available returns the larger of the two free boxes around seed. The
// vertical-first box wins ties.
func (p *GrowthPlanner) Available(seed grid.Point) Box {
	a, b := p.verticalFirst(seed), p.horizontalFirst(seed)
	if b.Area() > a.Area() {
		return b
	}
	return a
}

func (p *GrowthPlanner) verticalFirst(s grid.Point) Box {
	up := Scan(p.grid, AxisY, Backward, s.Y, s.X, s.X, p.maxBlock)
	down := Scan(p.grid, AxisY, Forward, s.Y, s.X, s.X, p.maxBlock)
	left := Scan(p.grid, AxisX, Backward, s.X, s.Y-up, s.Y+down, p.maxBlock)
	right := Scan(p.grid, AxisX, Forward, s.X, s.Y-up, s.Y+down, p.maxBlock)
	return Box{X: s.X - left, Y: s.Y - up, W: left + 1 + right, H: up + 1 + down}
}

func (p *GrowthPlanner) horizontalFirst(s grid.Point) Box {
	left := Scan(p.grid, AxisX, Backward, s.X, s.Y, s.Y, p.maxBlock)
	right := Scan(p.grid, AxisX, Forward, s.X, s.Y, s.Y, p.maxBlock)
	up := Scan(p.grid, AxisY, Backward, s.Y, s.X-left, s.X+right, p.maxBlock)
	down := Scan(p.grid, AxisY, Forward, s.Y, s.X-left, s.X+right, p.maxBlock)
	return Box{X: s.X - left, Y: s.Y - up, W: left + 1 + right, H: up + 1 + down}
}
