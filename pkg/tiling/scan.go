package tiling

import "github.com/matzehuels/blockfill/pkg/grid"

// Axis is the coordinate a scan advances along.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Direction is the step applied to the scanned coordinate.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// Scan counts how many whole lines a rectangle can extend from start along
// axis in dir. A line at coordinate v is the set of cells whose axis
// coordinate is v and whose cross coordinate lies in [crossMin, crossMax].
// Extension stops before the first line containing a cell that is out of
// bounds or assigned, or once maxExtension lines have been added.
//
// Every cell of the cross span is checked, so an L-shaped gap next to the
// strip is never reported as free.
func Scan(g *grid.Grid, axis Axis, dir Direction, start, crossMin, crossMax, maxExtension int) int {
	n := 0
	for n < maxExtension {
		if !lineFree(g, axis, start+int(dir)*(n+1), crossMin, crossMax) {
			break
		}
		n++
	}
	return n
}

func lineFree(g *grid.Grid, axis Axis, at, crossMin, crossMax int) bool {
	for c := crossMin; c <= crossMax; c++ {
		x, y := at, c
		if axis == AxisY {
			x, y = c, at
		}
		if !g.Free(x, y) {
			return false
		}
	}
	return true
}
