package tiling

import (
	"testing"

	"github.com/matzehuels/blockfill/pkg/grid"
)

func mustGrid(t *testing.T, w, h int, rects ...grid.Rect) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range rects {
		if _, err := g.Commit(r.X, r.Y, r.W, r.H); err != nil {
			t.Fatalf("commit %v: %v", r, err)
		}
	}
	return g
}

func TestScan(t *testing.T) {
	tests := []struct {
		name               string
		blocked            []grid.Rect
		axis               Axis
		dir                Direction
		start, lo, hi, max int
		want               int
	}{
		{"open row to max", nil, AxisX, Forward, 0, 0, 0, 3, 3},
		{"open row to edge", nil, AxisX, Forward, 7, 0, 0, 10, 2},
		{"at left edge", nil, AxisX, Backward, 0, 4, 4, 5, 0},
		{"open column up", nil, AxisY, Backward, 9, 2, 2, 20, 9},
		{"zero extension", nil, AxisY, Forward, 0, 0, 0, 0, 0},
		{"blocked by neighbour", []grid.Rect{{X: 5, Y: 0, W: 1, H: 1}}, AxisX, Forward, 2, 0, 0, 10, 2},
		{"blocked adjacent", []grid.Rect{{X: 3, Y: 0, W: 1, H: 1}}, AxisX, Forward, 2, 0, 0, 10, 0},
		{"column blocked below", []grid.Rect{{X: 1, Y: 6, W: 3, H: 1}}, AxisY, Forward, 1, 2, 2, 10, 4},
		// The strip spans rows 1..3; only row 3 is blocked at x=3.
		{"cross span L gap", []grid.Rect{{X: 3, Y: 3, W: 1, H: 1}}, AxisX, Forward, 1, 1, 3, 10, 1},
		{"cross span clear on scanned row", []grid.Rect{{X: 3, Y: 3, W: 1, H: 1}}, AxisX, Forward, 1, 1, 1, 10, 8},
		{"cross span leaves grid", nil, AxisY, Forward, 0, 8, 10, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGrid(t, 10, 10, tt.blocked...)
			got := Scan(g, tt.axis, tt.dir, tt.start, tt.lo, tt.hi, tt.max)
			if got != tt.want {
				t.Errorf("Scan(%s, %d, start=%d, [%d,%d], max=%d) = %d, want %d",
					tt.axis, tt.dir, tt.start, tt.lo, tt.hi, tt.max, got, tt.want)
			}
		})
	}
}
