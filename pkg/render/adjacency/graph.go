package adjacency

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// Edge joins two adjacent blocks. From is always the smaller id.
type Edge struct {
	From, To int
	// Shared is the length of the common border in cells.
	Shared int
}

// Graph is the undirected adjacency graph of a tiling.
type Graph struct {
	Width, Height int
	Seed          int64
	Nodes         []grid.Rect
	Edges         []Edge
}

// Build replays t and collects every pair of blocks that share a border.
func Build(t *tiling.Tiling) (*Graph, error) {
	g, err := t.Replay()
	if err != nil {
		return nil, fmt.Errorf("replay tiling: %w", err)
	}

	shared := make(map[[2]int]int)
	link := func(a, b int) {
		if a == b {
			return
		}
		if a > b {
			a, b = b, a
		}
		shared[[2]int{a, b}]++
	}
	for x := 0; x < g.Width(); x++ {
		for y := 0; y < g.Height(); y++ {
			id, ok := g.Owner(x, y)
			if !ok {
				continue
			}
			if right, ok := g.Owner(x+1, y); ok {
				link(id, right)
			}
			if below, ok := g.Owner(x, y+1); ok {
				link(id, below)
			}
		}
	}

	edges := make([]Edge, 0, len(shared))
	for k, n := range shared {
		edges = append(edges, Edge{From: k[0], To: k[1], Shared: n})
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		return cmp.Or(cmp.Compare(a.From, b.From), cmp.Compare(a.To, b.To))
	})

	return &Graph{
		Width:  t.Width,
		Height: t.Height,
		Seed:   t.Seed,
		Nodes:  g.Rects(),
		Edges:  edges,
	}, nil
}

// Degrees returns the number of neighbours of each block, indexed by id.
func (g *Graph) Degrees() []int {
	deg := make([]int, len(g.Nodes))
	for _, e := range g.Edges {
		deg[e.From]++
		deg[e.To]++
	}
	return deg
}

// Neighbors returns the ids adjacent to id in ascending order.
func (g *Graph) Neighbors(id int) []int {
	var out []int
	for _, e := range g.Edges {
		switch id {
		case e.From:
			out = append(out, e.To)
		case e.To:
			out = append(out, e.From)
		}
	}
	slices.Sort(out)
	return out
}
