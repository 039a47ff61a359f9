// Package adjacency renders the neighbour graph of a tiling.
//
// Two blocks are adjacent when they share at least one cell edge. The graph
// is built by replaying the tiling onto a grid and comparing the owners of
// horizontally and vertically neighbouring cells, so corner contact does
// not count.
//
//	g, err := adjacency.Build(t)
//	dot := adjacency.ToDOT(g, adjacency.Options{Colors: true})
//	svg, err := adjacency.RenderSVG(dot)
//
// The DOT output uses neato with pinned node positions at block centres,
// so the rendered graph keeps the shape of the tiling.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package adjacency
