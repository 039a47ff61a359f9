// Package render turns tilings into images and diagrams.
//
// Renderers consume a finished [tiling.Tiling] (or a prefix of one while a
// session is still running) and never touch the generator itself.
//
//   - [palette]: deterministic per-rectangle colours derived from the seed
//   - [styles]: SVG block styles (simple, wireframe)
//   - [sink]: output formats (SVG, PNG, animated GIF, JSON)
//   - [adjacency]: the block adjacency graph as DOT or Graphviz SVG
//
//	svg := sink.RenderSVG(t, sink.WithCellSize(10), sink.WithGridDots())
//	png, err := sink.RenderPNG(t)
//	gif, err := sink.RenderGIF(t, sink.WithFrameStride(5))
//
// [tiling.Tiling]: github.com/matzehuels/blockfill/pkg/tiling.Tiling
// [palette]: github.com/matzehuels/blockfill/pkg/render/palette
// [styles]: github.com/matzehuels/blockfill/pkg/render/styles
// [sink]: github.com/matzehuels/blockfill/pkg/render/sink
// [adjacency]: github.com/matzehuels/blockfill/pkg/render/adjacency
package render
