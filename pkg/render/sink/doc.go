// Package sink writes tilings to output formats.
//
// Each format has its own option type, following the functional options
// pattern:
//
//	svg := sink.RenderSVG(t, sink.WithStyle(styles.Wireframe{}), sink.WithGridDots())
//	png, err := sink.RenderPNG(t, sink.WithPNGCellSize(4))
//	gif, err := sink.RenderGIF(t, sink.WithFrameStride(10))
//	data, err := sink.RenderJSON(t)
//
// Block colours always come from [palette.Colors] for the tiling seed, so
// every format shows the same colour for the same rectangle.
//
// [palette.Colors]: github.com/matzehuels/blockfill/pkg/render/palette.Colors
package sink

// DefaultCellSize is the side of one grid cell in pixels.
const DefaultCellSize = 10

// dotSize is the side of a debug grid dot in pixels.
const dotSize = 3
