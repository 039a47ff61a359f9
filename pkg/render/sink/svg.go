package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/blockfill/pkg/render/palette"
	"github.com/matzehuels/blockfill/pkg/render/styles"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style styles.Style
	cell  int
	dots  bool
	limit int
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithCellSize(px int) SVGOption      { return func(r *svgRenderer) { r.cell = px } }
func WithGridDots() SVGOption            { return func(r *svgRenderer) { r.dots = true } }

// WithLimit renders only the first n rectangles.
func WithLimit(n int) SVGOption { return func(r *svgRenderer) { r.limit = n } }

// RenderSVG draws the tiling on a white background, one <rect> per block.
func RenderSVG(t *tiling.Tiling, opts ...SVGOption) []byte {
	r := svgRenderer{style: styles.Simple{}, cell: DefaultCellSize}
	for _, opt := range opts {
		opt(&r)
	}
	if r.cell <= 0 {
		r.cell = DefaultCellSize
	}

	w, h := t.Width*r.cell, t.Height*r.cell
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n", w, h, w, h)
	buf.WriteString("  <defs>\n")
	r.style.RenderDefs(&buf)
	buf.WriteString("  </defs>\n")
	buf.WriteString(`  <rect width="100%" height="100%" fill="#ffffff"/>` + "\n")

	for _, b := range buildBlocks(t, r.cell, r.limit) {
		r.style.RenderBlock(&buf, b)
	}
	if r.dots {
		renderDots(&buf, t.Width, t.Height, r.cell)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func buildBlocks(t *tiling.Tiling, cell, limit int) []styles.Block {
	rects := t.Rects
	if limit > 0 && limit < len(rects) {
		rects = rects[:limit]
	}
	colors := palette.Colors(t.Seed, len(rects))
	c := float64(cell)
	blocks := make([]styles.Block, len(rects))
	for i, r := range rects {
		blocks[i] = styles.Block{
			ID: r.ID,
			X:  float64(r.X) * c, Y: float64(r.Y) * c,
			W: float64(r.W) * c, H: float64(r.H) * c,
			Fill: colors[i],
		}
	}
	return blocks
}

func renderDots(buf *bytes.Buffer, width, height, cell int) {
	buf.WriteString(`  <g class="grid-dots" fill="#000000">` + "\n")
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			fmt.Fprintf(buf, `    <rect x="%d" y="%d" width="%d" height="%d"/>`+"\n", x*cell, y*cell, dotSize, dotSize)
		}
	}
	buf.WriteString("  </g>\n")
}
