package sink

import (
	"bytes"

	"github.com/matzehuels/blockfill/pkg/render/palette"
	"github.com/matzehuels/blockfill/pkg/render/styles"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// PNGOption configures PNG rendering.
type PNGOption func(*raster)

func WithPNGCellSize(px int) PNGOption      { return func(r *raster) { r.cell = px } }
func WithPNGStyle(s styles.Style) PNGOption { return func(r *raster) { r.setStyle(s) } }
func WithPNGGridDots() PNGOption            { return func(r *raster) { r.dots = true } }

// RenderPNG rasterizes the tiling.
func RenderPNG(t *tiling.Tiling, opts ...PNGOption) ([]byte, error) {
	r := raster{cell: DefaultCellSize}
	for _, opt := range opts {
		opt(&r)
	}

	dc := r.canvas(t.Width, t.Height)
	p := palette.New(t.Seed)
	for _, rect := range t.Rects {
		r.drawRect(dc, rect, p.Next())
	}
	if r.dots {
		r.drawDots(dc, t.Width, t.Height)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
