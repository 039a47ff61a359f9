package sink

import (
	"image/color"
	"strconv"

	"github.com/fogleman/gg"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/render/styles"
)

var (
	background = color.White
	inkColor   = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

type raster struct {
	cell      int
	wireframe bool
	dots      bool
}

func (r *raster) setStyle(s styles.Style) {
	r.wireframe = s != nil && s.Name() == styles.NameWireframe
}

func (r *raster) canvas(width, height int) *gg.Context {
	if r.cell <= 0 {
		r.cell = DefaultCellSize
	}
	dc := gg.NewContext(width*r.cell, height*r.cell)
	dc.SetColor(background)
	dc.Clear()
	return dc
}

func (r *raster) drawRect(dc *gg.Context, rect grid.Rect, fill colorful.Color) {
	c := float64(r.cell)
	x, y := float64(rect.X)*c, float64(rect.Y)*c
	w, h := float64(rect.W)*c, float64(rect.H)*c

	if !r.wireframe {
		dc.DrawRectangle(x, y, w, h)
		dc.SetColor(fill)
		dc.Fill()
		return
	}

	dc.DrawRectangle(x+0.5, y+0.5, w-1, h-1)
	dc.SetColor(background)
	dc.FillPreserve()
	dc.SetColor(inkColor)
	dc.SetLineWidth(1)
	dc.Stroke()
	if w >= 24 && h >= 24 {
		dc.DrawStringAnchored(strconv.Itoa(rect.ID), x+w/2, y+h/2, 0.5, 0.5)
	}
}

func (r *raster) drawDots(dc *gg.Context, width, height int) {
	dc.SetColor(color.Black)
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			dc.DrawRectangle(float64(x*r.cell), float64(y*r.cell), dotSize, dotSize)
		}
	}
	dc.Fill()
}
