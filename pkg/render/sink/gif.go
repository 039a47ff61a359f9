package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"

	"github.com/fogleman/gg"

	blockpalette "github.com/matzehuels/blockfill/pkg/render/palette"
	"github.com/matzehuels/blockfill/pkg/render/styles"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

const (
	// DefaultFrameDelay is the delay between frames in 1/100 s.
	DefaultFrameDelay = 4
	// DefaultMaxFrames bounds the frame count when no stride is set.
	DefaultMaxFrames = 200
	// finalFrameDelay holds the finished tiling before the animation loops.
	finalFrameDelay = 300
)

// GIFOption configures animated GIF rendering.
type GIFOption func(*gifRenderer)

type gifRenderer struct {
	raster
	stride    int
	delay     int
	maxFrames int
}

func WithGIFCellSize(px int) GIFOption      { return func(r *gifRenderer) { r.cell = px } }
func WithGIFStyle(s styles.Style) GIFOption { return func(r *gifRenderer) { r.setStyle(s) } }
func WithGIFGridDots() GIFOption            { return func(r *gifRenderer) { r.dots = true } }

// WithFrameStride captures a frame after every n placed rectangles.
func WithFrameStride(n int) GIFOption { return func(r *gifRenderer) { r.stride = n } }

// WithFrameDelay sets the delay between frames in 1/100 s.
func WithFrameDelay(cs int) GIFOption { return func(r *gifRenderer) { r.delay = cs } }

// WithMaxFrames picks a stride that keeps the animation under n frames.
// It is ignored when WithFrameStride is set.
func WithMaxFrames(n int) GIFOption { return func(r *gifRenderer) { r.maxFrames = n } }

// RenderGIF animates the tiling one rectangle (or stride) per frame,
// starting from an empty grid and ending on the finished tiling.
func RenderGIF(t *tiling.Tiling, opts ...GIFOption) ([]byte, error) {
	r := gifRenderer{
		raster:    raster{cell: DefaultCellSize},
		delay:     DefaultFrameDelay,
		maxFrames: DefaultMaxFrames,
	}
	for _, opt := range opts {
		opt(&r)
	}
	stride := r.frameStride(len(t.Rects))

	dc := r.canvas(t.Width, t.Height)
	colors := blockpalette.New(t.Seed)
	pal := framePalette(t)

	anim := &gif.GIF{}
	capture := func(delay int) {
		anim.Image = append(anim.Image, toPaletted(dc, pal))
		anim.Delay = append(anim.Delay, delay)
	}

	capture(r.delay)
	for i, rect := range t.Rects {
		r.drawRect(dc, rect, colors.Next())
		if (i+1)%stride == 0 && i+1 < len(t.Rects) {
			capture(r.delay)
		}
	}
	if r.dots {
		r.drawDots(dc, t.Width, t.Height)
	}
	capture(finalFrameDelay)

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *gifRenderer) frameStride(n int) int {
	if r.stride > 0 {
		return r.stride
	}
	if r.maxFrames > 2 && n > r.maxFrames-2 {
		return (n + r.maxFrames - 3) / (r.maxFrames - 2)
	}
	return 1
}

// framePalette holds the fixed colours plus the block colours. Tilings with
// more colours than a GIF palette allows fall back to Plan 9.
func framePalette(t *tiling.Tiling) color.Palette {
	pal := color.Palette{background, inkColor, color.Black}
	seen := make(map[color.RGBA]bool)
	p := blockpalette.New(t.Seed)
	for range t.Rects {
		r, g, b := p.Next().RGB255()
		c := color.RGBA{r, g, b, 0xff}
		if seen[c] {
			continue
		}
		seen[c] = true
		pal = append(pal, c)
		if len(pal) > 256 {
			return palette.Plan9
		}
	}
	return pal
}

func toPaletted(dc *gg.Context, pal color.Palette) *image.Paletted {
	src := dc.Image()
	dst := image.NewPaletted(src.Bounds(), pal)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
