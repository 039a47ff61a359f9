package sink

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/gif"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/blockfill/pkg/render/palette"
	"github.com/matzehuels/blockfill/pkg/render/styles"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

func sample(t *testing.T) *tiling.Tiling {
	t.Helper()
	s, err := tiling.NewSession(tiling.Config{Width: 12, Height: 8, MinBlock: 2, MaxBlock: 4, MaxSteps: 1000, Seed: 3})
	if err != nil {
		t.Fatal(err)
	}
	return s.Drain()
}

func TestRenderSVG(t *testing.T) {
	tl := sample(t)
	out := string(RenderSVG(tl, WithCellSize(5)))

	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 60 40" width="60" height="40">`) {
		t.Errorf("unexpected header: %.120s", out)
	}
	if got := strings.Count(out, `class="block"`); got != len(tl.Rects) {
		t.Errorf("block count = %d, want %d", got, len(tl.Rects))
	}
	colors := palette.Colors(tl.Seed, len(tl.Rects))
	if !strings.Contains(out, `fill="`+colors[0]+`"`) {
		t.Errorf("first block colour %s missing", colors[0])
	}
	if strings.Contains(out, "grid-dots") {
		t.Error("grid dots rendered without WithGridDots")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Error("missing closing tag")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	tl := sample(t)

	dots := string(RenderSVG(tl, WithGridDots()))
	if !strings.Contains(dots, "grid-dots") {
		t.Error("WithGridDots did not add dots")
	}
	// One dot per cell plus the background and the blocks.
	if got, want := strings.Count(dots, "<rect"), 12*8+1+len(tl.Rects); got != want {
		t.Errorf("<rect> count = %d, want %d", got, want)
	}

	limited := string(RenderSVG(tl, WithLimit(2)))
	if got := strings.Count(limited, `class="block"`); got != 2 {
		t.Errorf("WithLimit(2) rendered %d blocks", got)
	}

	wire := string(RenderSVG(tl, WithStyle(styles.Wireframe{})))
	if !strings.Contains(wire, "stroke: #333333") {
		t.Error("wireframe defs missing")
	}
}

func TestRenderPNG(t *testing.T) {
	tl := sample(t)
	data, err := RenderPNG(tl, WithPNGCellSize(4))
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Fatalf("size = %dx%d, want 48x32", b.Dx(), b.Dy())
	}

	r := tl.Rects[0]
	cx, cy := r.X*4+r.W*2, r.Y*4+r.H*2
	got := color.RGBAModel.Convert(img.At(cx, cy)).(color.RGBA)
	wr, wg, wb := palette.New(tl.Seed).Next().RGB255()
	if !near(got.R, wr) || !near(got.G, wg) || !near(got.B, wb) {
		t.Errorf("pixel at block 0 = %v, want ~(%d,%d,%d)", got, wr, wg, wb)
	}
}

func TestRenderGIF(t *testing.T) {
	tl := sample(t)
	n := len(tl.Rects)

	tests := []struct {
		name   string
		opts   []GIFOption
		frames int
	}{
		{"every rect", []GIFOption{WithFrameStride(1)}, n + 1},
		{"stride 3", []GIFOption{WithFrameStride(3)}, 2 + (n-1)/3},
		{"max frames", []GIFOption{WithMaxFrames(4)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderGIF(tl, append(tt.opts, WithGIFCellSize(3))...)
			if err != nil {
				t.Fatal(err)
			}
			g, err := gif.DecodeAll(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.frames > 0 && len(g.Image) != tt.frames {
				t.Errorf("frames = %d, want %d", len(g.Image), tt.frames)
			}
			if len(g.Image) > 4 && tt.frames == 0 {
				t.Errorf("frames = %d, want at most 4", len(g.Image))
			}
			if g.Config.Width != 36 || g.Config.Height != 24 {
				t.Errorf("size = %dx%d", g.Config.Width, g.Config.Height)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	tl := sample(t)
	data, err := RenderJSON(tl, WithJSONColors(), WithJSONCellSize(10), WithJSONStyle("simple"))
	if err != nil {
		t.Fatal(err)
	}
	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Width != 12 || out.Height != 8 || out.Reason != "exhausted" || out.Coverage != 1 {
		t.Errorf("header = %+v", out)
	}
	if len(out.Blocks) != len(tl.Rects) || out.Blocks[0].Color == "" {
		t.Errorf("blocks = %d, first colour %q", len(out.Blocks), out.Blocks[0].Color)
	}
}

func near(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -2 && d <= 2
}
