// Package palette assigns colours to rectangles.
//
// Every rectangle gets a random hue at fixed saturation and lightness.
// Hues come from a random stream derived from the tiling seed, so colours
// are reproducible without consuming values from the generator's own
// stream.
package palette

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/blockfill/pkg/rng"
)

const (
	Saturation = 0.40
	Lightness  = 0.55
)

// Palette yields one colour per call to Next.
type Palette struct {
	src *rng.Source
}

// New returns the palette for a tiling seed.
func New(seed int64) *Palette {
	return &Palette{src: rng.New(rng.Derive(seed, "palette"))}
}

// Next returns the colour of the next rectangle.
func (p *Palette) Next() colorful.Color {
	return HSL(p.src.RangeInt(0, 360))
}

// HSL returns the block colour for a hue in degrees.
func HSL(hue int) colorful.Color {
	return colorful.Hsl(float64(hue), Saturation, Lightness)
}

// Colors returns n colours as lowercase "#rrggbb" strings, in rectangle
// id order.
func Colors(seed int64, n int) []string {
	p := New(seed)
	out := make([]string, n)
	for i := range out {
		out[i] = p.Next().Hex()
	}
	return out
}
