package sink

import (
	"encoding/json"

	"github.com/matzehuels/blockfill/pkg/render/palette"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	cell   int
	style  string
	colors bool
}

// WithJSONCellSize records pixel geometry next to cell geometry.
func WithJSONCellSize(px int) JSONOption { return func(r *jsonRenderer) { r.cell = px } }

// WithJSONStyle records the style name for round-trip rendering.
func WithJSONStyle(s string) JSONOption { return func(r *jsonRenderer) { r.style = s } }

// WithJSONColors adds each block's palette colour.
func WithJSONColors() JSONOption { return func(r *jsonRenderer) { r.colors = true } }

type jsonOutput struct {
	Width    int         `json:"width"`
	Height   int         `json:"height"`
	CellSize int         `json:"cell_size,omitempty"`
	Style    string      `json:"style,omitempty"`
	Seed     int64       `json:"seed"`
	Strategy string      `json:"strategy"`
	Reason   string      `json:"reason"`
	Steps    int         `json:"steps"`
	Coverage float64     `json:"coverage"`
	Blocks   []jsonBlock `json:"blocks"`
}

type jsonBlock struct {
	ID     int    `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Color  string `json:"color,omitempty"`
}

// RenderJSON writes a presentation-oriented JSON document: grid geometry,
// run outcome, and blocks with optional colours.
func RenderJSON(t *tiling.Tiling, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:    t.Width,
		Height:   t.Height,
		CellSize: r.cell,
		Style:    r.style,
		Seed:     t.Seed,
		Strategy: string(t.Strategy),
		Reason:   string(t.Reason),
		Steps:    t.Steps,
		Coverage: t.Coverage(),
		Blocks:   make([]jsonBlock, len(t.Rects)),
	}
	var colors []string
	if r.colors {
		colors = palette.Colors(t.Seed, len(t.Rects))
	}
	for i, rect := range t.Rects {
		out.Blocks[i] = jsonBlock{ID: rect.ID, X: rect.X, Y: rect.Y, Width: rect.W, Height: rect.H}
		if colors != nil {
			out.Blocks[i].Color = colors[i]
		}
	}
	return json.MarshalIndent(out, "", "  ")
}
