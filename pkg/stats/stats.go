// Package stats summarizes the block sizes of a tiling.
//
// [Summarize] computes descriptive statistics with gonum/stat and
// [Histogram] draws an area histogram with gonum/plot.
package stats

import (
	"bytes"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// Summary describes the block sizes of a tiling.
type Summary struct {
	Count    int     `json:"count"`
	Coverage float64 `json:"coverage"`

	MeanArea   float64 `json:"mean_area"`
	StdDevArea float64 `json:"stddev_area"`
	MedianArea float64 `json:"median_area"`
	MinArea    float64 `json:"min_area"`
	MaxArea    float64 `json:"max_area"`

	// MeanAspect is the mean of max(w,h)/min(w,h); 1 means square.
	MeanAspect float64 `json:"mean_aspect"`
	// Undersized counts blocks with a side shorter than MinBlock.
	Undersized int `json:"undersized"`
}

// Summarize computes a Summary. A tiling without rectangles yields a zero
// summary apart from Coverage.
func Summarize(t *tiling.Tiling) Summary {
	s := Summary{Count: len(t.Rects), Coverage: t.Coverage()}
	if s.Count == 0 {
		return s
	}

	areas := Areas(t)
	aspects := make([]float64, len(t.Rects))
	for i, r := range t.Rects {
		long, short := max(r.W, r.H), min(r.W, r.H)
		aspects[i] = float64(long) / float64(short)
		if short < t.MinBlock {
			s.Undersized++
		}
	}

	s.MeanArea, s.StdDevArea = stat.MeanStdDev(areas, nil)
	if s.Count == 1 {
		s.StdDevArea = 0
	}
	sorted := slices.Clone(areas)
	slices.Sort(sorted)
	s.MedianArea = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	s.MinArea = floats.Min(areas)
	s.MaxArea = floats.Max(areas)
	s.MeanAspect = stat.Mean(aspects, nil)
	return s
}

// Areas returns the area of every rectangle in commit order.
func Areas(t *tiling.Tiling) []float64 {
	areas := make([]float64, len(t.Rects))
	for i, r := range t.Rects {
		areas[i] = float64(r.Area())
	}
	return areas
}

// HistogramOptions configures [Histogram].
type HistogramOptions struct {
	Bins   int
	Width  vg.Length
	Height vg.Length
	Title  string
}

// Histogram renders a PNG histogram of block areas.
func Histogram(t *tiling.Tiling, opts HistogramOptions) ([]byte, error) {
	if len(t.Rects) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "tiling has no rectangles")
	}
	if opts.Bins <= 0 {
		opts.Bins = 20
	}
	if opts.Width <= 0 {
		opts.Width = 6 * vg.Inch
	}
	if opts.Height <= 0 {
		opts.Height = 4 * vg.Inch
	}
	if opts.Title == "" {
		opts.Title = fmt.Sprintf("Block areas (%dx%d, seed %d)", t.Width, t.Height, t.Seed)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "area (cells)"
	p.Y.Label.Text = "blocks"

	h, err := plotter.NewHist(plotter.Values(Areas(t)), opts.Bins)
	if err != nil {
		return nil, fmt.Errorf("build histogram: %w", err)
	}
	p.Add(h)

	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return nil, fmt.Errorf("create png writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
