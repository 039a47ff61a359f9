package stats

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/blockfill/pkg/grid"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

func fixture() *tiling.Tiling {
	return &tiling.Tiling{
		Config: tiling.Config{Width: 4, Height: 4, MinBlock: 2, MaxBlock: 4},
		Reason: tiling.ReasonExhausted,
		Rects: []grid.Rect{
			{ID: 0, X: 0, Y: 0, W: 2, H: 2},
			{ID: 1, X: 2, Y: 0, W: 2, H: 4},
			{ID: 2, X: 0, Y: 2, W: 2, H: 1},
			{ID: 3, X: 0, Y: 3, W: 2, H: 1},
		},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture())

	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 1.0, s.Coverage, 1e-9)
	assert.InDelta(t, 4.0, s.MeanArea, 1e-9)
	assert.InDelta(t, 2.0, s.MinArea, 1e-9)
	assert.InDelta(t, 8.0, s.MaxArea, 1e-9)
	assert.InDelta(t, 2.0, s.MedianArea, 1e-9)
	// Areas 4, 8, 2, 2: sample variance = (0+16+4+4)/3 = 8.
	assert.InDelta(t, 2.8284271, s.StdDevArea, 1e-6)
	// Aspects 1, 2, 2, 2.
	assert.InDelta(t, 1.75, s.MeanAspect, 1e-9)
	assert.Equal(t, 2, s.Undersized)
}

func TestSummarizeEdgeCases(t *testing.T) {
	empty := &tiling.Tiling{Config: tiling.Config{Width: 3, Height: 3, MinBlock: 1, MaxBlock: 1}}
	assert.Equal(t, Summary{}, Summarize(empty))

	one := &tiling.Tiling{
		Config: tiling.Config{Width: 1, Height: 1, MinBlock: 3, MaxBlock: 5},
		Rects:  []grid.Rect{{ID: 0, W: 1, H: 1}},
	}
	s := Summarize(one)
	assert.Equal(t, 1, s.Count)
	assert.Zero(t, s.StdDevArea)
	assert.Equal(t, 1, s.Undersized)
}

func TestHistogram(t *testing.T) {
	data, err := Histogram(fixture(), HistogramOptions{Bins: 4})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Positive(t, img.Bounds().Dx())
	assert.Positive(t, img.Bounds().Dy())

	_, err = Histogram(&tiling.Tiling{Config: tiling.Config{Width: 2, Height: 2}}, HistogramOptions{})
	assert.Error(t, err)
}
