package tiling

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/grid"
)

// Tiling is the serializable outcome of a session: the configuration that
// produced it, the number of steps taken, why it stopped, and every
// rectangle in commit order.
type Tiling struct {
	Config `bson:",inline"`

	Steps  int         `json:"steps" bson:"steps"`
	Reason Reason      `json:"reason" bson:"reason"`
	Rects  []grid.Rect `json:"rects" bson:"rects"`
}

// Area returns the number of cells covered by Rects.
func (t *Tiling) Area() int {
	n := 0
	for _, r := range t.Rects {
		n += r.Area()
	}
	return n
}

// Coverage returns the covered fraction of the grid in [0, 1].
func (t *Tiling) Coverage() float64 {
	cells := t.Width * t.Height
	if cells == 0 {
		return 0
	}
	return float64(t.Area()) / float64(cells)
}

// Full reports whether the rectangles cover the whole grid.
func (t *Tiling) Full() bool { return t.Area() == t.Width*t.Height }

// Replay commits Rects onto a fresh grid. It fails if the configuration is
// invalid, an id is out of sequence, or a rectangle leaves the grid or
// overlaps an earlier one.
func (t *Tiling) Replay() (*grid.Grid, error) {
	if err := t.Config.Validate(); err != nil {
		return nil, err
	}
	g, err := grid.New(t.Width, t.Height)
	if err != nil {
		return nil, err
	}
	for i, r := range t.Rects {
		if r.ID != i {
			return nil, errors.New(errors.ErrCodeInvalidInput, "rectangle %d has id %d", i, r.ID)
		}
		if _, err := g.Commit(r.X, r.Y, r.W, r.H); err != nil {
			return nil, fmt.Errorf("rectangle %d: %w", i, err)
		}
	}
	return g, nil
}

// MarshalTiling serializes a Tiling to pretty-printed JSON bytes.
func MarshalTiling(t *Tiling) ([]byte, error) {
	return json.MarshalIndent(t, "", "  ")
}

// UnmarshalTiling deserializes JSON bytes into a Tiling and checks that the
// rectangles form a valid partial tiling of the grid.
func UnmarshalTiling(data []byte) (*Tiling, error) {
	var t Tiling
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal tiling")
	}
	if t.Strategy == "" {
		t.Strategy = StrategyGrowth
	}
	if _, err := t.Replay(); err != nil {
		return nil, err
	}
	return &t, nil
}

// WriteTilingFile writes a Tiling to a JSON file.
func WriteTilingFile(t *Tiling, path string) error {
	data, err := MarshalTiling(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadTilingFile reads a Tiling from a JSON file.
func ReadTilingFile(path string) (*Tiling, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalTiling(data)
}
