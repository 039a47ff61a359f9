// Package styles defines how blocks are drawn in SVG output.
package styles

import (
	"bytes"

	"github.com/matzehuels/blockfill/pkg/errors"
)

// Style names.
const (
	NameSimple    = "simple"
	NameWireframe = "wireframe"
)

// Style writes the SVG elements for blocks.
type Style interface {
	// Name returns the style's identifier.
	Name() string
	// RenderDefs writes content for the <defs> section.
	RenderDefs(buf *bytes.Buffer)
	// RenderBlock writes one block.
	RenderBlock(buf *bytes.Buffer, b Block)
}

// Block is a rectangle in pixel coordinates.
type Block struct {
	ID         int
	X, Y, W, H float64
	Fill       string // "#rrggbb"
}

// Names lists the available styles.
func Names() []string {
	return []string{NameSimple, NameWireframe}
}

// Parse returns the style with the given name. Empty means simple.
func Parse(name string) (Style, error) {
	switch name {
	case "", NameSimple:
		return Simple{}, nil
	case NameWireframe:
		return Wireframe{}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (valid: %v)", name, Names())
}
