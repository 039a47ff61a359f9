package styles

import (
	"bytes"
	"fmt"
)

// minLabelSide is the smallest block side, in pixels, that gets an id label.
const minLabelSide = 24.0

// Wireframe draws block outlines with the block id in the centre. Fill
// colours are ignored.
type Wireframe struct{}

func (Wireframe) Name() string { return NameWireframe }

func (Wireframe) RenderDefs(buf *bytes.Buffer) {
	buf.WriteString(`    <style>
      .block { fill: #ffffff; stroke: #333333; stroke-width: 1; }
      .block-label { font-family: monospace; font-size: 10px; fill: #333333; text-anchor: middle; dominant-baseline: central; }
    </style>` + "\n")
}

func (Wireframe) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf, `  <rect id="block-%d" class="block" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		b.ID, b.X+0.5, b.Y+0.5, b.W-1, b.H-1)
	if b.W >= minLabelSide && b.H >= minLabelSide {
		fmt.Fprintf(buf, `  <text class="block-label" x="%.1f" y="%.1f">%d</text>`+"\n",
			b.X+b.W/2, b.Y+b.H/2, b.ID)
	}
}
