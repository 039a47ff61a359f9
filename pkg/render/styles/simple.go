package styles

import (
	"bytes"
	"fmt"
)

// Simple fills each block with its colour and draws no outline.
type Simple struct{}

func (Simple) Name() string { return NameSimple }

func (Simple) RenderDefs(*bytes.Buffer) {}

func (Simple) RenderBlock(buf *bytes.Buffer, b Block) {
	fmt.Fprintf(buf, `  <rect id="block-%d" class="block" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		b.ID, b.X, b.Y, b.W, b.H, b.Fill)
}
