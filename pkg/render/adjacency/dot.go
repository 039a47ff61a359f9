package adjacency

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/blockfill/pkg/render/palette"
)

// Options configures adjacency diagram rendering.
type Options struct {
	// Colors fills each node with its block colour.
	Colors bool
	// Weighted scales edge width by the length of the shared border.
	Weighted bool
}

// pointsPerCell maps grid cells to Graphviz points for pinned positions.
const pointsPerCell = 36.0

// ToDOT converts the graph to Graphviz DOT. Nodes are pinned at the centre
// of their block with y flipped, since Graphviz puts the origin bottom left.
func ToDOT(g *Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	buf.WriteString("  edge [color=\"#333333\"];\n")
	buf.WriteString("\n")

	var colors []string
	if opts.Colors {
		colors = palette.Colors(g.Seed, len(g.Nodes))
	}
	for i, r := range g.Nodes {
		cx := (float64(r.X) + float64(r.W)/2) * pointsPerCell
		cy := (float64(g.Height) - float64(r.Y) - float64(r.H)/2) * pointsPerCell
		fmt.Fprintf(&buf, "  %d [pos=\"%.1f,%.1f!\"", r.ID, cx, cy)
		if colors != nil {
			fmt.Fprintf(&buf, ", fillcolor=%q", colors[i])
		}
		buf.WriteString("];\n")
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if opts.Weighted {
			fmt.Fprintf(&buf, "  %d -- %d [penwidth=%d];\n", e.From, e.To, min(e.Shared, 8))
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one whose viewBox
// starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
