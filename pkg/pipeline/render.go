package pipeline

import (
	"fmt"

	"github.com/matzehuels/blockfill/pkg/render/adjacency"
	"github.com/matzehuels/blockfill/pkg/render/sink"
	"github.com/matzehuels/blockfill/pkg/render/styles"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// Render generates output artifacts in the requested formats.
func Render(t *tiling.Tiling, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	style, err := styles.Parse(opts.Style)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(t, buildSVGOptions(style, opts)...)
		case FormatPNG:
			data, err = sink.RenderPNG(t, buildPNGOptions(style, opts)...)
		case FormatJSON:
			data, err = sink.RenderJSON(t,
				sink.WithJSONCellSize(opts.CellSize),
				sink.WithJSONStyle(opts.Style),
				sink.WithJSONColors())
		case FormatGIF:
			data, err = sink.RenderGIF(t, buildGIFOptions(style, opts)...)
		case FormatDOT:
			data, err = renderDOT(t)
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func buildSVGOptions(style styles.Style, opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithStyle(style), sink.WithCellSize(opts.CellSize)}
	if opts.GridDots {
		svgOpts = append(svgOpts, sink.WithGridDots())
	}
	return svgOpts
}

func buildPNGOptions(style styles.Style, opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithPNGStyle(style), sink.WithPNGCellSize(opts.CellSize)}
	if opts.GridDots {
		pngOpts = append(pngOpts, sink.WithPNGGridDots())
	}
	return pngOpts
}

func buildGIFOptions(style styles.Style, opts Options) []sink.GIFOption {
	gifOpts := []sink.GIFOption{sink.WithGIFStyle(style), sink.WithGIFCellSize(opts.CellSize)}
	if opts.GridDots {
		gifOpts = append(gifOpts, sink.WithGIFGridDots())
	}
	if opts.FrameStride > 0 {
		gifOpts = append(gifOpts, sink.WithFrameStride(opts.FrameStride))
	}
	if opts.MaxFrames > 0 {
		gifOpts = append(gifOpts, sink.WithMaxFrames(opts.MaxFrames))
	}
	return gifOpts
}

func renderDOT(t *tiling.Tiling) ([]byte, error) {
	g, err := adjacency.Build(t)
	if err != nil {
		return nil, err
	}
	return []byte(adjacency.ToDOT(g, adjacency.Options{Colors: true})), nil
}
