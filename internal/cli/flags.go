package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/render/styles"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// flagValues receives flag values. Only flags the user actually set are
// copied onto the configured options, so config file values survive
// unless overridden.
type flagValues struct {
	opts    pipeline.Options
	formats string
}

// bindGenerateFlags registers the grid, block and generation flags.
func (f *flagValues) bindGenerateFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.opts.Width, "width", pipeline.DefaultWidth, "grid width in cells")
	fs.IntVar(&f.opts.Height, "height", pipeline.DefaultHeight, "grid height in cells")
	fs.IntVar(&f.opts.MinBlock, "min", pipeline.DefaultMinBlock, "minimum block side")
	fs.IntVar(&f.opts.MaxBlock, "max", pipeline.DefaultMaxBlock, "maximum block side")
	fs.IntVar(&f.opts.MaxSteps, "steps", pipeline.DefaultMaxSteps, "maximum number of steps")
	fs.Int64Var(&f.opts.Seed, "seed", pipeline.DefaultSeed, "random seed")
	fs.StringVarP(&f.opts.Strategy, "strategy", "s", string(pipeline.DefaultStrategy),
		"placement strategy: "+strings.Join(tiling.Strategies(), ", "))
	fs.BoolVar(&f.opts.Refresh, "refresh", false, "ignore cached results")

	_ = cmd.RegisterFlagCompletionFunc("strategy", cobra.FixedCompletions(tiling.Strategies(), cobra.ShellCompDirectiveNoFileComp))
}

// bindRenderFlags registers the output format and drawing flags.
func (f *flagValues) bindRenderFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(formatNames, ", ")+" (comma-separated)")
	fs.StringVar(&f.opts.Style, "style", pipeline.DefaultStyle, "visual style: "+strings.Join(styles.Names(), ", "))
	fs.IntVar(&f.opts.CellSize, "cell", pipeline.DefaultCellSize, "cell size in pixels")
	fs.BoolVar(&f.opts.GridDots, "dots", false, "draw the debug dot grid")
	fs.IntVar(&f.opts.FrameStride, "stride", 0, "blocks per GIF frame (0 = automatic)")
	fs.IntVar(&f.opts.MaxFrames, "frames", 0, "maximum GIF frames when stride is automatic")

	_ = cmd.RegisterFlagCompletionFunc("style", cobra.FixedCompletions(styles.Names(), cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(formatNames, cobra.ShellCompDirectiveNoFileComp))
}

var formatNames = []string{
	pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatGIF, pipeline.FormatJSON, pipeline.FormatDOT,
}

// options returns the configured options with explicitly set flags applied.
func (c *CLI) options(cmd *cobra.Command, f *flagValues) pipeline.Options {
	opts := c.cfg.Options()
	overrides := []struct {
		name  string
		apply func()
	}{
		{"width", func() { opts.Width = f.opts.Width }},
		{"height", func() { opts.Height = f.opts.Height }},
		{"min", func() { opts.MinBlock = f.opts.MinBlock }},
		{"max", func() { opts.MaxBlock = f.opts.MaxBlock }},
		{"steps", func() { opts.MaxSteps = f.opts.MaxSteps }},
		{"seed", func() { opts.Seed = f.opts.Seed }},
		{"strategy", func() { opts.Strategy = f.opts.Strategy }},
		{"refresh", func() { opts.Refresh = f.opts.Refresh }},
		{"format", func() { opts.Formats = parseFormats(f.formats) }},
		{"style", func() { opts.Style = f.opts.Style }},
		{"cell", func() { opts.CellSize = f.opts.CellSize }},
		{"dots", func() { opts.GridDots = f.opts.GridDots }},
		{"stride", func() { opts.FrameStride = f.opts.FrameStride }},
		{"frames", func() { opts.MaxFrames = f.opts.MaxFrames }},
	}
	for _, o := range overrides {
		if flag := cmd.Flags().Lookup(o.name); flag != nil && flag.Changed {
			o.apply()
		}
	}
	opts.Logger = c.Logger
	return opts
}
