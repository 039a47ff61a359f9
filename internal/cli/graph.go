package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/render/adjacency"
)

// graphCommand creates the graph command for block adjacency diagrams.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		f        flagValues
		src      tilingSource
		output   string
		format   string
		opts     adjacency.Options
		noCache  bool
		topNodes int
	)

	cmd := &cobra.Command{
		Use:   "graph [tiling.json]",
		Short: "Build the block adjacency graph of a tiling",
		Long: `Build the block adjacency graph of a tiling.

Two blocks are adjacent when they share a border segment; touching corners
do not count. Nodes are pinned at their block centres, so the neato layout
reproduces the tiling's geometry. Output is Graphviz DOT or SVG.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "dot" && format != "svg" {
				return fmt.Errorf("invalid format: %s (must be 'dot' or 'svg')", format)
			}
			src.path = firstArg(args)
			return c.runGraph(cmd.Context(), src, c.options(cmd, &f), opts, format, output, topNodes, noCache)
		},
	}

	f.bindGenerateFlags(cmd)
	src.bindFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.graph.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot")
	cmd.Flags().BoolVar(&opts.Colors, "colors", true, "fill nodes with block colours")
	cmd.Flags().BoolVar(&opts.Weighted, "weighted", false, "scale edges by shared border length")
	cmd.Flags().IntVar(&topNodes, "top", 0, "print the N blocks with the most neighbours")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, src tilingSource, popts pipeline.Options, opts adjacency.Options, format, output string, topNodes int, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, input, err := c.loadTiling(ctx, runner, src, popts)
	if err != nil {
		return err
	}
	g, err := adjacency.Build(t)
	if err != nil {
		return fmt.Errorf("build adjacency graph: %w", err)
	}

	dot := adjacency.ToDOT(g, opts)
	data := []byte(dot)
	if format == "svg" {
		spinner := newSpinnerWithContext(ctx, "Rendering graph...")
		spinner.Start()
		data, err = adjacency.RenderSVG(ctx, dot)
		if err != nil {
			spinner.StopWithError("Graph rendering failed")
			return err
		}
		spinner.Stop()
	}

	if output == "" {
		output = basePath("", input) + ".graph." + format
	}
	if err := writeOutput(output, data); err != nil {
		return err
	}
	printGraphStats(len(g.Nodes), len(g.Edges), false)

	if topNodes > 0 {
		printTopNodes(g, topNodes)
	}
	return nil
}

// printTopNodes lists the n blocks with the highest degree.
func printTopNodes(g *adjacency.Graph, n int) {
	degrees := g.Degrees()
	ids := make([]int, len(degrees))
	for i := range ids {
		ids[i] = i
	}
	slices.SortStableFunc(ids, func(a, b int) int { return degrees[b] - degrees[a] })

	printNewline()
	for _, id := range ids[:min(n, len(ids))] {
		r := g.Nodes[id]
		printKeyValue(fmt.Sprintf("block %d", id),
			fmt.Sprintf("%d neighbours  %dx%d at (%d,%d)", degrees[id], r.W, r.H, r.X, r.Y))
	}
}
