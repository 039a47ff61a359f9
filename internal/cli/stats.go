package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/stats"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		f       flagValues
		src     tilingSource
		hist    string
		bins    int
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "stats [tiling.json]",
		Short: "Summarize block sizes of a tiling",
		Long: `Summarize block sizes of a tiling.

Prints the block count, coverage, area mean, deviation, median and range,
the mean aspect ratio and the number of blocks with a side below the
minimum block size. With --hist an area histogram is written as PNG.

The tiling is read from a file, a stored run (--run) or generated from the
flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.path = firstArg(args)
			return c.runStats(cmd.Context(), src, c.options(cmd, &f), hist, bins, asJSON, noCache)
		},
	}

	f.bindGenerateFlags(cmd)
	src.bindFlags(cmd)
	cmd.Flags().StringVar(&hist, "hist", "", "write an area histogram PNG to this file")
	cmd.Flags().IntVar(&bins, "bins", 20, "histogram bins")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runStats(ctx context.Context, src tilingSource, opts pipeline.Options, hist string, bins int, asJSON, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, _, err := c.loadTiling(ctx, runner, src, opts)
	if err != nil {
		return err
	}
	sum := stats.Summarize(t)

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sum); err != nil {
			return err
		}
	} else {
		printSummary(sum)
	}

	if hist == "" {
		return nil
	}
	data, err := stats.Histogram(t, stats.HistogramOptions{Bins: bins})
	if err != nil {
		return err
	}
	return writeOutput(hist, data)
}

func printSummary(s stats.Summary) {
	num := func(format string, args ...any) string {
		return StyleNumber.Render(fmt.Sprintf(format, args...))
	}
	printKeyValue("blocks", num("%d", s.Count))
	printKeyValue("coverage", num("%.1f%%", 100*s.Coverage))
	printKeyValue("area", fmt.Sprintf("%s ± %s", num("%.2f", s.MeanArea), num("%.2f", s.StdDevArea)))
	printKeyValue("median", num("%.1f", s.MedianArea))
	printKeyValue("range", fmt.Sprintf("%s .. %s", num("%.0f", s.MinArea), num("%.0f", s.MaxArea)))
	printKeyValue("aspect", num("%.2f", s.MeanAspect))
	if s.Undersized > 0 {
		printKeyValue("undersized", StyleWarning.Render(fmt.Sprintf("%d", s.Undersized)))
	} else {
		printKeyValue("undersized", num("0"))
	}
}
