package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

const defaultTilingFile = "tiling.json"

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		f       flagValues
		output  string
		noCache bool
		save    bool
		name    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a tiling and write it as JSON",
		Long: `Generate a tiling and write it as JSON.

The output records the configuration, the number of steps, why generation
stopped and every block in placement order. It can be rendered later with
'render', analysed with 'stats' and 'graph', or stored as a run with --save.

Results are cached locally; the same flags and seed produce the same tiling.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &f)
			return c.runGenerate(cmd.Context(), opts, output, noCache, save, name)
		},
	}

	f.bindGenerateFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", defaultTilingFile, "output file (- for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&save, "save", false, "store the result as a run")
	cmd.Flags().StringVar(&name, "name", "", "run name (with --save)")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache, save bool, name string) error {
	if err := opts.ValidateForGenerate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Tiling %dx%d grid...", opts.Width, opts.Height))
	spinner.Start()

	prog := newProgress(c.Logger)
	t, cacheHit, err := runner.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}

	var run *store.Run
	if save {
		spinner.SetMessage("Saving run...")
		if run, err = c.saveRun(ctx, t, name); err != nil {
			spinner.StopWithError("Saving run failed")
			return err
		}
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Generated %d blocks", len(t.Rects)))

	if output == "-" {
		data, err := tiling.MarshalTiling(t)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := tiling.WriteTilingFile(t, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Tiling complete")
	printFile(output)
	printStats(len(t.Rects), t.Coverage(), string(t.Reason), cacheHit)
	warnIncomplete(t)
	if run != nil {
		printDetail("Saved as run %s", run.ID)
	}
	printNewline()
	printNextStep("Render", appName+" render "+output)

	return nil
}

// saveRun stores t in the configured run store.
func (c *CLI) saveRun(ctx context.Context, t *tiling.Tiling, name string) (*store.Run, error) {
	s, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	run := store.NewRun(t, name)
	if err := s.Save(ctx, run); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}
	return run, nil
}

// warnIncomplete flags tilings that stopped before covering the grid.
func warnIncomplete(t *tiling.Tiling) {
	if t.Reason != tiling.ReasonExhausted {
		printWarning("Stopped after %d steps (%s); %d of %d cells covered",
			t.Steps, t.Reason, t.Area(), t.Width*t.Height)
	}
}
