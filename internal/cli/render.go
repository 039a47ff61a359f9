package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/pipeline"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		f       flagValues
		src     tilingSource
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "render [tiling.json]",
		Short: "Render a tiling to SVG, PNG, GIF, JSON or DOT",
		Long: `Render a tiling to SVG, PNG, GIF, JSON or DOT.

The tiling is read from a file written by 'generate', loaded from the run
store with --run, or generated from the flags when neither is given.

GIF output animates the placement order, one frame per --stride blocks.
DOT output is the block adjacency graph (see 'graph').

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &f)
			if err := opts.ValidateForRender(); err != nil {
				return err
			}
			src.path = firstArg(args)
			return c.runRender(cmd.Context(), src, opts, output, noCache)
		},
	}

	f.bindGenerateFlags(cmd)
	f.bindRenderFlags(cmd)
	src.bindFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, src tilingSource, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	t, input, err := c.loadTiling(ctx, runner, src, opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	}); err != nil {
		return err
	}
	printStats(len(t.Rects), t.Coverage(), string(t.Reason), cacheHit)
	return nil
}

// =============================================================================
// Tiling Sources
// =============================================================================

// tilingSource names where a command reads its tiling from.
type tilingSource struct {
	path  string
	runID string
}

func (s *tilingSource) bindFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.runID, "run", "", "load the tiling from a stored run")
}

// loadTiling reads, fetches or generates the tiling for src. The returned
// name is used to derive output file names.
func (c *CLI) loadTiling(ctx context.Context, runner *pipeline.Runner, src tilingSource, opts pipeline.Options) (*tiling.Tiling, string, error) {
	switch {
	case src.path != "" && src.runID != "":
		return nil, "", fmt.Errorf("give either a tiling file or --run, not both")
	case src.path != "":
		t, err := tiling.ReadTilingFile(src.path)
		if err != nil {
			return nil, "", fmt.Errorf("load tiling %s: %w", src.path, err)
		}
		c.Logger.Debug("loaded tiling", "path", src.path, "blocks", len(t.Rects))
		return t, src.path, nil
	case src.runID != "":
		s, err := c.openStore(ctx)
		if err != nil {
			return nil, "", err
		}
		defer s.Close()
		run, err := s.Get(ctx, src.runID)
		if err != nil {
			return nil, "", err
		}
		return run.Tiling, run.ID, nil
	}

	if err := opts.ValidateForGenerate(); err != nil {
		return nil, "", err
	}
	t, err := runner.Generate(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	return t, "tiling", nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// =============================================================================
// Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered format. A single format goes to
// output verbatim when it is set; otherwise names are derived from the
// base path and the format extension.
func writeArtifacts(p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output != "" {
		return writeOutput(p.output, p.artifacts[p.formats[0]])
	}

	base := basePath(p.output, p.input)
	for _, format := range p.formats {
		path := base + "." + format
		if sameFile(path, p.input) {
			path = base + ".render." + format
		}
		if err := writeOutput(path, p.artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func writeOutput(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the base output path. Without output the input's
// extension is stripped; a known format extension on output is stripped
// too.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	if pipeline.ValidFormats[ext] {
		return strings.TrimSuffix(output, "."+ext)
	}
	return output
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
