package cli

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/tiling"
)

// defaultWatchDelay is the pause between two placed blocks.
const defaultWatchDelay = 5 * time.Millisecond

// watchCommand creates the watch command for the live terminal view.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		f      flagValues
		delay  time.Duration
		paused bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch a tiling grow in the terminal",
		Long: `Watch a tiling grow in the terminal.

Every block is painted in the colour the renderers use for it. Press space
to pause, n to place a single block while paused, f to finish at once and
q to quit. With --output the tiling is written when the view closes, even
if generation was interrupted.

Each cell takes two terminal columns, so large grids need a wide terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options(cmd, &f)
			if err := opts.ValidateForGenerate(); err != nil {
				return err
			}

			model, err := NewWatchModel(opts.Config(), delay, paused)
			if err != nil {
				return err
			}
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("watch: %w", err)
			}
			wm, ok := final.(WatchModel)
			if !ok {
				return cmd.Context().Err()
			}

			t := wm.Session.Result()
			printStats(len(t.Rects), t.Coverage(), string(t.Reason), false)
			if output == "" {
				return nil
			}
			if err := tiling.WriteTilingFile(t, output); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			printFile(output)
			return nil
		},
	}

	f.bindGenerateFlags(cmd)
	cmd.Flags().DurationVar(&delay, "delay", defaultWatchDelay, "pause between blocks")
	cmd.Flags().BoolVar(&paused, "paused", false, "start paused")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the tiling here on exit")

	return cmd
}
