package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/tiling"
)

// runsCommand creates the runs command for the run store.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Manage stored runs",
		Long: `Manage stored runs.

Runs are tilings saved with 'generate --save' or through the HTTP API. The
backend is chosen by store.driver in the config file: file (default),
sqlite or mongo.`,
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsShowCommand())
	cmd.AddCommand(c.runsDeleteCommand())

	return cmd
}

// withStore opens the run store for the duration of fn.
func (c *CLI) withStore(ctx context.Context, fn func(store.Store) error) error {
	s, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func (c *CLI) runsListCommand() *cobra.Command {
	var (
		limit    int
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := store.ListOptions{Limit: limit}
			if strategy != "" {
				s, err := tiling.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				opts.Strategy = s
			}
			return c.withStore(cmd.Context(), func(s store.Store) error {
				runs, err := s.List(cmd.Context(), opts)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					printInfo("No stored runs")
					return nil
				}
				fmt.Println(runTable(runs))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultListLimit, "maximum number of runs")
	cmd.Flags().StringVar(&strategy, "strategy", "", "only runs of this strategy")

	return cmd
}

func (c *CLI) runsShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				run, err := s.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printRun(run)
				if output == "" {
					return nil
				}
				if err := tiling.WriteTilingFile(run.Tiling, output); err != nil {
					return fmt.Errorf("write output %s: %w", output, err)
				}
				printFile(output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the tiling to this file")

	return cmd
}

func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete stored runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(cmd.Context(), func(s store.Store) error {
				for _, id := range args {
					if err := s.Delete(cmd.Context(), id); err != nil {
						return err
					}
					printSuccess("Deleted run %s", id)
				}
				return nil
			})
		},
	}
}

// =============================================================================
// Display
// =============================================================================

func printRun(run *store.Run) {
	t := run.Tiling
	printKeyValue("id", run.ID)
	if run.Name != "" {
		printKeyValue("name", run.Name)
	}
	printKeyValue("created", run.CreatedAt.Local().Format(time.DateTime))
	printKeyValue("grid", fmt.Sprintf("%dx%d", t.Width, t.Height))
	printKeyValue("blocks", fmt.Sprintf("%d..%d", t.MinBlock, t.MaxBlock))
	printKeyValue("strategy", string(t.Strategy))
	printKeyValue("seed", strconv.FormatInt(t.Seed, 10))
	printStats(len(t.Rects), t.Coverage(), string(t.Reason), false)
}

func runTable(runs []*store.Run) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, len(runs))
	for i, run := range runs {
		t := run.Tiling
		rows[i] = []string{
			run.ID,
			run.Name,
			formatRelativeTime(run.CreatedAt),
			fmt.Sprintf("%dx%d", t.Width, t.Height),
			string(t.Strategy),
			strconv.FormatInt(t.Seed, 10),
			strconv.Itoa(len(t.Rects)),
			string(t.Reason),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Created", "Grid", "Strategy", "Seed", "Blocks", "Reason").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle.Padding(0, 1)
			}
			if col == 0 {
				return cellStyle.Foreground(colorDim)
			}
			return cellStyle
		}).
		String()
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
