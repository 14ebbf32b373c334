package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/stats"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		histogram string
		bins      int
	)

	cmd := &cobra.Command{
		Use:   "stats [run.json]",
		Short: "Summarize a generated run",
		Long: `Summarize a run written by 'generate': observed type shares against the
configured probabilities, forward spacing between placements, lane usage and
the rejection rate of the overlap test.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), args[0], histogram, bins)
		},
	}

	cmd.Flags().StringVar(&histogram, "histogram", "", "write a spacing histogram PNG to this path")
	cmd.Flags().IntVar(&bins, "bins", stats.DefaultBins, "histogram bin count")

	return cmd
}

func (c *CLI) runStats(ctx context.Context, input, histogram string, bins int) error {
	rn, err := io.ImportRun(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}

	loggerFromContext(ctx).Debugf("Summarizing run %s", rn.ID)
	s := stats.Summarize(rn.Result, rn.Config)
	printSummary(rn, s)

	if histogram == "" {
		return nil
	}
	f, err := os.Create(histogram)
	if err != nil {
		return err
	}
	if err := stats.WriteHistogram(f, s, bins); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printNewline()
	printFile(histogram)
	return nil
}
