package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/run"
	"github.com/matzehuels/trackgen/pkg/spawn"
	"github.com/matzehuels/trackgen/pkg/storage"
)

// runsCommand creates the command group for the local run archive.
func (c *CLI) runsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Browse runs archived with 'generate --save'",
	}

	cmd.AddCommand(c.runsListCommand())
	cmd.AddCommand(c.runsExportCommand())
	cmd.AddCommand(c.runsDeleteCommand())

	return cmd
}

func (c *CLI) runsListCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFileStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				printInfo("No archived runs in %s", store.Path())
				return nil
			}
			printRunTable(runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", storage.DefaultListLimit, "maximum number of runs")
	return cmd
}

func (c *CLI) runsExportCommand() *cobra.Command {
	var (
		output  string
		records bool
	)

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write an archived run to a JSON file",
		Long: `Write an archived run to a JSON file.

With --records only the placement records are written, one JSON object per
line in slot order, ready to be replayed by a game client.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFileStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			rn, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if records {
				if output == "" {
					output = rn.ID + ".jsonl"
				}
				n, err := exportRecords(cmd, output, rn)
				if err != nil {
					return err
				}
				printSuccess("Exported %d records", n)
				printFile(output)
				return nil
			}
			if output == "" {
				output = rn.ID + ".json"
			}
			if err := io.ExportRun(output, rn); err != nil {
				return err
			}
			printSuccess("Exported run from %s", rn.CreatedAt.Local().Format(time.DateTime))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <id>.json or <id>.jsonl)")
	cmd.Flags().BoolVar(&records, "records", false, "write placement records as JSON lines")
	return cmd
}

// exportRecords dispatches the records of rn to a JSON lines file.
func exportRecords(cmd *cobra.Command, path string, rn *run.Run) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := spawn.Dispatch(cmd.Context(), rn.Result, spawn.NewJSONLines(f))
	if err != nil {
		f.Close()
		return n, fmt.Errorf("export records: %w", err)
	}
	return n, f.Close()
}

func (c *CLI) runsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.NewFileStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete run: %w", err)
			}
			printSuccess("Deleted run %s", args[0])
			return nil
		},
	}
}
