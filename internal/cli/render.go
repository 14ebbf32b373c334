package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/pipeline"
	"github.com/matzehuels/trackgen/pkg/render"
)

// renderCommand creates the render command for drawing previews of a saved run.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render [run.json]",
		Short: "Render previews of a generated run",
		Long: `Render a top-down preview of a run written by 'generate'.

The preview shows the track bounds, lane centre lines and the footprint of
every placed element coloured by type. --margins also outlines the
margin-inflated footprint used by the overlap test.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if formatsStr == "" {
				opts.Formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf (comma-separated)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "scale in mm per world unit")
	cmd.Flags().BoolVar(&opts.ShowMargins, "margins", false, "outline margin-inflated footprints")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	cmd.RegisterFlagCompletionFunc("format", completeFormats(render.Formats))

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	logger := loggerFromContext(ctx)

	rn, err := io.ImportRun(input)
	if err != nil {
		return fmt.Errorf("load run %s: %w", input, err)
	}
	logger.Debugf("Loaded run %s: %d records", rn.ID, rn.Placed())

	runner, err := c.newRunner(noCache, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	spinner := newSpinnerWithContext(ctx, "Rendering preview...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, rn, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	printSuccess("Rendered run %s", StyleHighlight.Render(rn.ID))
	printCacheStatus(cacheHit)
	return writeArtifacts(artifacts, opts.Formats, output, input)
}
