package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/pipeline"
	"github.com/matzehuels/trackgen/pkg/spawn"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output      string // output file (single format) or base path
	formats     string // comma-separated output formats
	noCache     bool   // bypass the local cache
	save        bool   // archive the run in the local run store
	spawnOutput string // JSON-lines file receiving records as they are placed
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var gopts generateOpts
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a track",
		Long: `Generate the content of one track.

The configuration comes from --config (TOML or JSON) or the built-in
defaults. The same config and seed always produce the same track, so results
are cached locally; use --refresh to regenerate.

By default the run is written as JSON (track.json). Add svg, png or pdf to
--format for previews.`,
		Example: `  trackgen generate --seed 7
  trackgen generate -c track.toml -f json,svg -o out/track
  trackgen generate --spawn records.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(gopts.formats)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, gopts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "generation config (.toml or .json)")
	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", pipeline.DefaultSeed, "random seed")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when cached")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 0, "preview scale in mm per world unit")
	cmd.Flags().BoolVar(&opts.ShowMargins, "margins", false, "outline margin-inflated footprints in previews")
	cmd.Flags().StringVarP(&gopts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&gopts.formats, "format", "f", "", "output format(s): json (default), svg, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&gopts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&gopts.save, "save", false, "archive the run locally (see 'trackgen runs')")
	cmd.Flags().StringVar(&gopts.spawnOutput, "spawn", "", "stream placement records to a JSON-lines file")

	cmd.RegisterFlagCompletionFunc("format", completeFormats(generateFormats))
	cmd.MarkFlagFilename("config", configExtensions...)

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, gopts generateOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(gopts.noCache, gopts.save)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = logger

	if gopts.spawnOutput != "" {
		f, err := os.Create(gopts.spawnOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		opts.Sink = spawn.AsSink(ctx, spawn.NewJSONLines(f))
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	rn := result.Run
	prog.done(fmt.Sprintf("Placed %d of %d elements", rn.Placed(), rn.Config.ElementCount))

	printSuccess("Generated run %s", StyleHighlight.Render(rn.ID))
	printRunStats(rn, result.CacheInfo.GenerateHit)
	if err := writeArtifacts(result.Artifacts, opts.Formats, gopts.output, "track.json"); err != nil {
		return err
	}
	if gopts.spawnOutput != "" {
		printFile(gopts.spawnOutput)
	}
	if gopts.save {
		printNextStep("Browse archived runs", "trackgen runs list")
	}
	return nil
}
