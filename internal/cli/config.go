package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/io"
	"github.com/matzehuels/trackgen/pkg/track"
)

const defaultConfigPath = "track.toml"

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write and check generation configs",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default config as TOML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigPath
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := io.WriteConfigFile(path, track.DefaultConfig()); err != nil {
				return err
			}
			printSuccess("Wrote default config")
			printFile(path)
			printNextStep("Generate a track", "trackgen generate -c "+path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configCheckCommand creates the "config check" subcommand.
func (c *CLI) configCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a config and show what normalization changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConfigCheck(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runConfigCheck(ctx context.Context, path string) error {
	cfg, err := io.ReadConfig(path)
	if err != nil {
		return err
	}
	norm, adjustments, err := cfg.Normalize()
	if err != nil {
		printError("%s is invalid", path)
		return err
	}
	loggerFromContext(ctx).Debugf("Checked %s: %d adjustments", path, len(adjustments))

	_, missing := track.Resolve(norm.Resources)
	if len(adjustments) == 0 && len(missing) == 0 {
		printSuccess("%s is valid", path)
	} else {
		printWarning("%s is usable with changes", path)
	}
	for _, a := range adjustments {
		printDetail("%s: %v %s %v", a.Field, a.From, iconArrow, a.To)
	}
	for _, t := range missing {
		printDetail("%s: resource missing, placed as obstacle", t)
	}

	printNewline()
	printKeyValue("elements", fmt.Sprint(norm.ElementCount))
	printKeyValue("track", fmt.Sprintf("z %.1f..%.1f, x %.1f..%.1f", norm.StartZ, norm.EndZ, norm.XMin, norm.XMax))
	printKeyValue("spacing", fmt.Sprintf("%.2f..%.2f", norm.MinSpacing, norm.MaxSpacing))
	if norm.UseLanes {
		printKeyValue("lanes", fmt.Sprint(norm.LaneCount))
	} else {
		printKeyValue("lanes", "freeform")
	}
	if norm.TrackWidth > 0 {
		printKeyValue("width", fmt.Sprintf("%.1f, edge padding %.2f", norm.TrackWidth, norm.EdgePadding))
	}
	if pad, err := track.DebugPad(norm); err == nil {
		printKeyValue("debug pad", fmt.Sprintf("x %.2f, y %.2f, z %.2f", pad.Position.X, pad.Position.Y, pad.Position.Z))
	}
	return nil
}
