package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/trackgen/pkg/pipeline"
	"github.com/matzehuels/trackgen/pkg/render"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for trackgen.

Completions cover every subcommand (generate, render, stats, view, config,
runs, serve, cache) and the values of --format and --config.

Bash:
  $ source <(trackgen completion bash)

Zsh:
  $ trackgen completion zsh > "${fpath[1]}/_trackgen"

Fish:
  $ trackgen completion fish > ~/.config/fish/completions/trackgen.fish

PowerShell:
  PS> trackgen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeFormats completes a comma-separated --format value from formats,
// leaving out the ones already listed.
func completeFormats(formats []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		prefix := ""
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			prefix = toComplete[:i+1]
		}
		used := map[string]bool{}
		for _, f := range strings.Split(prefix, ",") {
			used[strings.TrimSpace(f)] = true
		}
		var out []string
		for _, f := range formats {
			if !used[f] {
				out = append(out, prefix+f)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

// generateFormats are the formats the generate command writes.
var generateFormats = []string{pipeline.FormatJSON, render.FormatSVG, render.FormatPNG, render.FormatPDF}

// configExtensions limits --config completion to config files.
var configExtensions = []string{"toml", "json"}
