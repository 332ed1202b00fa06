package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/qrnoize/pkg/config"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for qrnoize.

Bash:
  $ source <(qrnoize completion bash)

Zsh:
  $ qrnoize completion zsh > "${fpath[1]}/_qrnoize"

Fish:
  $ qrnoize completion fish | source

PowerShell:
  PS> qrnoize completion powershell | Out-String | Invoke-Expression

Stack names for --only are completed from the config argument of run.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// completeRunArgs completes the positional arguments of run: paths for
// input and output, config files for the third argument.
func completeRunArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) >= 3 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if len(args) == 1 {
		return nil, cobra.ShellCompDirectiveFilterDirs
	}
	return nil, cobra.ShellCompDirectiveDefault
}

// completeStackNames offers the stack names of the config given as the
// third positional argument.
func completeStackNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) < 3 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	tbl, err := config.ParseFile(args[2], config.Options{})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return tbl.Names(), cobra.ShellCompDirectiveNoFileComp
}
