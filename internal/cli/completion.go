package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for chordview.

  bash:       source <(chordview completion bash)
  zsh:        chordview completion zsh > "${fpath[1]}/_chordview"
  fish:       chordview completion fish | source
  powershell: chordview completion powershell | Out-String | Invoke-Expression

Chord names from the library complete for "render" and "library show".`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}
}

// completeChordNames offers library chord names as positional completions.
func (c *CLI) completeChordNames(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	path, _ := cmd.Flags().GetString("library")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	lib, err := c.loadLibrary(ctx, path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	var names []cobra.Completion
	for _, ch := range lib.Search(toComplete) {
		names = append(names, ch.Name)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
