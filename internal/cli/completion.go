package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/tui"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bookshelf.

To load completions:

Bash:
  $ source <(bookshelf completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ bookshelf completion bash > /etc/bash_completion.d/bookshelf
  # macOS:
  $ bookshelf completion bash > /usr/local/etc/bash_completion.d/bookshelf

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ bookshelf completion zsh > "${fpath[1]}/_bookshelf"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ bookshelf completion fish | source

  # To load completions for each session, execute once:
  $ bookshelf completion fish > ~/.config/fish/completions/bookshelf.fish

PowerShell:
  PS> bookshelf completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> bookshelf completion powershell > bookshelf.ps1
  # and source this file from your PowerShell profile.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

// completionTimeout bounds the API call made while the shell waits
const completionTimeout = 2 * time.Second

func init() {
	// Add dynamic completion for book IDs
	showCmd.ValidArgsFunction = completeBookIDs
}

// completeBookIDs offers the IDs currently served by the API
func completeBookIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), completionTimeout)
	defer cancel()

	list, err := books.NewClient(logger).FetchAll(ctx)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return bookCompletions(list), cobra.ShellCompDirectiveNoFileComp
}

// bookCompletions formats books as "ID<TAB>Title (Author)"
func bookCompletions(list []books.Book) []string {
	completions := make([]string, 0, len(list))
	for _, b := range list {
		completions = append(completions, fmt.Sprintf("%d\t%s (%s)", b.ID, tui.Truncate(b.Title, 40), b.Author))
	}
	return completions
}
