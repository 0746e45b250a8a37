package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/config"
	"github.com/billmal071/bookshelf/internal/db"
	"github.com/billmal071/bookshelf/internal/logging"
	"github.com/billmal071/bookshelf/internal/repl"
)

var (
	cfgFile string
	verbose bool
	baseURL string
	timeout time.Duration

	logger      *zap.Logger = zap.NewNop()
	flushLogger             = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "Browse a remote book API from the terminal",
	Long: `bookshelf fetches book records from a REST API and prints them as tables.

Run without arguments to start an interactive session:
  get        list all books
  get <id>   show one book (1, 2 and 3 work as shortcuts)
  exit       quit

Examples:
  bookshelf                                   Start the interactive session
  bookshelf list                              Print all books and exit
  bookshelf show 2                            Print book #2 and exit
  bookshelf --base-url http://localhost:8000  Use another API`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config
		if err := config.Init(cfgFile); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		if cmd.Flags().Changed("base-url") {
			config.Override("api.base_url", baseURL)
		}
		if cmd.Flags().Changed("timeout") {
			config.Override("network.timeout", timeout)
		}

		logger, flushLogger = logging.New(verbose)

		// History is optional: a broken database must not block fetching books
		if config.Get().History.Enabled {
			if err := db.Init(); err != nil {
				logger.Warn("command history disabled", zap.Error(err))
			}
		}

		return nil
	},
	RunE: runInteractive,
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
// History and the logger are closed whether or not the command fails.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer cleanup()
	return rootCmd.ExecuteContext(ctx)
}

func cleanup() {
	if err := db.Close(); err != nil {
		logger.Warn("failed to close history database", zap.Error(err))
	}
	flushLogger()
	flushLogger = func() {}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/bookshelf/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", config.DefaultBaseURL, "book API base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", books.DefaultTimeout, "timeout for each request")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	Printf("Using API %s\n", cfg.API.BaseURL)

	session := repl.NewSession(books.NewClient(logger), cmd.InOrStdin(), cmd.OutOrStdout(), logger).
		WithPrompt(cfg.UI.Prompt)
	if db.Enabled() {
		session.WithRecorder(db.NewSessionRecorder())
	}
	if cfg.UI.Spinner && isTerminal(os.Stderr) {
		session.WithProgress(newSpinner(os.Stderr))
	}

	err := session.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Printf prints if verbose mode is enabled
func Printf(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format, args...)
	}
}

// Successf prints a success message
func Successf(format string, args ...interface{}) {
	fmt.Printf("✓ "+format+"\n", args...)
}
