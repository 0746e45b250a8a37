package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/config"
	"github.com/billmal071/bookshelf/internal/db"
	"github.com/billmal071/bookshelf/internal/repl"
	"github.com/billmal071/bookshelf/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View and manage command history",
	Long: `View and manage the history of fetch commands.

Every "get" and "get <id>" run in a session, and every list or show run,
is recorded with its outcome.

Examples:
  bookshelf history                    List recent commands
  bookshelf history pick               Choose a past command and run it again
  bookshelf history prune --older 720h Delete entries older than 30 days
  bookshelf history clear              Clear all history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showHistory(cmd.OutOrStdout(), config.Get().History.Limit)
	},
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if !cmd.Flags().Changed("limit") {
			limit = config.Get().History.Limit
		}
		return showHistory(cmd.OutOrStdout(), limit)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear all command history",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireHistory(); err != nil {
			return err
		}
		if err := db.ClearHistory(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		Successf("Command history cleared.")
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old history entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireHistory(); err != nil {
			return err
		}
		older, _ := cmd.Flags().GetDuration("older")
		if older <= 0 {
			return fmt.Errorf("--older must be positive, got %s", older)
		}
		n, err := db.DeleteHistoryOlderThan(older)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
		Successf("Deleted %d entries older than %s.", n, older)
		return nil
	},
}

var historyPickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a past command and run it again",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireHistory(); err != nil {
			return err
		}
		history, err := db.GetHistory(config.Get().History.Limit)
		if err != nil {
			return fmt.Errorf("failed to get history: %w", err)
		}

		picked, err := tui.RunHistorySelector(history)
		if err != nil {
			return err
		}
		if picked == nil {
			return nil
		}

		replay, err := repl.ParseCommand(picked.Command)
		if err != nil {
			return fmt.Errorf("cannot replay %q: %w", picked.Command, err)
		}

		session := repl.NewSession(books.NewClient(logger), cmd.InOrStdin(), cmd.OutOrStdout(), logger).
			WithRecorder(db.NewSessionRecorder())
		if config.Get().UI.Spinner && isTerminal(os.Stderr) {
			session.WithProgress(newSpinner(os.Stderr))
		}
		return session.Dispatch(cmd.Context(), replay)
	},
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	historyPruneCmd.Flags().Duration("older", 30*24*time.Hour, "delete entries older than this")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyPruneCmd)
	historyCmd.AddCommand(historyPickCmd)
}

func requireHistory() error {
	if !db.Enabled() {
		return fmt.Errorf("command history is disabled (set history.enabled to true)")
	}
	return nil
}

func showHistory(w io.Writer, limit int) error {
	if err := requireHistory(); err != nil {
		return err
	}
	history, err := db.GetHistory(limit)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(history) == 0 {
		fmt.Fprintln(w, "No command history.")
		fmt.Fprintln(w, "\nCommands are saved automatically when you fetch books.")
		return nil
	}

	fmt.Fprintf(w, "Recent Commands (%d):\n\n", len(history))
	for i, h := range history {
		fmt.Fprintf(w, "  %d. %s\n", i+1, formatHistoryEntry(h))
	}
	return nil
}

// formatHistoryEntry renders one entry as a single line
func formatHistoryEntry(h *db.HistoryEntry) string {
	when := h.CreatedAt.Local().Format("2006-01-02 15:04")
	if h.Outcome == db.OutcomeError {
		return fmt.Sprintf("%-10s %s  error: %s", h.Command, when, h.ErrorMessage)
	}
	noun := "books"
	if h.Rows == 1 {
		noun = "book"
	}
	return fmt.Sprintf("%-10s %s  %d %s", h.Command, when, h.Rows, noun)
}
