package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/config"
	"github.com/billmal071/bookshelf/internal/db"
	"github.com/billmal071/bookshelf/internal/repl"
	"github.com/billmal071/bookshelf/internal/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	Long: `Fetch the whole collection once, print it as a table and exit.

Books are printed in the order the API returns them.

Examples:
  bookshelf list
  bookshelf list --timeout 10s`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	client := books.NewClient(logger)

	var list []books.Book
	err := withSpinner(config.Get().UI.Spinner, "Fetching books", func() (err error) {
		list, err = client.FetchAll(cmd.Context())
		return err
	})
	recordOneShot(repl.Command{Action: repl.ActionListAll}, len(list), err)
	if err != nil {
		return err
	}

	if err := tui.RenderBooks(cmd.OutOrStdout(), list); err != nil {
		return err
	}
	Printf("Books (%d)\n", len(list))
	return nil
}

// recordOneShot stores a one-shot command in history under its own session
func recordOneShot(cmd repl.Command, rows int, cmdErr error) {
	if !db.Enabled() {
		return
	}
	if err := db.NewSessionRecorder().Record(cmd.String(), rows, cmdErr); err != nil {
		logger.Warn("failed to record command", zap.Stringer("command", cmd), zap.Error(err))
	}
}

func fetchLabel(id int) string {
	return fmt.Sprintf("Fetching book %d", id)
}
