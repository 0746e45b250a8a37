package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/config"
	"github.com/billmal071/bookshelf/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick a book from an interactive list",
	Long: `Fetch the collection, choose a book from a filterable list and print
its full record.

Keys:
  ↑/↓ or j/k  move
  /           filter by title or author
  enter       show the selected book
  q, esc      quit`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	client := books.NewClient(logger)

	var list []books.Book
	err := withSpinner(config.Get().UI.Spinner, "Fetching books", func() (err error) {
		list, err = client.FetchAll(cmd.Context())
		return err
	})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No books available.")
		return nil
	}

	picked, err := tui.RunSelector(list)
	if err != nil {
		return err
	}
	if picked == nil {
		return nil
	}

	// Fetch again so the record shown is the single-book view
	return showBook(cmd, picked.ID)
}
