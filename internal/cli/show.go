package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/billmal071/bookshelf/internal/books"
	"github.com/billmal071/bookshelf/internal/config"
	"github.com/billmal071/bookshelf/internal/repl"
	"github.com/billmal071/bookshelf/internal/tui"
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one book",
	Long: `Fetch a single book by its numeric id, print it as a table and exit.

Examples:
  bookshelf show 1
  bookshelf show 42`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid book id %q: must be a positive integer", args[0])
	}
	return showBook(cmd, id)
}

// showBook fetches one book and renders it to the command's output
func showBook(cmd *cobra.Command, id int) error {
	client := books.NewClient(logger)

	var book books.Book
	err := withSpinner(config.Get().UI.Spinner, fetchLabel(id), func() (err error) {
		book, err = client.FetchOne(cmd.Context(), id)
		return err
	})

	rows := 0
	if err == nil {
		rows = 1
	}
	recordOneShot(repl.Command{Action: repl.ActionShowOne, ID: id}, rows, err)
	if err != nil {
		return err
	}

	return tui.RenderBook(cmd.OutOrStdout(), book)
}
