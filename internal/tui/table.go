package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/billmal071/bookshelf/internal/books"
)

// Headers is the fixed header row of every book table
var Headers = []string{"ID", "Title", "Author", "Description"}

// BookRow returns the table cells for one book
func BookRow(b books.Book) []string {
	return []string{strconv.Itoa(b.ID), b.Title, b.Author, b.Description}
}

// BookRows returns one row per book, keeping the input order
func BookRows(bs []books.Book) [][]string {
	rows := make([][]string, 0, len(bs))
	for _, b := range bs {
		rows = append(rows, BookRow(b))
	}
	return rows
}

// BooksTable builds the table for a list of books
func BooksTable(bs []books.Book) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(TableBorderStyle).
		Headers(Headers...).
		Rows(BookRows(bs)...).
		StyleFunc(cellStyle)
}

// BookTable builds the table for a single book
func BookTable(b books.Book) *table.Table {
	return BooksTable([]books.Book{b})
}

// RenderBooks writes the table for bs to w. An empty list renders the header only.
func RenderBooks(w io.Writer, bs []books.Book) error {
	_, err := fmt.Fprintln(w, BooksTable(bs).Render())
	return err
}

// RenderBook writes a single-row table for b to w
func RenderBook(w io.Writer, b books.Book) error {
	_, err := fmt.Fprintln(w, BookTable(b).Render())
	return err
}

func cellStyle(row, col int) lipgloss.Style {
	switch {
	case row == 0:
		return TableHeaderStyle
	case col == 0:
		return TableIDStyle
	default:
		return TableCellStyle
	}
}
