package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/billmal071/bookshelf/internal/books"
)

// BookItem wraps a Book for the list component
type BookItem struct {
	Book books.Book
}

func (b BookItem) Title() string { return b.Book.Title }

func (b BookItem) Description() string {
	if b.Book.Author == "" {
		return DimStyle.Render("Unknown author")
	}
	return DimStyle.Render(b.Book.Author)
}

func (b BookItem) FilterValue() string { return b.Book.Title + " " + b.Book.Author }

// BookDelegate handles rendering of book items
type BookDelegate struct{}

func (d BookDelegate) Height() int                             { return 3 }
func (d BookDelegate) Spacing() int                            { return 0 }
func (d BookDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d BookDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	book, ok := item.(BookItem)
	if !ok {
		return
	}

	title := Truncate(book.Book.Title, 60)
	summary := Truncate(book.Book.Description, 60)

	var str string
	if index == m.Index() {
		str = SelectedStyle.Render(fmt.Sprintf("  ➤ #%d %s", book.Book.ID, title))
	} else {
		str = NormalStyle.Render(fmt.Sprintf("    #%d %s", book.Book.ID, title))
	}
	str += "\n" + DimStyle.Render(fmt.Sprintf("      %s", book.Book.Author))
	str += "\n" + DimStyle.Render(fmt.Sprintf("      %s", summary))

	fmt.Fprint(w, str)
}

// SelectorModel is the Bubble Tea model for book selection
type SelectorModel struct {
	list     list.Model
	selected *books.Book
	quitting bool
}

// NewSelector creates a new book selector TUI
func NewSelector(bs []books.Book, title string) SelectorModel {
	items := make([]list.Item, len(bs))
	for i, b := range bs {
		items[i] = BookItem{Book: b}
	}

	height := 4 + len(bs)*3
	if height > 24 {
		height = 24
	}

	l := list.New(items, BookDelegate{}, 70, height)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)
	l.Styles.Title = TitleStyle

	return SelectorModel{list: l}
}

func (m SelectorModel) Init() tea.Cmd {
	return nil
}

func (m SelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// let the filter input have the keys while the user is typing
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(BookItem); ok {
				b := item.Book
				m.selected = &b
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m SelectorModel) View() string {
	if m.selected != nil {
		return SuccessStyle.Render(fmt.Sprintf("\n  ✓ Selected: %s\n", m.selected.Title))
	}

	if m.quitting {
		return DimStyle.Render("\n  Cancelled.\n")
	}

	help := HelpStyle.Render("  " + strings.Join([]string{"↑/↓: navigate", "/: filter", "enter: select", "q/esc: cancel"}, " • "))
	return "\n" + m.list.View() + "\n" + help
}

// Selected returns the selected book, nil if the user cancelled
func (m SelectorModel) Selected() *books.Book {
	return m.selected
}

// RunSelector displays the TUI and returns the selected book
func RunSelector(bs []books.Book) (*books.Book, error) {
	if len(bs) == 0 {
		return nil, fmt.Errorf("no books to select from")
	}

	p := tea.NewProgram(NewSelector(bs, "Select a book"))

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(SelectorModel).Selected(), nil
}
