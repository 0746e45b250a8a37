package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/billmal071/bookshelf/internal/db"
)

// HistoryItem wraps a HistoryEntry for the list component
type HistoryItem struct {
	Entry *db.HistoryEntry
}

func (h HistoryItem) Title() string { return h.Entry.Command }

func (h HistoryItem) Description() string {
	parts := []string{h.Entry.Outcome}
	if h.Entry.Outcome == db.OutcomeOK {
		parts = append(parts, fmt.Sprintf("%d rows", h.Entry.Rows))
	} else if h.Entry.ErrorMessage != "" {
		parts = append(parts, Truncate(h.Entry.ErrorMessage, 50))
	}
	parts = append(parts, h.Entry.CreatedAt.Local().Format("2006-01-02 15:04"))

	return DimStyle.Render(strings.Join(parts, " | "))
}

func (h HistoryItem) FilterValue() string { return h.Entry.Command }

// HistoryDelegate handles rendering of history items
type HistoryDelegate struct{}

func (d HistoryDelegate) Height() int                             { return 2 }
func (d HistoryDelegate) Spacing() int                            { return 1 }
func (d HistoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d HistoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(HistoryItem)
	if !ok {
		return
	}

	var str string
	if index == m.Index() {
		str = SelectedStyle.Render(fmt.Sprintf("  ➤ %d. %s", index+1, entry.Entry.Command))
	} else {
		str = NormalStyle.Render(fmt.Sprintf("    %d. %s", index+1, entry.Entry.Command))
	}
	str += "\n" + DimStyle.Render(fmt.Sprintf("      %s", entry.Description()))

	fmt.Fprint(w, str)
}

// HistorySelectorModel is the Bubble Tea model for picking a past command
type HistorySelectorModel struct {
	list     list.Model
	selected *db.HistoryEntry
	quitting bool
}

// NewHistorySelector creates a new history selector TUI
func NewHistorySelector(history []*db.HistoryEntry) HistorySelectorModel {
	items := make([]list.Item, len(history))
	for i, h := range history {
		items[i] = HistoryItem{Entry: h}
	}

	l := list.New(items, HistoryDelegate{}, 80, 20)
	l.Title = "Command History"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle

	return HistorySelectorModel{list: l}
}

func (m HistorySelectorModel) Init() tea.Cmd {
	return nil
}

func (m HistorySelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(HistoryItem); ok {
				m.selected = item.Entry
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

func (m HistorySelectorModel) View() string {
	if m.selected != nil {
		return SuccessStyle.Render(fmt.Sprintf("\n  ✓ Selected: %s\n", m.selected.Command))
	}

	if m.quitting {
		return DimStyle.Render("\n  Cancelled.\n")
	}

	help := HelpStyle.Render("  ↑/↓: navigate • enter: run again • q: cancel")

	var view strings.Builder
	view.WriteString("\n")
	view.WriteString(m.list.View())
	view.WriteString("\n")
	view.WriteString(help)

	return view.String()
}

// Selected returns the selected history entry
func (m HistorySelectorModel) Selected() *db.HistoryEntry {
	return m.selected
}

// RunHistorySelector displays the TUI and returns the picked entry, nil if cancelled
func RunHistorySelector(history []*db.HistoryEntry) (*db.HistoryEntry, error) {
	if len(history) == 0 {
		return nil, fmt.Errorf("no command history available")
	}

	p := tea.NewProgram(NewHistorySelector(history))

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(HistorySelectorModel).Selected(), nil
}
