package components

import (
	"strings"

	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SortChosenMsg asks the host to apply a sort option.
type SortChosenMsg struct {
	Option filter.SortOption
}

// SortMenuModel is the single-choice sort menu.
type SortMenuModel struct {
	theme   themes.Theme
	options []filter.SortOption
	current int
	cursor  int
}

// NewSortMenu creates the menu with the cursor on the active ordering.
func NewSortMenu(field filter.SortField, order filter.SortOrder, theme themes.Theme) SortMenuModel {
	options := filter.SortOptions()
	current := -1
	for i, opt := range options {
		if opt.Field == field && opt.Order == order {
			current = i
			break
		}
	}

	return SortMenuModel{
		theme:   theme,
		options: options,
		current: current,
		cursor:  max(current, 0),
	}
}

// Cursor returns the highlighted row.
func (m SortMenuModel) Cursor() int {
	return m.cursor
}

// Update handles key presses.
func (m SortMenuModel) Update(msg tea.Msg) (SortMenuModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, len(m.options)-1)
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case "enter", " ":
		opt := m.options[m.cursor]
		return m, func() tea.Msg { return SortChosenMsg{Option: opt} }
	case "esc", "o", "q":
		return m, func() tea.Msg { return MenuClosedMsg{} }
	}
	return m, nil
}

// View renders the menu as a bordered box.
func (m SortMenuModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Sort deals"))
	b.WriteString("\n\n")

	for i, opt := range m.options {
		mark := "( )"
		if i == m.current {
			mark = "(•)"
		}
		line := mark + " " + opt.Label
		if i == m.cursor {
			line = m.theme.Highlighted.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[Enter] apply  [Esc] close"))

	return m.theme.RoundedBox.Render(b.String())
}
