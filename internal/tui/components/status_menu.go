package components

import (
	"strings"

	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusToggledMsg asks the host to toggle a status in the filter.
type StatusToggledMsg struct {
	Status model.DealStatus
}

// MenuClosedMsg reports that a menu was dismissed without a choice.
type MenuClosedMsg struct{}

// StatusMenuModel is the multi-select status menu.
type StatusMenuModel struct {
	theme    themes.Theme
	catalog  model.StatusCatalog
	selected filter.StatusSet
	cursor   int
}

// NewStatusMenu creates a menu over the catalog, in catalog order.
func NewStatusMenu(catalog model.StatusCatalog, selected filter.StatusSet, theme themes.Theme) StatusMenuModel {
	return StatusMenuModel{
		theme:    theme,
		catalog:  catalog,
		selected: selected,
	}
}

// SetSelected refreshes the check marks.
func (m *StatusMenuModel) SetSelected(selected filter.StatusSet) {
	m.selected = selected
}

// Cursor returns the highlighted row.
func (m StatusMenuModel) Cursor() int {
	return m.cursor
}

// Update handles key presses. Toggling emits StatusToggledMsg; the host
// decides whether the menu stays open.
func (m StatusMenuModel) Update(msg tea.Msg) (StatusMenuModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "j", "down":
		m.cursor = min(m.cursor+1, len(m.catalog)-1)
	case "k", "up":
		m.cursor = max(m.cursor-1, 0)
	case " ", "enter", "x":
		if m.cursor < len(m.catalog) {
			status := m.catalog[m.cursor].Value
			return m, func() tea.Msg { return StatusToggledMsg{Status: status} }
		}
	case "esc", "s", "q":
		return m, func() tea.Msg { return MenuClosedMsg{} }
	}
	return m, nil
}

// View renders the menu as a bordered box.
func (m StatusMenuModel) View() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Filter by status"))
	b.WriteString("\n\n")

	for i, info := range m.catalog {
		check := "[ ]"
		if m.selected.Has(info.Value) {
			check = "[x]"
		}
		line := check + " " + m.theme.StatusBadge(info)
		if i == m.cursor {
			line = m.theme.Highlighted.Render("›") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[Space] toggle  [Esc] close"))

	return m.theme.RoundedBox.Render(b.String())
}
