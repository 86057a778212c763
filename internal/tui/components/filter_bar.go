package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FilterBarModel renders the search box and a summary of the active filters.
type FilterBarModel struct {
	theme      themes.Theme
	catalog    model.StatusCatalog
	stageNames map[int]string
	edited     filter.Spec
	published  filter.Spec
	input      textinput.Model
	width      int
}

// NewFilterBar creates a filter bar showing spec.
func NewFilterBar(spec filter.Spec, catalog model.StatusCatalog, theme themes.Theme) FilterBarModel {
	input := textinput.New()
	input.Placeholder = "Search deals or companies..."
	input.Prompt = "/ "
	input.CharLimit = 80
	input.SetValue(spec.Search())

	return FilterBarModel{
		theme:      theme,
		catalog:    catalog,
		stageNames: make(map[int]string),
		edited:     spec,
		published:  spec,
		input:      input,
		width:      80,
	}
}

// SetSpec updates the summary. edited is the filter being built and published
// the one the list currently reflects.
func (m *FilterBarModel) SetSpec(edited, published filter.Spec) {
	m.edited = edited
	m.published = published
	if !m.input.Focused() && m.input.Value() != edited.Search() {
		m.input.SetValue(edited.Search())
	}
}

// SetStages sets the names used for the stage chip.
func (m *FilterBarModel) SetStages(stages []model.Stage) {
	m.stageNames = make(map[int]string, len(stages))
	for _, s := range stages {
		m.stageNames[s.ID] = s.Name
	}
}

// Focus moves keyboard input to the search box.
func (m *FilterBarModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur leaves the search box.
func (m *FilterBarModel) Blur() {
	m.input.Blur()
}

// Focused reports whether the search box has keyboard input.
func (m FilterBarModel) Focused() bool {
	return m.input.Focused()
}

// Value returns the search text as typed.
func (m FilterBarModel) Value() string {
	return m.input.Value()
}

// SetValue replaces the search text.
func (m *FilterBarModel) SetValue(s string) {
	m.input.SetValue(s)
}

// Resize sets the available width.
func (m *FilterBarModel) Resize(width int) {
	m.width = width
	m.input.Width = max(20, width/2)
}

// Update forwards input to the search box.
func (m FilterBarModel) Update(msg tea.Msg) (FilterBarModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the search line and the filter summary.
func (m FilterBarModel) View() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	chips := []string{
		m.chip("Status", m.statusSummary()),
		m.chip("Sort", filter.SortLabel(m.edited.SortBy(), m.edited.SortOrder())),
		m.chip("Stage", m.stageSummary()),
		m.chip("Closed", closedSummary(m.edited)),
	}
	summary := strings.Join(chips, muted.Render("  │  "))

	if count := m.edited.ActiveFilterCount(); count > 0 {
		badge := m.theme.Badge.
			Background(m.theme.Primary).
			Foreground(m.theme.Foreground).
			Render(fmt.Sprintf("⏷ %d", count))
		summary = badge + " " + summary
	}

	if !m.edited.Equal(m.published) {
		summary += "  " + m.theme.StatusWarning.Render("● unapplied (a)")
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), summary)
}

func (m FilterBarModel) chip(label, value string) string {
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label+": ") + m.theme.Normal.Render(value)
}

func (m FilterBarModel) statusSummary() string {
	statuses := m.edited.Statuses().Values()
	if len(statuses) == 0 {
		return "all"
	}
	labels := make([]string, len(statuses))
	for i, s := range statuses {
		labels[i] = m.catalog.Label(s)
	}
	return strings.Join(labels, ", ")
}

func (m FilterBarModel) stageSummary() string {
	id, ok := m.edited.StageID()
	if !ok {
		return "all"
	}
	if name, found := m.stageNames[id]; found {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func closedSummary(spec filter.Spec) string {
	if spec.HidesClosed() {
		return "hidden"
	}
	return "shown"
}
