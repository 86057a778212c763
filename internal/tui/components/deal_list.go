package components

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DealListModel shows the evaluated deal view as a table.
type DealListModel struct {
	theme      themes.Theme
	catalog    model.StatusCatalog
	stageNames map[int]string
	deals      []model.Deal
	table      table.Model
	width      int
	height     int
}

// NewDealList creates an empty deal list.
func NewDealList(catalog model.StatusCatalog, theme themes.Theme) DealListModel {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	m := DealListModel{
		theme:      theme,
		catalog:    catalog,
		stageNames: make(map[int]string),
		table:      t,
		width:      80,
		height:     14,
	}
	m.updateColumnWidths()
	return m
}

// SetStages sets the names shown in the stage column.
func (m *DealListModel) SetStages(stages []model.Stage) {
	m.stageNames = make(map[int]string, len(stages))
	for _, s := range stages {
		m.stageNames[s.ID] = s.Name
	}
	m.table.SetRows(m.buildRows())
}

// SetDeals replaces the rows, keeping the cursor in range.
func (m *DealListModel) SetDeals(deals []model.Deal) {
	m.deals = deals
	m.table.SetRows(m.buildRows())
	if cursor := m.table.Cursor(); cursor >= len(deals) {
		m.table.SetCursor(max(0, len(deals)-1))
	}
}

// Deals returns the rows currently shown.
func (m DealListModel) Deals() []model.Deal {
	return m.deals
}

// Selected returns the deal under the cursor.
func (m DealListModel) Selected() (model.Deal, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.deals) {
		return model.Deal{}, false
	}
	return m.deals[i], true
}

// Update handles navigation keys.
func (m DealListModel) Update(msg tea.Msg) (DealListModel, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table, or a placeholder when nothing matches.
func (m DealListModel) View() string {
	if len(m.deals) == 0 {
		return lipgloss.NewStyle().
			Foreground(m.theme.Muted).
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No deals match the current filters")
	}
	return m.table.View()
}

// Resize updates the component size.
func (m *DealListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(max(3, height))
	m.updateColumnWidths()
}

func (m DealListModel) buildRows() []table.Row {
	rows := make([]table.Row, 0, len(m.deals))
	for _, d := range m.deals {
		rows = append(rows, table.Row{
			orDash(d.Name),
			orDash(d.Company),
			formatValue(d),
			m.catalog.Label(d.Status),
			m.stageName(d.StageID),
			formatDate(d),
		})
	}
	return rows
}

func (m DealListModel) stageName(id int) string {
	if id == 0 {
		return "—"
	}
	if name, ok := m.stageNames[id]; ok {
		return name
	}
	return "#" + strconv.Itoa(id)
}

// updateColumnWidths adjusts column widths to the available space.
func (m *DealListModel) updateColumnWidths() {
	availableWidth := max(60, m.width-4)

	m.table.SetColumns([]table.Column{
		{Title: "Deal", Width: max(12, int(float64(availableWidth)*0.26))},
		{Title: "Company", Width: max(10, int(float64(availableWidth)*0.20))},
		{Title: "Value", Width: max(10, int(float64(availableWidth)*0.13))},
		{Title: "Status", Width: max(11, int(float64(availableWidth)*0.13))},
		{Title: "Stage", Width: max(10, int(float64(availableWidth)*0.14))},
		{Title: "Created", Width: 10},
	})
}

func formatValue(d model.Deal) string {
	if !d.HasValue() {
		return "—"
	}
	return fmt.Sprintf("$%.2f", d.Value)
}

func formatDate(d model.Deal) string {
	if !d.HasCreatedAt() {
		return "—"
	}
	return d.CreatedAt.Format("2006-01-02")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
