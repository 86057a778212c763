package tui

import (
	"fmt"

	"github.com/Veraticus/dealflow/internal/filterbar"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.renderLoading()
	}
	if m.lastError != nil {
		return m.renderError()
	}

	var body string
	switch m.mode {
	case ModeStatusMenu:
		body = m.overlay(m.statusMenu.View())
	case ModeSortMenu:
		body = m.overlay(m.sortMenu.View())
	case ModeHelp:
		body = m.overlay(m.renderHelp())
	default:
		body = m.list.View()
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.filterBar.View(),
		body,
		m.renderStatusBar(),
	)

	return m.theme.BorderedBox.Render(content)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Loading deals..."),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Reading the pipeline"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderError() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		lipgloss.NewStyle().Foreground(m.theme.Error).Bold(true).Render("Something went wrong"),
		"",
		m.theme.Normal.Render(m.lastError.Error()),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press q to quit"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("Deals")
	count := lipgloss.NewStyle().Foreground(m.theme.Muted).
		Render(fmt.Sprintf("  %d of %d", len(m.list.Deals()), len(m.deals)))
	return title + count
}

// renderStatusBar shows the current notice, or the short help.
func (m Model) renderStatusBar() string {
	if m.notice != nil {
		style := m.theme.StatusInfo
		switch m.notice.Kind {
		case filterbar.NoticeSuccess:
			style = m.theme.StatusSuccess
		case filterbar.NoticeWarning:
			style = m.theme.StatusWarning
		}
		return style.Render(m.notice.Title) + " " +
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(m.notice.Description)
	}
	if m.mode == ModeSearch {
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("[Enter] done  [Esc] clear search")
	}
	return m.help.ShortHelpView(m.keymap.ShortHelp())
}

func (m Model) renderHelp() string {
	return m.theme.RoundedBox.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("Keyboard shortcuts"),
		"",
		m.help.FullHelpView(m.keymap.FullHelp()),
	))
}

func (m Model) overlay(box string) string {
	return lipgloss.Place(m.width-2, max(3, m.height-7), lipgloss.Center, lipgloss.Center, box)
}
