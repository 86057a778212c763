package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the deal browser and blocks until the user quits or ctx is
// canceled. No filter callback runs after Run returns.
func Run(ctx context.Context, opts ...Option) error {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Source == nil && cfg.Deals == nil {
		return ErrNoSource
	}

	m := newModel(cfg)
	defer m.controller.Close()

	p := tea.NewProgram(
		m,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	m.sink.attach(p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
