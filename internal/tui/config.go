package tui

import (
	"github.com/Veraticus/dealflow/internal/config"
	"github.com/Veraticus/dealflow/internal/debounce"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/service"
	"github.com/Veraticus/dealflow/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme   themes.Theme
	Source  service.DealSource
	Clock   debounce.Clock
	Catalog model.StatusCatalog
	Deals   []model.Deal
	Stages  []model.Stage
	Filters config.FilterConfig
	Width   int
	Height  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:   themes.Default,
		Clock:   debounce.RealClock{},
		Catalog: model.DefaultStatusCatalog(),
		Filters: config.DefaultFilterConfig(),
		Width:   100,
		Height:  30,
	}
}

// WithSource sets where deals and stages are loaded from.
func WithSource(source service.DealSource) Option {
	return func(c *Config) {
		c.Source = source
	}
}

// WithDeals preloads deals instead of reading them from a source.
func WithDeals(deals []model.Deal, stages []model.Stage) Option {
	return func(c *Config) {
		c.Deals = deals
		c.Stages = stages
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithFilterConfig sets the initial ordering, closed classification and
// search debounce.
func WithFilterConfig(fc config.FilterConfig) Option {
	return func(c *Config) {
		c.Filters = fc
	}
}

// WithCatalog sets the status catalog used for labels and the status menu.
func WithCatalog(catalog model.StatusCatalog) Option {
	return func(c *Config) {
		c.Catalog = catalog
	}
}

// WithClock sets the clock that drives search debouncing.
func WithClock(clock debounce.Clock) Option {
	return func(c *Config) {
		c.Clock = clock
	}
}
