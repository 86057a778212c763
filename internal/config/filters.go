package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeyDatabasePath   = "database.path"
	KeyDebounce       = "filters.debounce"
	KeyClosedStatuses = "filters.closed_statuses"
	KeyDefaultSort    = "filters.default_sort"
	KeyDefaultOrder   = "filters.default_order"
	KeyTUILogFile     = "logging.tui_file"
	KeyTheme          = "tui.theme"
)

// DefaultDatabasePath is used when database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/deals/deals.db"

// FilterConfig holds the filter settings shared by every deal view.
type FilterConfig struct {
	ClosedStatuses []model.DealStatus
	Debounce       time.Duration
	DefaultSort    filter.SortField
	DefaultOrder   filter.SortOrder
}

// DefaultFilterConfig returns the built-in filter settings. The closed set maps
// the menu vocabulary (completed, canceled) onto the terminal won/lost outcomes.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Debounce: 300 * time.Millisecond,
		ClosedStatuses: []model.DealStatus{
			model.StatusWon,
			model.StatusLost,
			model.StatusCompleted,
			model.StatusCanceled,
		},
		DefaultSort:  filter.SortByDate,
		DefaultOrder: filter.Descending,
	}
}

// SetDefaults registers default values with viper.
func SetDefaults(v *viper.Viper) {
	defaults := DefaultFilterConfig()
	v.SetDefault(KeyDatabasePath, DefaultDatabasePath)
	v.SetDefault(KeyTheme, "default")
	v.SetDefault(KeyDebounce, defaults.Debounce.String())
	v.SetDefault(KeyClosedStatuses, statusStrings(defaults.ClosedStatuses))
	v.SetDefault(KeyDefaultSort, defaults.DefaultSort.String())
	v.SetDefault(KeyDefaultOrder, defaults.DefaultOrder.String())
}

// LoadFilterConfig reads filter settings from v, falling back to defaults for
// anything unset.
func LoadFilterConfig(v *viper.Viper) (FilterConfig, error) {
	cfg := DefaultFilterConfig()

	if v.IsSet(KeyDebounce) {
		cfg.Debounce = v.GetDuration(KeyDebounce)
		if cfg.Debounce < 0 {
			return FilterConfig{}, fmt.Errorf("%w: %s must not be negative", common.ErrInvalidConfig, KeyDebounce)
		}
	}

	if v.IsSet(KeyClosedStatuses) {
		raw := v.GetStringSlice(KeyClosedStatuses)
		statuses := make([]model.DealStatus, 0, len(raw))
		for _, s := range raw {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" {
				continue
			}
			statuses = append(statuses, model.DealStatus(s))
		}
		cfg.ClosedStatuses = statuses
	}

	if v.IsSet(KeyDefaultSort) {
		field, err := filter.ParseSortField(v.GetString(KeyDefaultSort))
		if err != nil {
			return FilterConfig{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyDefaultSort, err)
		}
		cfg.DefaultSort = field
	}

	if v.IsSet(KeyDefaultOrder) {
		order, err := filter.ParseSortOrder(v.GetString(KeyDefaultOrder))
		if err != nil {
			return FilterConfig{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyDefaultOrder, err)
		}
		cfg.DefaultOrder = order
	}

	return cfg, nil
}

// InitialSpec returns the filter a new view starts from.
func (c FilterConfig) InitialSpec() filter.Spec {
	return filter.Clear().WithSort(c.DefaultSort, c.DefaultOrder)
}

// ClosedFunc returns the closed classification for the evaluator.
func (c FilterConfig) ClosedFunc() filter.ClosedFunc {
	return filter.ClosedStatuses(c.ClosedStatuses...)
}

// DatabasePath returns the configured database path with ~ and env vars expanded.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString(KeyDatabasePath)
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

func statusStrings(statuses []model.DealStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
