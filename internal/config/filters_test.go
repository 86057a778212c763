package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/dealflow/internal/common"
	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFilterConfig_Defaults(t *testing.T) {
	cfg, err := LoadFilterConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, DefaultFilterConfig(), cfg)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.InitialSpec().Equal(filter.Clear()))

	closed := cfg.ClosedFunc()
	assert.True(t, closed(model.StatusWon))
	assert.True(t, closed(model.StatusCanceled))
	assert.False(t, closed(model.StatusWaiting))
}

func TestLoadFilterConfig_FromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
filters:
  debounce: 150ms
  closed_statuses: [won, lost, " archived "]
  default_sort: value
  default_order: asc
`)))

	cfg, err := LoadFilterConfig(v)
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.Equal(t, []model.DealStatus{model.StatusWon, model.StatusLost, "archived"}, cfg.ClosedStatuses)
	assert.Equal(t, filter.SortByValue, cfg.DefaultSort)
	assert.Equal(t, filter.Ascending, cfg.DefaultOrder)
	assert.Equal(t, 1, cfg.InitialSpec().ActiveFilterCount())
}

func TestLoadFilterConfig_ClosedStatusesCaseInsensitive(t *testing.T) {
	v := viper.New()
	v.Set(KeyClosedStatuses, []string{"Won", " LOST", "Completed"})

	cfg, err := LoadFilterConfig(v)
	require.NoError(t, err)
	assert.Equal(t, []model.DealStatus{model.StatusWon, model.StatusLost, model.StatusCompleted}, cfg.ClosedStatuses)

	isClosed := cfg.ClosedFunc()
	assert.True(t, isClosed(model.StatusWon))
	assert.False(t, isClosed(model.StatusCanceled))
}

func TestLoadFilterConfig_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{key: KeyDefaultSort, value: "price"},
		{key: KeyDefaultOrder, value: "sideways"},
		{key: KeyDebounce, value: "-1s"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := LoadFilterConfig(v)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadFilterConfig(v)
	require.NoError(t, err)
	assert.Equal(t, DefaultFilterConfig(), cfg)
	assert.Equal(t, "default", v.GetString(KeyTheme))
}

func TestDatabasePath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("DEALS_DIR", "/data")

	v := viper.New()
	assert.Equal(t, filepath.Join("/home/tester", ".local/share/deals/deals.db"), DatabasePath(v))

	v.Set(KeyDatabasePath, "~/deals.db")
	assert.Equal(t, "/home/tester/deals.db", DatabasePath(v))

	v.Set(KeyDatabasePath, "$DEALS_DIR/pipeline.db")
	assert.Equal(t, "/data/pipeline.db", DatabasePath(v))
}
