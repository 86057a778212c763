package themes

import (
	"testing"

	"github.com/Veraticus/dealflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("default").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestStatusBadge(t *testing.T) {
	info, _ := model.DefaultStatusCatalog().Lookup(model.StatusCanceled)
	assert.Contains(t, Default.StatusBadge(info), "Canceled")
}
