package filter

import (
	"testing"

	"github.com/Veraticus/dealflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestClear(t *testing.T) {
	s := Clear()

	assert.Equal(t, "", s.Search())
	assert.Equal(t, 0, s.Statuses().Len())
	assert.Equal(t, SortByDate, s.SortBy())
	assert.Equal(t, Descending, s.SortOrder())
	assert.True(t, s.HidesClosed())
	_, hasStage := s.StageID()
	assert.False(t, hasStage)
	assert.Equal(t, 0, s.ActiveFilterCount())
	assert.True(t, s.Equal(Spec{}))
}

func TestSpec_ActiveFilterCount(t *testing.T) {
	tests := []struct {
		name string
		spec Spec
		want int
	}{
		{name: "default", spec: Clear(), want: 0},
		{name: "search", spec: Clear().WithSearch("acme"), want: 1},
		{name: "status", spec: Clear().ToggleStatus(model.StatusWaiting), want: 1},
		{name: "two statuses still count once", spec: Clear().WithStatuses(model.StatusWaiting, model.StatusInProgress), want: 1},
		{name: "sort field changed", spec: Clear().WithSort(SortByName, Descending), want: 1},
		{name: "sort order changed", spec: Clear().WithSort(SortByDate, Ascending), want: 1},
		{name: "explicit hide closed is neutral", spec: Clear().WithHideClosed(true), want: 0},
		{name: "show closed", spec: Clear().WithHideClosed(false), want: 1},
		{name: "stage is not counted", spec: Clear().WithStage(3), want: 0},
		{
			name: "everything",
			spec: Clear().
				WithSearch("x").
				ToggleStatus(model.StatusWon).
				WithSort(SortByValue, Ascending).
				WithHideClosed(false).
				WithStage(1),
			want: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.ActiveFilterCount())
		})
	}
}

func TestSpec_IsActive(t *testing.T) {
	s := Clear().WithSearch("a").WithHideClosed(false)

	assert.True(t, s.IsActive(DimensionSearch))
	assert.False(t, s.IsActive(DimensionStatus))
	assert.False(t, s.IsActive(DimensionSort))
	assert.True(t, s.IsActive(DimensionClosed))
	assert.False(t, s.IsActive(Dimension(42)))
}

func TestSpec_ToggleStatus(t *testing.T) {
	t.Run("adds absent status", func(t *testing.T) {
		s := Clear().ToggleStatus(model.StatusWaiting)
		assert.True(t, s.Statuses().Has(model.StatusWaiting))
		assert.Equal(t, 1, s.Statuses().Len())
	})

	t.Run("removes present status", func(t *testing.T) {
		s := Clear().WithStatuses(model.StatusWaiting, model.StatusWon).ToggleStatus(model.StatusWaiting)
		assert.False(t, s.Statuses().Has(model.StatusWaiting))
		assert.Equal(t, []model.DealStatus{model.StatusWon}, s.Statuses().Values())
	})

	t.Run("double toggle is identity", func(t *testing.T) {
		specs := []Spec{
			Clear(),
			Clear().WithStatuses(model.StatusInProgress),
			Clear().WithStatuses(model.StatusWaiting, model.StatusLost),
			Clear().WithSearch("beta").WithSort(SortByCompany, Ascending),
		}
		for _, s := range specs {
			got := s.ToggleStatus(model.StatusWaiting).ToggleStatus(model.StatusWaiting)
			assert.True(t, got.Equal(s), "toggle twice changed %s into %s", s, got)
		}
	})

	t.Run("does not modify receiver", func(t *testing.T) {
		original := Clear().WithStatuses(model.StatusWaiting)
		_ = original.ToggleStatus(model.StatusWon)
		_ = original.ToggleStatus(model.StatusWaiting)
		assert.Equal(t, []model.DealStatus{model.StatusWaiting}, original.Statuses().Values())
	})
}

func TestSpec_Transitions(t *testing.T) {
	base := Clear()

	staged := base.WithStage(7)
	id, ok := staged.StageID()
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	unstaged := staged.WithoutStage()
	_, ok = unstaged.StageID()
	assert.False(t, ok)
	assert.True(t, unstaged.Equal(base))

	sorted := base.WithSort(SortByCompany, Ascending)
	assert.Equal(t, SortByCompany, sorted.SortBy())
	assert.Equal(t, Ascending, sorted.SortOrder())
	assert.Equal(t, SortByDate, base.SortBy(), "receiver must not change")

	assert.False(t, base.WithHideClosed(false).HidesClosed())
	assert.True(t, base.WithHideClosed(false).WithHideClosed(true).HidesClosed())
}

func TestSpec_Equal(t *testing.T) {
	a := Clear().WithStatuses(model.StatusWaiting, model.StatusInProgress)
	b := Clear().WithStatuses(model.StatusInProgress, model.StatusWaiting)
	assert.True(t, a.Equal(b), "status order must not matter")

	assert.False(t, a.Equal(a.WithSearch("x")))
	assert.False(t, Clear().WithStage(0).Equal(Clear()), "stage 0 is a real scope")
}

func TestSpec_String(t *testing.T) {
	s := Clear().
		WithSearch("acm").
		WithStatuses(model.StatusWaiting).
		WithSort(SortByValue, Ascending).
		WithStage(2).
		WithHideClosed(false)

	assert.Equal(t, `search="acm" status=[waiting] sort=value:asc stage=2 closed=shown`, s.String())
	assert.Equal(t, `search="" status=[] sort=date:desc closed=hidden`, Clear().String())
}

func TestNewStatusSet(t *testing.T) {
	set := NewStatusSet(model.StatusWon, model.StatusWon, model.StatusLost)
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []model.DealStatus{model.StatusWon, model.StatusLost}, set.Values())

	values := set.Values()
	values[0] = "mutated"
	assert.True(t, set.Has(model.StatusWon), "Values must return a copy")
}
