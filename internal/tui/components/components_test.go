package components

import (
	"math"
	"testing"
	"time"

	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/model"
	tuitest "github.com/Veraticus/dealflow/internal/tui/testing"
	"github.com/Veraticus/dealflow/internal/tui/themes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeals() []model.Deal {
	return []model.Deal{
		{ID: "1", Name: "Acme Renewal", Company: "Acme", Value: 1200, Status: model.StatusWaiting, StageID: 2,
			CreatedAt: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Name: "", Company: "Globex", Value: math.NaN(), Status: "on_hold", StageID: 9},
	}
}

func TestDealList_Rows(t *testing.T) {
	list := NewDealList(model.DefaultStatusCatalog(), themes.Default)
	list.SetStages([]model.Stage{{ID: 2, Name: "Qualified"}})
	list.Resize(120, 10)
	list.SetDeals(testDeals())

	rows := list.buildRows()
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Acme Renewal", "Acme", "$1200.00", "Waiting", "Qualified", "2025-02-03"}, []string(rows[0]))
	assert.Equal(t, []string{"—", "Globex", "—", "on_hold", "#9", "—"}, []string(rows[1]))

	selected, ok := list.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", selected.ID)

	list, _ = list.Update(tuitest.KeyDown())
	selected, _ = list.Selected()
	assert.Equal(t, "2", selected.ID)
}

func TestDealList_EmptyAndCursorClamp(t *testing.T) {
	list := NewDealList(model.DefaultStatusCatalog(), themes.Default)
	list.SetDeals(testDeals())
	list, _ = list.Update(tuitest.KeyDown())

	list.SetDeals(testDeals()[:1])
	selected, ok := list.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", selected.ID)

	list.SetDeals(nil)
	_, ok = list.Selected()
	assert.False(t, ok)
	assert.Contains(t, list.View(), "No deals match")
}

func TestStatusMenu(t *testing.T) {
	catalog := model.DefaultStatusCatalog()
	menu := NewStatusMenu(catalog, filter.NewStatusSet(model.StatusWaiting), themes.Default)

	assert.Contains(t, menu.View(), "[x]")

	menu, _ = menu.Update(tuitest.KeyDown())
	menu, cmd := menu.Update(tuitest.KeySpace())
	require.NotNil(t, cmd)
	assert.Equal(t, StatusToggledMsg{Status: model.StatusWaiting}, cmd())

	for range 10 {
		menu, _ = menu.Update(tuitest.KeyDown())
	}
	assert.Equal(t, len(catalog)-1, menu.Cursor())

	_, cmd = menu.Update(tuitest.KeyEsc())
	require.NotNil(t, cmd)
	assert.Equal(t, MenuClosedMsg{}, cmd())
}

func TestSortMenu(t *testing.T) {
	menu := NewSortMenu(filter.SortByCompany, filter.Descending, themes.Default)
	assert.Equal(t, 7, menu.Cursor())
	assert.Contains(t, menu.View(), "(•) Company (Z-A)")

	menu, _ = menu.Update(tuitest.KeyUp())
	_, cmd := menu.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	chosen, ok := cmd().(SortChosenMsg)
	require.True(t, ok)
	assert.Equal(t, filter.SortByCompany, chosen.Option.Field)
	assert.Equal(t, filter.Ascending, chosen.Option.Order)
}

func TestFilterBar_Summary(t *testing.T) {
	catalog := model.DefaultStatusCatalog()
	published := filter.Clear()
	edited := published.
		WithStatuses(model.StatusWon, model.StatusLost).
		WithSort(filter.SortByValue, filter.Descending).
		WithStage(3).
		WithHideClosed(false)

	bar := NewFilterBar(published, catalog, themes.Default)
	bar.SetStages([]model.Stage{{ID: 3, Name: "Proposal"}})
	bar.SetSpec(edited, published)

	view := tuitest.StripANSI(bar.View())
	assert.True(t, tuitest.ContainsInOrder(view,
		"Status: Won, Lost", "Sort: Highest value", "Stage: Proposal", "Closed: shown", "unapplied"))

	bar.SetSpec(edited, edited)
	assert.NotContains(t, tuitest.StripANSI(bar.View()), "unapplied")
}

func TestFilterBar_Input(t *testing.T) {
	bar := NewFilterBar(filter.Clear(), model.DefaultStatusCatalog(), themes.Default)
	bar.Focus()
	require.True(t, bar.Focused())

	for _, msg := range tuitest.Type("acme") {
		bar, _ = bar.Update(msg)
	}
	assert.Equal(t, "acme", bar.Value())

	bar.Blur()
	bar.SetSpec(filter.Clear().WithSearch("globex"), filter.Clear())
	assert.Equal(t, "globex", bar.Value(), "blurred input follows the edited filter")
}
