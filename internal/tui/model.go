// Package tui implements the interactive deal browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/dealflow/internal/filter"
	"github.com/Veraticus/dealflow/internal/filterbar"
	"github.com/Veraticus/dealflow/internal/model"
	"github.com/Veraticus/dealflow/internal/service"
	"github.com/Veraticus/dealflow/internal/tui/components"
	"github.com/Veraticus/dealflow/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// noticeTTL is how long a notice stays in the status bar.
const noticeTTL = 3 * time.Second

// ErrNoSource is returned when the browser has neither a source nor deals.
var ErrNoSource = errors.New("tui: no deal source configured")

// Mode is the current input mode.
type Mode int

// Input modes.
const (
	ModeBrowse Mode = iota
	ModeSearch
	ModeStatusMenu
	ModeSortMenu
	ModeHelp
)

// Model holds the browser state.
type Model struct {
	theme      themes.Theme
	source     service.DealSource
	lastError  error
	controller *filterbar.Controller
	evaluator  *filter.Evaluator
	sink       *programSink
	notice     *filterbar.Notice
	catalog    model.StatusCatalog
	deals      []model.Deal
	stages     []model.Stage
	list       components.DealListModel
	filterBar  components.FilterBarModel
	statusMenu components.StatusMenuModel
	sortMenu   components.SortMenuModel
	help       help.Model
	keymap     KeyMap
	noticeID   int
	width      int
	height     int
	mode       Mode
	ready      bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	sink := &programSink{}
	initial := cfg.Filters.InitialSpec()

	controller := filterbar.New(initial,
		func(filter.Spec) { sink.Send(filterChangedMsg{}) },
		filterbar.WithNotifier(filterbar.NotifierFunc(func(n filterbar.Notice) {
			sink.Send(noticeMsg{notice: n})
		})),
		filterbar.WithDebounce(cfg.Filters.Debounce),
		filterbar.WithClock(cfg.Clock),
	)

	m := Model{
		theme:      cfg.Theme,
		source:     cfg.Source,
		controller: controller,
		evaluator:  filter.NewEvaluator(cfg.Filters.ClosedFunc()),
		sink:       sink,
		catalog:    cfg.Catalog,
		list:       components.NewDealList(cfg.Catalog, cfg.Theme),
		filterBar:  components.NewFilterBar(initial, cfg.Catalog, cfg.Theme),
		help:       help.New(),
		keymap:     DefaultKeyMap(),
		width:      cfg.Width,
		height:     cfg.Height,
		mode:       ModeBrowse,
	}
	m.handleResize()

	if cfg.Deals != nil {
		m.setData(cfg.Deals, cfg.Stages)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.ready || m.source == nil {
		return nil
	}
	return m.loadDeals()
}

func (m Model) loadDeals() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		ctx := context.Background()
		deals, err := source.ListDeals(ctx)
		if err != nil {
			return dealsLoadedMsg{err: fmt.Errorf("failed to load deals: %w", err)}
		}
		stages, err := source.ListStages(ctx)
		if err != nil {
			return dealsLoadedMsg{err: fmt.Errorf("failed to load stages: %w", err)}
		}
		return dealsLoadedMsg{deals: deals, stages: stages}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case dealsLoadedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.ready = true
			return m, nil
		}
		m.setData(msg.deals, msg.stages)
		return m, nil

	case filterChangedMsg:
		m.refresh()
		return m, nil

	case noticeMsg:
		m.noticeID++
		notice := msg.notice
		m.notice = &notice
		id := m.noticeID
		return m, tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{id: id} })

	case noticeExpiredMsg:
		if msg.id == m.noticeID {
			m.notice = nil
		}
		return m, nil

	case components.StatusToggledMsg:
		if empty := m.controller.ToggleStatus(msg.Status); empty {
			m.mode = ModeBrowse
		}
		m.refresh()
		return m, nil

	case components.SortChosenMsg:
		m.controller.ApplySort(msg.Option.Field, msg.Option.Order)
		m.mode = ModeBrowse
		m.refresh()
		return m, nil

	case components.MenuClosedMsg:
		m.mode = ModeBrowse
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		return m.quit()
	}

	var cmd tea.Cmd
	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)

	case ModeStatusMenu:
		m.statusMenu, cmd = m.statusMenu.Update(msg)
		return m, cmd

	case ModeSortMenu:
		m.sortMenu, cmd = m.sortMenu.Update(msg)
		return m, cmd

	case ModeHelp:
		if key.Matches(msg, m.keymap.Help, m.keymap.Quit) || msg.Type == tea.KeyEsc {
			m.mode = ModeBrowse
		}
		return m, nil
	}

	spec := m.controller.Spec()
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m.quit()

	case key.Matches(msg, m.keymap.Search):
		m.mode = ModeSearch
		return m, m.filterBar.Focus()

	case key.Matches(msg, m.keymap.StatusMenu):
		m.statusMenu = components.NewStatusMenu(m.catalog, spec.Statuses(), m.theme)
		m.mode = ModeStatusMenu

	case key.Matches(msg, m.keymap.SortMenu):
		m.sortMenu = components.NewSortMenu(spec.SortBy(), spec.SortOrder(), m.theme)
		m.mode = ModeSortMenu

	case key.Matches(msg, m.keymap.ToggleClosed):
		m.controller.SetHideClosed(!spec.HidesClosed())
		m.syncFilterBar()

	case key.Matches(msg, m.keymap.PrevStage):
		m.cycleStage(-1)

	case key.Matches(msg, m.keymap.NextStage):
		m.cycleStage(1)

	case key.Matches(msg, m.keymap.Apply):
		m.controller.Apply()
		m.refresh()

	case key.Matches(msg, m.keymap.Clear):
		m.controller.Clear()
		m.filterBar.SetValue("")
		m.refresh()

	case key.Matches(msg, m.keymap.Help):
		m.mode = ModeHelp

	default:
		m.list, cmd = m.list.Update(msg)
	}

	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filterBar.Blur()
		m.mode = ModeBrowse
		return m, nil

	case tea.KeyEsc:
		m.filterBar.SetValue("")
		m.filterBar.Blur()
		m.controller.SetSearch("")
		m.mode = ModeBrowse
		m.syncFilterBar()
		return m, nil
	}

	before := m.filterBar.Value()
	var cmd tea.Cmd
	m.filterBar, cmd = m.filterBar.Update(msg)
	if after := m.filterBar.Value(); after != before {
		m.controller.SetSearch(after)
		m.syncFilterBar()
	}
	return m, cmd
}

// cycleStage moves the staged stage scope through "all stages" followed by
// every stage in pipeline order.
func (m *Model) cycleStage(delta int) {
	if len(m.stages) == 0 {
		return
	}

	current := -1
	if id, ok := m.controller.Spec().StageID(); ok {
		for i, s := range m.stages {
			if s.ID == id {
				current = i
				break
			}
		}
	}

	// Positions run from -1 (all stages) to len-1.
	n := len(m.stages) + 1
	next := ((current+1+delta)%n+n)%n - 1

	if next < 0 {
		m.controller.ClearStage()
	} else {
		m.controller.SetStage(m.stages[next].ID)
	}
	m.syncFilterBar()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.controller.Close()
	return m, tea.Quit
}

func (m *Model) setData(deals []model.Deal, stages []model.Stage) {
	m.deals = deals
	m.stages = stages
	m.list.SetStages(stages)
	m.filterBar.SetStages(stages)
	m.ready = true
	m.refresh()
}

// refresh re-evaluates the view from the last published spec.
func (m *Model) refresh() {
	m.list.SetDeals(m.evaluator.Apply(m.deals, m.controller.Published()))
	m.syncFilterBar()
}

func (m *Model) syncFilterBar() {
	edited := m.controller.Spec()
	m.filterBar.SetSpec(edited, m.controller.Published())
	m.statusMenu.SetSelected(edited.Statuses())
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	// header (2) + filter bar (2) + table header (2) + status bar (1) + borders (2)
	m.list.Resize(m.width-2, m.height-9)
	m.filterBar.Resize(m.width - 2)
	m.help.Width = m.width - 2
}

// Controller exposes the filter controller, mainly for tests.
func (m Model) Controller() *filterbar.Controller {
	return m.controller
}

// Mode returns the current input mode.
func (m Model) Mode() Mode {
	return m.mode
}

// Visible returns the deals currently displayed.
func (m Model) Visible() []model.Deal {
	return m.list.Deals()
}
