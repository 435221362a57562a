package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/prefs"
	"vitrine/internal/product"
	"vitrine/internal/state"
	"vitrine/internal/validate"
)

// screenID identifies the active screen.
type screenID int

const (
	screenList screenID = iota
	screenForm
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    product.Accessor
	Store     *state.Store
	ThemeName string
	PageSize  int
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    product.Accessor
	store     *state.Store
	prefsPath string
	snd       *sender

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool

	showHelp bool
	screen   screenID
	snapshot state.Snapshot
	list     listState
	form     *formState
	modal    Modal
}

// New creates the root model.
func New(opts Options, snd *sender) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		prefsPath: prefsPath,
		snd:       snd,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
		screen:    screenList,
		list:      newListState(opts.PageSize),
	}
}

// Run boots the UI until quit or context cancellation.
func Run(opts Options) error {
	snd := &sender{}
	m := New(opts, snd)
	p := tea.NewProgram(m)
	snd.bind(p)
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		loadCmd(m.ctx, m.store),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.list.search.Width = searchWidth(m.width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case loadDoneMsg:
		m.refresh()
		return m, nil

	case createDoneMsg:
		m.refresh()
		if msg.err == nil {
			// Create navigates straight back to the list; the new record is
			// already in the cache.
			m.leaveForm()
		}
		return m, nil

	case updateDoneMsg:
		m.refresh()
		if msg.err == nil {
			// Update stays on the form; the user dismisses the confirmation
			// before deciding to leave.
			m.modal = successModal{message: "The record \"" + msg.rec.Name + "\" has been updated."}
		}
		return m, nil

	case deleteDoneMsg:
		m.refresh()
		if msg.err == nil {
			m.modal = successModal{message: "The record \"" + msg.name + "\" has been removed."}
			m.list.clampCursor(len(m.visibleRows()))
		}
		return m, nil

	case editRecordMsg:
		m.refresh()
		if msg.err != nil {
			// The record is unreachable; stay on the list, where the store's
			// error state explains why.
			return m, nil
		}
		m.enterEdit(msg.rec)
		return m, nil

	case uniqueOutcomeMsg:
		if m.form != nil {
			m.form.ctrl.ApplyUniqueOutcome(validate.Outcome(msg))
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input: modal first, then help, then the active
// screen.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modal != nil {
		modal, cmd, closed := m.modal.Update(msg, m.keys)
		m.modal = modal
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.screen == screenForm {
		return m.handleFormKey(msg)
	}
	return m.handleListKey(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var content string
	switch m.screen {
	case screenForm:
		content = m.renderForm()
	default:
		content = m.renderList()
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	if m.modal != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.modal.View(m.theme, m.width-4))
	}
	return view
}

// refresh re-reads the store snapshot so every derived view is recomputed
// against current data.
func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
}

// cycleTheme advances the theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.savePrefs()
}

func (m *Model) savePrefs() {
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:    m.theme.Name,
		PageSize: m.list.view.PageSize(),
	})
}
