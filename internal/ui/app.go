package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/ErikMN/dnf-ui/internal/app"
	"github.com/ErikMN/dnf-ui/internal/dnf"
	"github.com/ErikMN/dnf-ui/internal/prefs"
	"github.com/ErikMN/dnf-ui/internal/task"
)

// listKind says where the current package listing came from.
type listKind int

const (
	listNone listKind = iota
	listInstalled
	listSearch
)

// overlay identifies the modal overlay currently covering the main view.
type overlay int

const (
	overlayNone overlay = iota
	overlayHelp
	overlayHistory
	overlayPending
	overlayLogs
)

// severity drives the status line color.
type severity int

const (
	statusNeutral severity = iota
	statusWorking
	statusGood
	statusBad
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	App       *app.App
	Logger    *slog.Logger
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Wiring
	ctx       context.Context
	app       *app.App
	log       *slog.Logger
	prefsPath string
	logPath   string

	// UI state
	theme        Theme
	keys         keyMap
	width        int
	height       int
	ready        bool
	splitPercent int
	privileged   bool

	// Package list
	pkgs      []dnf.Package
	listKind  listKind
	listTitle string
	cursor    int
	scroll    int

	// Search
	searchInput    textinput.Model
	inDescriptions bool
	exact          bool
	searchID       uuid.UUID

	// In-flight operations, for matching error completions back to the
	// action that started them.
	listID    uuid.UUID
	refreshID uuid.UUID
	applyID   uuid.UUID

	// Detail pane
	detailTab detailTab
	detailVP  viewport.Model
	detail    detailData
	fetch     detailFetch

	// Status line
	status    string
	statusSev severity

	// Busy indicator
	spin     spinner.Model
	spinning bool

	// Overlays
	overlay       overlay
	historyTerms  []string
	historyCursor int
	logLines      []string
	logScroll     int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	split := opts.Prefs.SplitPercent
	if split == 0 {
		split = defaultSplitPercent
	}

	theme := GetTheme(opts.Prefs.Theme)

	input := textinput.New()
	input.Placeholder = "package name"
	input.CharLimit = 128
	input.Prompt = ""
	styleInput(&input, theme)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle(theme)

	var privileged bool
	if opts.App != nil {
		privileged = opts.App.CanApply()
	}

	return Model{
		ctx:            ctx,
		app:            opts.App,
		log:            logger,
		prefsPath:      prefsPath,
		logPath:        opts.LogPath,
		theme:          theme,
		keys:           DefaultKeyMap(),
		splitPercent:   clampSplit(split),
		privileged:     privileged,
		searchInput:    input,
		inDescriptions: opts.Prefs.InDescriptions,
		exact:          opts.Prefs.Exact,
		spin:           sp,
		status:         "Ready.",
		statusSev:      statusNeutral,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		awaitCompletion(m.app.Completions()),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.initDetailViewport()
		}
		m.ready = true
		m.layout()
		m.refreshDetail()
		return m, nil

	case spinner.TickMsg:
		if !m.spinning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case completionMsg:
		return m.handleCompletion(task.Completion(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case overlayHelp:
		return m.renderHelp()
	case overlayHistory:
		return m.renderHistory()
	case overlayPending:
		return m.renderPending()
	case overlayLogs:
		return m.renderLogs()
	}

	return m.renderMain()
}

// renderMain renders the full screen: header, search bar, the two panes,
// status line, and command bar.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")

	listWidth, detailWidth := m.paneWidths()
	height := m.paneHeight()
	left := m.renderPackagesPane(listWidth, height)
	right := m.renderDetailPane(detailWidth, height)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())

	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Overlays capture input first.
	switch m.overlay {
	case overlayHelp:
		// Any key closes help.
		m.overlay = overlayNone
		return m, nil
	case overlayHistory:
		return m.handleHistoryKey(msg)
	case overlayPending:
		return m.handlePendingKey(msg)
	case overlayLogs:
		return m.handleLogsKey(msg)
	}

	// A focused search input owns most keys.
	if m.searchInput.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = overlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.applyTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		m.setStatus("Theme: "+m.theme.Name+".", statusNeutral)
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.ToggleDesc):
		m.inDescriptions = !m.inDescriptions
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleExact):
		m.exact = !m.exact
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ListInstalled):
		return m.startListInstalled()

	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()

	case key.Matches(msg, m.keys.ClearList):
		cmd := m.clearList()
		m.setStatus("List cleared.", statusNeutral)
		return m, cmd

	case key.Matches(msg, m.keys.ClearCache):
		m.app.ClearResults()
		m.setStatus("Result cache cleared.", statusNeutral)
		return m, nil

	case key.Matches(msg, m.keys.MarkInstall):
		m.markInstall()
		return m, nil

	case key.Matches(msg, m.keys.MarkRemove):
		m.markRemove()
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		return m.startApply()

	case key.Matches(msg, m.keys.History):
		return m.openHistory()

	case key.Matches(msg, m.keys.Pending):
		m.overlay = overlayPending
		return m, nil

	case key.Matches(msg, m.keys.Logs):
		return m.openLogs()

	case key.Matches(msg, m.keys.NextTab):
		m.setTab((m.detailTab + 1) % tabCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.setTab((m.detailTab + tabCount - 1) % tabCount)
		return m, nil

	case key.Matches(msg, m.keys.DetailUp):
		m.detailVP.LineUp(1)
		return m, nil

	case key.Matches(msg, m.keys.DetailDown):
		m.detailVP.LineDown(1)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m, m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		return m, m.moveCursor(1)

	case key.Matches(msg, m.keys.Top):
		return m, m.cursorTo(0)

	case key.Matches(msg, m.keys.Bottom):
		return m, m.cursorTo(len(m.pkgs) - 1)

	case key.Matches(msg, m.keys.PageUp):
		return m, m.moveCursor(-m.maxVisibleRows())

	case key.Matches(msg, m.keys.PageDown):
		return m, m.moveCursor(m.maxVisibleRows())

	case key.Matches(msg, m.keys.ShrinkSplit):
		m.splitPercent = clampSplit(m.splitPercent - splitStep)
		m.savePrefs()
		m.layout()
		m.refreshDetail()
		return m, nil

	case key.Matches(msg, m.keys.GrowSplit):
		m.splitPercent = clampSplit(m.splitPercent + splitStep)
		m.savePrefs()
		m.layout()
		m.refreshDetail()
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes keyboard input while the search input is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.searchInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		return m.startSearch()

	case key.Matches(msg, m.keys.ToggleDesc):
		m.inDescriptions = !m.inDescriptions
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleExact):
		m.exact = !m.exact
		m.savePrefs()
		return m, nil
	}

	// The input is locked while a search runs, like the entry in a form
	// being submitted.
	if m.searchID != uuid.Nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// startSearch dispatches the query currently in the search input.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	term := strings.TrimSpace(m.searchInput.Value())
	if term == "" {
		return m, nil
	}
	if m.searchID != uuid.Nil {
		m.setStatus("A search is already running.", statusNeutral)
		return m, nil
	}

	q := dnf.Query{Term: term, InDescriptions: m.inDescriptions, Exact: m.exact}
	m.searchID = m.app.Search(m.ctx, q)
	m.searchInput.Blur()
	m.setStatus(fmt.Sprintf("Searching for '%s'...", term), statusWorking)
	return m, m.startSpinner()
}

// startListInstalled dispatches a full installed listing.
func (m Model) startListInstalled() (tea.Model, tea.Cmd) {
	m.listID = m.app.ListInstalled(m.ctx)
	m.setStatus("Listing installed packages...", statusWorking)
	return m, m.startSpinner()
}

// startRefresh rebuilds the engine against current repository metadata.
func (m Model) startRefresh() (tea.Model, tea.Cmd) {
	id, err := m.app.RefreshRepos(m.ctx)
	if err != nil {
		m.setStatus("Another operation is already running.", statusBad)
		return m, nil
	}
	m.refreshID = id
	m.setStatus("Refreshing repositories...", statusWorking)
	return m, m.startSpinner()
}

// startApply runs the staged transaction.
func (m Model) startApply() (tea.Model, tea.Cmd) {
	id, err := m.app.Apply(m.ctx)
	switch {
	case errors.Is(err, app.ErrNothingStaged):
		m.setStatus("Nothing staged to apply.", statusBad)
		return m, nil
	case errors.Is(err, app.ErrPrivilege):
		m.setStatus("Applying changes requires elevated privileges.", statusBad)
		return m, nil
	case errors.Is(err, task.ErrBusy):
		m.setStatus("Another operation is already running.", statusBad)
		return m, nil
	case err != nil:
		m.setStatus("Error applying changes.", statusBad)
		m.log.Warn("apply rejected", "error", err)
		return m, nil
	}
	m.applyID = id
	m.setStatus("Applying changes...", statusWorking)
	return m, m.startSpinner()
}

// startSpinner begins the busy animation unless it is already running.
func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spin.Tick
}

// setStatus replaces the status line.
func (m *Model) setStatus(text string, sev severity) {
	m.status = text
	m.statusSev = sev
}

// applyTheme switches the palette and restyles the themed components.
func (m *Model) applyTheme(t Theme) {
	m.theme = t
	styleInput(&m.searchInput, t)
	m.spin.Style = spinnerStyle(t)
}

// styleInput applies theme colors to the search input. The input sits on a
// Surface bar, so its styles carry that background.
func styleInput(input *textinput.Model, t Theme) {
	bg := lipgloss.Color(t.Surface)
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Background(bg)
	input.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)).Background(bg)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)).Background(bg)
}

func spinnerStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Accent)).
		Background(lipgloss.Color(t.Surface))
}

// savePrefs persists the current user preferences. Losing a preference is
// never worth interrupting the user over.
func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	_ = prefs.Save(m.prefsPath, prefs.Prefs{
		Theme:          m.theme.Name,
		SplitPercent:   m.splitPercent,
		InDescriptions: m.inDescriptions,
		Exact:          m.exact,
	})
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
