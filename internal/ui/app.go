package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/five82/prlogs/internal/buildlog"
	"github.com/five82/prlogs/internal/prefs"
	"github.com/five82/prlogs/internal/state"
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Store          *state.Store
	Reload         func() // requests a fetch; nil disables the reload key
	Panel          buildlog.PanelOptions
	Source         string // shown in the header, e.g. "five82/spindle" or a snapshot path
	PollTick       time.Duration
	ThemeName      string
	ShowTimestamps bool
	PrefsPath      string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	store     *state.Store
	reload    func()
	panelOpts buildlog.PanelOptions
	source    string
	prefsPath string
	pollTick  time.Duration

	// UI state
	keys           keyMap
	help           help.Model
	spinner        spinner.Model
	theme          Theme
	width          int
	height         int
	ready          bool
	showHelp       bool
	showTimestamps bool
	hscroll        int
	notice         string

	// Data state
	snapshot   state.Snapshot
	generation uint64
	panel      *buildlog.Panel
	buildErr   error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	m := Model{
		ctx:            ctx,
		store:          opts.Store,
		reload:         opts.Reload,
		panelOpts:      opts.Panel,
		source:         opts.Source,
		prefsPath:      prefsPath,
		pollTick:       pollTick,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		showTimestamps: opts.ShowTimestamps,
	}
	m.setTheme(GetTheme(opts.ThemeName))
	return m
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted))
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	m.help.Styles.FullKey = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning))
	m.help.Styles.FullDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
	m.help.Styles.FullSeparator = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint))
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent))
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// applySnapshot rebuilds the panel when the store holds a newer result.
func (m *Model) applySnapshot(snap state.Snapshot) {
	m.snapshot = snap
	if !snap.HasResult || snap.Generation == m.generation {
		return
	}
	m.generation = snap.Generation
	res := snap.Result

	if m.panel == nil {
		p, err := buildlog.NewPanel(res.Jobs, res.PR, m.panelOpts)
		if err != nil {
			m.buildErr = err
			log.Error("build log tree", "pr", res.PR.Number, "err", err)
			return
		}
		m.panel = p
	} else if err := m.panel.Rebuild(res.Jobs, res.PR); err != nil {
		m.buildErr = err
		log.Error("rebuild log tree", "pr", res.PR.Number, "err", err)
		return
	}
	m.buildErr = nil
	m.panel.ReplaceMetadata(buildlog.NewMetadata(res.Metadata))
	log.Debug("log tree updated", "generation", snap.Generation, "visible", m.panel.Summary().Visible)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	m.notice = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.setTheme(GetTheme(NextTheme(m.theme.Name)))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if m.reload != nil {
			m.reload()
			m.snapshot.Loading = true
		}
		return m, nil

	case key.Matches(msg, m.keys.Timestamps):
		m.showTimestamps = !m.showTimestamps
		m.savePrefs()
		return m, nil
	}

	if m.panel == nil {
		return m, nil
	}
	return m.handleTreeKey(msg)
}

// handleTreeKey processes navigation and expansion keys.
func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	nav := m.panel.Navigator()
	body := m.bodyHeight()

	switch {
	case key.Matches(msg, m.keys.Down):
		m.panel.Navigate(1)
	case key.Matches(msg, m.keys.Up):
		m.panel.Navigate(-1)
	case key.Matches(msg, m.keys.Top):
		nav.Home()
	case key.Matches(msg, m.keys.Bottom):
		nav.End()
	case key.Matches(msg, m.keys.PageDown):
		nav.Page(1, body)
	case key.Matches(msg, m.keys.PageUp):
		nav.Page(-1, body)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.panel.Navigate(max(1, body/2))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.panel.Navigate(-max(1, body/2))
	case key.Matches(msg, m.keys.Parent):
		nav.Parent()
	case key.Matches(msg, m.keys.Toggle):
		m.panel.ToggleAtCursor()
	case key.Matches(msg, m.keys.NextError):
		m.jumpToError(buildlog.Forward)
	case key.Matches(msg, m.keys.PrevError):
		m.jumpToError(buildlog.Backward)
	case key.Matches(msg, m.keys.ExpandFailures):
		m.panel.ExpandFailures()
	case key.Matches(msg, m.keys.ExpandAll):
		m.panel.ExpandAll()
	case key.Matches(msg, m.keys.CollapseAll):
		m.panel.CollapseAll()
	case key.Matches(msg, m.keys.ScrollLeft):
		m.hscroll = max(0, m.hscroll-HorizontalScrollStep)
	case key.Matches(msg, m.keys.ScrollRight):
		m.hscroll += HorizontalScrollStep
	}
	return m, nil
}

func (m *Model) jumpToError(dir buildlog.Direction) {
	if _, ok := m.panel.JumpToNextError(dir); !ok {
		m.notice = "No errors found"
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	theme, stamps := m.theme.Name, m.showTimestamps
	if _, err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) {
		p.Theme = theme
		p.ShowTimestamps = stamps
	}); err != nil {
		log.Warn("save preferences", "path", m.prefsPath, "err", err)
	}
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}
	cmds = append(cmds, tickCmd(m.pollTick))
	return m, tea.Batch(cmds...)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
