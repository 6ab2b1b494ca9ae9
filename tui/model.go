// ABOUTME: Terminal UI model and core state management
// ABOUTME: Bubble Tea model hosting the dashboard controller and its page

// Package tui provides the interactive terminal mood dashboard.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"mood-dashboard/analysis"
	"mood-dashboard/config"
	"mood-dashboard/dashboard"
)

// Panel identifiers
const (
	panelSelectors = "selectors"
	panelTracks    = "tracks"
)

// Layout constants for UI dimensions
const (
	selectorPanelWidth = 44 // Left panel width for selectors
	panelPadding       = 2  // Horizontal spacing between panels
	chartPanelHeight   = 14 // Chart panel including its title

	// UI chrome heights (elements that reduce available track list space)
	titleHeight     = 2 // Track list title
	statusBarHeight = 1
	summaryHeight   = 1
	helpHeight      = 1
	spacingHeight   = 2
	totalUIChrome   = chartPanelHeight + titleHeight + statusBarHeight + summaryHeight + helpHeight + spacingHeight

	minViewportWidth  = 20
	minViewportHeight = cardLines
)

// Interaction constants
const (
	statusMessageDuration = 5 * time.Second // How long to show transient status messages
	maxUndoStackSize      = 50              // Maximum undo/redo history items
)

// resultMsg carries a finished analysis request back to the UI loop
type resultMsg struct {
	res dashboard.Result
}

// configChangedMsg signals that the config file was written
type configChangedMsg struct{}

// model holds the TUI state
type model struct {
	// Dependencies
	sharedConfig ConfigProvider
	debugf       func(string, ...interface{})
	configPath   string
	watcher      *config.Watcher

	// Dashboard
	page   *page
	ctrl   *dashboard.Controller
	tracks []analysis.Track // Tracks of the last applied response

	// Framework exception: Bubble Tea's Init/Update/View pattern doesn't allow
	// passing context through function parameters, so requests share this one.
	ctx    context.Context //nolint:containedctx // See framework exception above
	cancel context.CancelFunc

	// UI state
	width        int
	height       int
	quitting     bool
	statusMsg    string
	statusMsgAge time.Time
	focusedPanel string

	// Track browsing
	cursorPos int
	viewport  viewport.Model
	scroller  *ListScroller
	undoMgr   *UndoManager
}

// Key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Refresh  key.Binding
	Quit     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Undo     key.Binding
	Redo     key.Binding
	Tab      key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "navigate"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "navigate"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "previous value"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "next value"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "first track"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "last track"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	Redo: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "redo"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch panel"),
	),
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	chartTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	selectorStyle = lipgloss.NewStyle().
			Padding(0, 1)

	selectedSelectorStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("240")).
				Foreground(lipgloss.Color("15")).
				Bold(true).
				Padding(0, 1)

	trackNameStyle = lipgloss.NewStyle().
			Bold(true)

	trackMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cursorStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("240")).
			Foreground(lipgloss.Color("15"))
)

// Run starts the interactive dashboard
func Run(opts Options, deps Dependencies) error {
	m := initModel(opts, deps)
	defer m.cancel()
	defer m.ctrl.Close()

	if opts.WatchConfig && opts.ConfigPath != "" {
		w, err := config.Watch(opts.ConfigPath, func(err error) {
			m.debugf("[WATCHER] Error: %v", err)
		})
		if err != nil {
			// Live reload is optional; the dashboard works without it
			m.debugf("[WATCHER] %v", err)
		} else {
			m.watcher = w
			defer func() { _ = w.Close() }()
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// initModel creates the model, its page and the controller driving it
func initModel(opts Options, deps Dependencies) model {
	cfg := deps.SharedConfig.Get()

	debugf := deps.Debugf
	if debugf == nil {
		debugf = func(string, ...interface{}) {}
	}

	p := &page{
		selectors: NewSelectorManager(buildSelectors(cfg)),
		region:    &chartRegion{},
		hasList:   true,
	}

	ctx, cancel := context.WithCancel(context.Background())

	var ctrl *dashboard.Controller

	ctrl = dashboard.New(p, deps.Analyzer, termFactory{}, dashboard.Options{
		Defaults:            cfg.Selection(),
		FenceStaleResponses: cfg.FenceStaleResponses,
		Logger:              debugLogger(debugf),
		Schedule: func(ctx context.Context, req dashboard.Request) {
			debugf("[TUI] Request %d: %+v", req.Seq, req.Selection)
			p.queue(func() tea.Msg {
				return resultMsg{res: ctrl.Fetch(ctx, req)}
			})
		},
	})

	return model{
		sharedConfig: deps.SharedConfig,
		debugf:       debugf,
		configPath:   opts.ConfigPath,

		page: p,
		ctrl: ctrl,

		ctx:    ctx,
		cancel: cancel,

		viewport:     viewport.New(0, 0), // Width and height set on first WindowSizeMsg
		scroller:     NewListScroller(0, cardLines),
		focusedPanel: panelSelectors,
		undoMgr:      NewUndoManager(maxUndoStackSize),
	}
}

// buildSelectors creates the widgets enabled in cfg, in page order
func buildSelectors(cfg config.Config) []*SelectorWidget {
	var widgets []*SelectorWidget

	if cfg.Selectors.Mood {
		widgets = append(widgets, NewSelectorWidget(dashboard.MoodSelectorID, "Mood", cfg.Choices.Moods, cfg.Defaults.Mood))
	}

	if cfg.Selectors.Visualization {
		types := analysis.VisualizationTypes()
		options := make([]string, len(types))

		for i, t := range types {
			options[i] = string(t)
		}

		widgets = append(widgets, NewSelectorWidget(dashboard.VisualizationSelectorID, "Visualization", options, cfg.Defaults.VisualizationType))
	}

	if cfg.Selectors.Sorting {
		widgets = append(widgets, NewSelectorWidget(dashboard.SortSelectorID, "Sort by", cfg.Choices.SortMethods, cfg.Defaults.SortMethod))
	}

	return widgets
}

// Init subscribes the controller to the selectors and starts the first analysis
func (m model) Init() tea.Cmd {
	m.ctrl.Initialize(m.ctx)

	cmds := []tea.Cmd{m.page.drain()}
	if m.watcher != nil {
		cmds = append(cmds, waitForConfigChange(m.watcher))
	}

	return tea.Batch(cmds...)
}

// waitForConfigChange blocks until the watched config file is written
func waitForConfigChange(w *config.Watcher) tea.Cmd {
	return func() tea.Msg {
		if !w.Next() {
			return nil
		}

		return configChangedMsg{}
	}
}

// setStatus shows a transient message in the status bar
func (m *model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusMsgAge = time.Now()
}
