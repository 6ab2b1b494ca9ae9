// ABOUTME: Event handling and state updates for the TUI
// ABOUTME: Implements the Bubble Tea Update() function and message handlers

package tui

import (
	"runtime/debug"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"mood-dashboard/analysis"
	"mood-dashboard/config"
	"mood-dashboard/dashboard"
)

// Update handles messages and updates the model
//
//nolint:ireturn // Bubble Tea framework requires returning tea.Model interface
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] Update panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

		return m, nil

	case resultMsg:
		m.handleResult(msg.res)

		return m, nil

	case configChangedMsg:
		m.reloadConfig()

		cmds := []tea.Cmd{m.page.drain()}
		if m.watcher != nil {
			cmds = append(cmds, waitForConfigChange(m.watcher))
		}

		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			m.cancel()

			return m, tea.Quit

		case key.Matches(msg, keys.Tab):
			m.handleTabKey()

		case key.Matches(msg, keys.Up):
			m.handleUpKey()

		case key.Matches(msg, keys.Down):
			m.handleDownKey()

		case key.Matches(msg, keys.Left):
			m.handleCycleKey(false)

		case key.Matches(msg, keys.Right):
			m.handleCycleKey(true)

		case key.Matches(msg, keys.PageUp):
			m.moveCursor(-m.scroller.Visible())

		case key.Matches(msg, keys.PageDown):
			m.moveCursor(m.scroller.Visible())

		case key.Matches(msg, keys.Home):
			m.moveCursor(-len(m.page.cards))

		case key.Matches(msg, keys.End):
			m.moveCursor(len(m.page.cards))

		case key.Matches(msg, keys.Refresh):
			m.ctrl.Trigger(m.ctx)

		case key.Matches(msg, keys.Undo):
			m.undo()

		case key.Matches(msg, keys.Redo):
			m.redo()
		}

		return m, m.page.drain()
	}

	return m, nil
}

// resize recalculates the track list viewport for a new terminal size
func (m *model) resize(width, height int) {
	m.width = width
	m.height = height

	m.viewport.Width = max(minViewportWidth, width-panelPadding)
	m.viewport.Height = max(minViewportHeight, height-totalUIChrome)
	m.scroller.SetHeight(m.viewport.Height)

	m.updateViewportContent()
}

// handleResult applies a finished request through the controller.
// Failed and superseded requests leave the screen as it is; the controller logs failures.
func (m *model) handleResult(res dashboard.Result) {
	if !m.ctrl.Apply(res) {
		m.debugf("[TUI] Request %d not applied", res.Request.Seq)

		return
	}

	m.debugf("[TUI] Applied request %d: %d tracks", res.Request.Seq, len(res.Response.Tracks))
	m.tracks = res.Response.Tracks
	m.cursorPos = 0
	m.updateViewportContent()
}

// reloadConfig re-reads the config file and re-runs the analysis against it
func (m *model) reloadConfig() {
	cfg, err := config.LoadConfig(m.configPath)
	if err == nil {
		err = cfg.Validate()
	}

	if err != nil {
		m.debugf("[TUI] Config reload failed: %v", err)
		m.setStatus("Config not reloaded: " + err.Error())

		return
	}

	m.sharedConfig.Update(cfg)
	m.ctrl.Configure(dashboard.Options{
		Defaults:            cfg.Selection(),
		FenceStaleResponses: cfg.FenceStaleResponses,
	})

	if w, ok := m.page.selectors.Find(dashboard.MoodSelectorID); ok {
		w.SetOptions(cfg.Choices.Moods)
	}

	if w, ok := m.page.selectors.Find(dashboard.SortSelectorID); ok {
		w.SetOptions(cfg.Choices.SortMethods)
	}

	m.setStatus("Config reloaded")
	m.ctrl.Trigger(m.ctx)
}

// handleTabKey handles panel switching
func (m *model) handleTabKey() {
	if m.focusedPanel == panelSelectors {
		m.focusedPanel = panelTracks
	} else {
		m.focusedPanel = panelSelectors
	}

	m.updateViewportContent()
}

// handleUpKey handles Up/k key press (context-aware navigation)
func (m *model) handleUpKey() {
	if m.focusedPanel == panelSelectors {
		m.page.selectors.SelectPrevious()
	} else {
		m.moveCursor(-1)
	}
}

// handleDownKey handles Down/j key press (context-aware navigation)
func (m *model) handleDownKey() {
	if m.focusedPanel == panelSelectors {
		m.page.selectors.SelectNext()
	} else {
		m.moveCursor(1)
	}
}

// handleCycleKey changes the focused selector's value, recording it for undo
func (m *model) handleCycleKey(forward bool) {
	if m.focusedPanel != panelSelectors {
		return
	}

	w, ok := m.page.selectors.Current()
	if !ok {
		return
	}

	before := m.ctrl.Selection()

	if forward {
		w.Next()
	} else {
		w.Prev()
	}

	if m.ctrl.Selection() != before {
		m.undoMgr.Push(before)
	}
}

// moveCursor moves the track cursor by delta, clamped to the list
func (m *model) moveCursor(delta int) {
	if len(m.page.cards) == 0 {
		return
	}

	m.cursorPos = max(0, min(len(m.page.cards)-1, m.cursorPos+delta))
	m.updateViewportContent()
}

// undo restores the previous selection
func (m *model) undo() {
	sel, ok := m.undoMgr.Undo(m.ctrl.Selection())
	if !ok {
		m.setStatus("Nothing to undo")

		return
	}

	m.restoreSelection(sel)
	m.setStatus("Undo")
}

// redo restores the next selection
func (m *model) redo() {
	sel, ok := m.undoMgr.Redo(m.ctrl.Selection())
	if !ok {
		m.setStatus("Nothing to redo")

		return
	}

	m.restoreSelection(sel)
	m.setStatus("Redo")
}

// restoreSelection sets every selector without firing listeners, then runs one analysis
func (m *model) restoreSelection(sel analysis.Selection) {
	values := map[string]string{
		dashboard.MoodSelectorID:          sel.Mood,
		dashboard.VisualizationSelectorID: string(sel.VisualizationType),
		dashboard.SortSelectorID:          sel.SortMethod,
	}

	for _, w := range m.page.selectors.All() {
		w.restore(values[w.ID])
	}

	m.ctrl.Trigger(m.ctx)
}
