// ABOUTME: Rendering functions for TUI components
// ABOUTME: Selectors, chart panel, track cards, status and help lines

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/muesli/reflow/truncate"

	"mood-dashboard/dashboard"
)

// renderSelectors renders the selector panel
func (m model) renderSelectors() string {
	var s strings.Builder

	title := "Analysis"
	if m.focusedPanel == panelSelectors {
		title = "► " + title + " [FOCUSED]"
	}

	s.WriteString(titleStyle.Render(title) + "\n\n")

	for i, w := range m.page.selectors.All() {
		prefix := "  "
		if i == m.page.selectors.Selected() {
			prefix = "► "
		}

		line := fmt.Sprintf("%s%-14s ‹ %s ›", prefix, w.Label, w.Value())

		if i == m.page.selectors.Selected() && m.focusedPanel == panelSelectors {
			s.WriteString(selectedSelectorStyle.Render(line) + "\n")
		} else {
			s.WriteString(selectorStyle.Render(line) + "\n")
		}
	}

	return s.String()
}

// renderChart renders the live chart, or nothing when the region is blank
func (m model) renderChart(width int) string {
	s := titleStyle.Render("Analysis results") + "\n\n"

	ch, ok := m.ctrl.Current()
	if !ok {
		return s
	}

	if tc, ok := ch.(*termChart); ok {
		s += tc.Render(width)
	}

	return s
}

// renderTrackList renders the track list title and viewport
func (m model) renderTrackList() string {
	title := "Tracks"
	if m.focusedPanel == panelTracks {
		title = "► " + title + " [FOCUSED]"
	}

	return titleStyle.Render(title) + "\n\n" + m.viewport.View()
}

// updateViewportContent builds the card list and scrolls it to the cursor
func (m *model) updateViewportContent() {
	width := max(minViewportWidth, m.viewport.Width-2)

	var content strings.Builder

	for i, card := range m.page.cards {
		name := truncate.StringWithTail(card.Name, uint(width), "…")
		if i == m.cursorPos && m.focusedPanel == panelTracks {
			name = cursorStyle.Render(name)
		} else {
			name = trackNameStyle.Render(name)
		}

		content.WriteString(name + "\n")
		content.WriteString(trackMetaStyle.Render(truncate.StringWithTail(card.Artist, uint(width), "…")) + "\n")
		content.WriteString(trackMetaStyle.Render(card.Detail()) + "\n\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.SetYOffset(m.scroller.Offset(m.cursorPos, len(m.page.cards)))
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMessageDuration {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	sel := m.ctrl.Selection()

	trackInfo := fmt.Sprintf("%d tracks", len(m.page.cards))
	if len(m.page.cards) > 0 {
		trackInfo += fmt.Sprintf(" | Track %d/%d", m.cursorPos+1, len(m.page.cards))
	}

	status := fmt.Sprintf("%s | %s | %s | %s | U:%d R:%d",
		sel.Mood,
		sel.VisualizationType,
		sel.SortMethod,
		trackInfo,
		m.undoMgr.UndoSize(),
		m.undoMgr.RedoSize(),
	)

	return statusStyle.Width(m.width).Render(status)
}

// renderSummary renders mean metrics of the displayed tracks
func (m model) renderSummary() string {
	return helpStyle.Render(" " + dashboard.Summarize(m.tracks).String())
}

// renderHelp renders the help text
func (m model) renderHelp() string {
	return helpStyle.Render(" Tab: switch panel | ↑/↓/j/k: navigate | ←/→/h/l: change value | r: refresh | u: undo | ctrl+r: redo | q: quit")
}
