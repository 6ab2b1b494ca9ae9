// ABOUTME: Layout of the dashboard screen
// ABOUTME: Implements the Bubble Tea View() function

package tui

import (
	"runtime/debug"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.debugf("[PANIC] View panic: %v", r)
			m.debugf("[PANIC] Stack trace: %s", string(debug.Stack()))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Exiting...\n"
	}

	chartWidth := max(minViewportWidth*2, m.width-selectorPanelWidth-panelPadding)

	leftPanelStyle := lipgloss.NewStyle().
		Width(selectorPanelWidth).
		Height(chartPanelHeight).
		Padding(0, 1)

	rightPanelStyle := lipgloss.NewStyle().
		Width(chartWidth).
		Height(chartPanelHeight).
		MaxHeight(chartPanelHeight).
		Padding(0, 1)

	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftPanelStyle.Render(m.renderSelectors()),
		rightPanelStyle.Render(m.renderChart(chartWidth-2)),
	)

	return top + "\n" +
		m.renderTrackList() + "\n" +
		m.renderStatus() + "\n" +
		m.renderSummary() + "\n" +
		m.renderHelp()
}
