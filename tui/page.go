// ABOUTME: Terminal page the dashboard controller renders into
// ABOUTME: Shared by all copies of the Bubble Tea model through a pointer

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mood-dashboard/chart"
	"mood-dashboard/dashboard"
)

// page holds the elements the controller sees. The model is copied on every
// Update, so everything the controller keeps a reference to lives here.
type page struct {
	selectors *SelectorManager
	region    *chartRegion
	cards     []dashboard.Card
	hasList   bool
	pending   []tea.Cmd
}

// Selector looks up a selector widget by element id
func (p *page) Selector(id string) (dashboard.Selector, bool) {
	w, ok := p.selectors.Find(id)
	if !ok {
		return nil, false
	}

	return w, true
}

// ChartContainer returns the chart panel
func (p *page) ChartContainer() (dashboard.ChartContainer, bool) {
	if p.region == nil {
		return nil, false
	}

	return p.region, true
}

// TrackList returns the card list
func (p *page) TrackList() (dashboard.TrackList, bool) {
	if !p.hasList {
		return nil, false
	}

	return p, true
}

// Replace swaps in new track cards
func (p *page) Replace(cards []dashboard.Card) {
	p.cards = cards
}

// queue adds a command to run after the current Update returns
func (p *page) queue(cmd tea.Cmd) {
	p.pending = append(p.pending, cmd)
}

// drain returns the queued commands as one batch
func (p *page) drain() tea.Cmd {
	if len(p.pending) == 0 {
		return nil
	}

	cmds := p.pending
	p.pending = nil

	return tea.Batch(cmds...)
}

// chartRegion is the chart panel; its canvas is created on first render
type chartRegion struct {
	canvas *chart.Canvas
}

func (r *chartRegion) Surface() (chart.Surface, bool) {
	if r.canvas == nil {
		return nil, false
	}

	return r.canvas, true
}

func (r *chartRegion) CreateSurface() chart.Surface {
	r.canvas = chart.NewCanvas(dashboard.ChartContainerID)

	return r.canvas
}
