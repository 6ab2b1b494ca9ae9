// ABOUTME: Page contract the controller renders into
// ABOUTME: Every element is optional; lookups report presence instead of failing

// Package dashboard implements the analysis view controller: it reads the
// selectors on a page, requests an analysis and renders the response as one
// chart plus a list of track cards.
package dashboard

import (
	"context"

	"mood-dashboard/analysis"
	"mood-dashboard/chart"
)

// Element identifiers
const (
	MoodSelectorID          = "mood-selection"
	VisualizationSelectorID = "visualization-type"
	SortSelectorID          = "sorting-method"
	ChartContainerID        = "analysis-results"
	TrackListID             = "trackList"
)

// SelectorIDs lists the selectors in the order the controller reads them
var SelectorIDs = []string{MoodSelectorID, VisualizationSelectorID, SortSelectorID}

// Selector is a single-choice input
type Selector interface {
	Value() string
	OnChange(fn func())
}

// ChartContainer hosts the chart drawing surface
type ChartContainer interface {
	// Surface returns the surface already attached to the container, if any
	Surface() (chart.Surface, bool)
	// CreateSurface attaches a new surface to the container
	CreateSurface() chart.Surface
}

// TrackList displays track cards
type TrackList interface {
	Replace(cards []Card)
}

// Page gives access to the elements the controller uses
type Page interface {
	Selector(id string) (Selector, bool)
	ChartContainer() (ChartContainer, bool)
	TrackList() (TrackList, bool)
}

// Analyzer performs an analysis request
type Analyzer interface {
	Analyze(ctx context.Context, sel analysis.Selection) (analysis.Response, error)
}

// Logger receives controller diagnostics
type Logger interface {
	Printf(format string, args ...interface{})
}
