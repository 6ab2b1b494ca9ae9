// ABOUTME: Analysis view controller: selection reading, request sequencing and rendering
// ABOUTME: Owns the single live chart and replaces it on every render

package dashboard

import (
	"context"
	"log"

	"mood-dashboard/analysis"
	"mood-dashboard/chart"
)

// Request is a begun analysis: the selection read from the page and its sequence number
type Request struct {
	Seq       uint64
	Selection analysis.Selection
}

// Result is the outcome of fetching a Request
type Result struct {
	Request  Request
	Response analysis.Response
	Err      error
}

// Options configures a Controller
type Options struct {
	// Defaults fill in absent or empty selectors. Zero fields use the built-in defaults.
	Defaults analysis.Selection
	// FenceStaleResponses discards results of requests superseded by a newer one
	FenceStaleResponses bool
	// Schedule runs a begun request, typically on another goroutine, and must
	// hand the Result back to Apply on the UI loop. Nil fetches synchronously.
	Schedule func(ctx context.Context, req Request)
	Logger   Logger
}

// Controller drives one page. It is not safe for concurrent use: every method
// except Fetch must be called from the goroutine that owns the page.
type Controller struct {
	page     Page
	analyzer Analyzer
	charts   chart.Factory
	logger   Logger
	defaults analysis.Selection
	fence    bool
	schedule func(context.Context, Request)

	seq     uint64
	current chart.Chart
}

// New creates a controller rendering into page
func New(page Page, analyzer Analyzer, charts chart.Factory, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Controller{
		page:     page,
		analyzer: analyzer,
		charts:   charts,
		logger:   logger,
		defaults: opts.Defaults.WithDefaults(analysis.DefaultSelection()),
		fence:    opts.FenceStaleResponses,
		schedule: opts.Schedule,
	}
}

// Configure replaces the defaults and the fencing mode. A nil Logger or
// Schedule keeps the current one. The next request uses the new settings.
func (c *Controller) Configure(opts Options) {
	c.defaults = opts.Defaults.WithDefaults(analysis.DefaultSelection())
	c.fence = opts.FenceStaleResponses

	if opts.Logger != nil {
		c.logger = opts.Logger
	}

	if opts.Schedule != nil {
		c.schedule = opts.Schedule
	}
}

// Initialize subscribes to every selector present on the page and runs the first analysis
func (c *Controller) Initialize(ctx context.Context) {
	for _, id := range SelectorIDs {
		if sel, ok := c.page.Selector(id); ok {
			sel.OnChange(func() { c.Trigger(ctx) })
		}
	}

	c.Trigger(ctx)
}

// Trigger starts an analysis for the current selection
func (c *Controller) Trigger(ctx context.Context) {
	if c.schedule == nil {
		c.RunAnalysis(ctx)

		return
	}

	c.schedule(ctx, c.Begin())
}

// RunAnalysis reads the selection, fetches and renders it synchronously
func (c *Controller) RunAnalysis(ctx context.Context) {
	c.Apply(c.Fetch(ctx, c.Begin()))
}

// Begin reads the selection and stamps it with the next sequence number
func (c *Controller) Begin() Request {
	c.seq++

	return Request{Seq: c.seq, Selection: c.Selection()}
}

// Fetch performs the request. It touches no controller state and may run on any goroutine.
func (c *Controller) Fetch(ctx context.Context, req Request) Result {
	resp, err := c.analyzer.Analyze(ctx, req.Selection)

	return Result{Request: req, Response: resp, Err: err}
}

// Apply renders a fetched result and reports whether the page changed.
// Failures are logged and leave the page untouched.
func (c *Controller) Apply(res Result) bool {
	if c.fence && res.Request.Seq != c.seq {
		return false
	}

	if res.Err != nil {
		c.logger.Printf("Error fetching analysis: %v", res.Err)

		return false
	}

	c.RenderVisualization(res.Response.Payload, res.Request.Selection.VisualizationType)
	c.RenderTrackList(res.Response.Tracks)

	return true
}

// Selection reads the selectors, using defaults for absent or empty ones
func (c *Controller) Selection() analysis.Selection {
	return analysis.Selection{
		Mood:              c.value(MoodSelectorID, c.defaults.Mood),
		VisualizationType: analysis.VisualizationType(c.value(VisualizationSelectorID, string(c.defaults.VisualizationType))),
		SortMethod:        c.value(SortSelectorID, c.defaults.SortMethod),
	}
}

func (c *Controller) value(id, fallback string) string {
	sel, ok := c.page.Selector(id)
	if !ok {
		return fallback
	}

	if v := sel.Value(); v != "" {
		return v
	}

	return fallback
}

// RenderVisualization replaces the chart with one built for t.
// Unknown types leave the chart region blank.
func (c *Controller) RenderVisualization(payload analysis.Payload, t analysis.VisualizationType) {
	container, ok := c.page.ChartContainer()
	if !ok {
		return
	}

	surface, ok := container.Surface()
	if !ok {
		surface = container.CreateSurface()
	}

	if c.current != nil {
		c.current.Destroy()
		c.current = nil
	}

	spec, ok := chart.Build(t, payload)
	if !ok {
		return
	}

	ch, err := c.charts.New(surface, spec)
	if err != nil {
		c.logger.Printf("Error rendering %s chart: %v", spec.Kind, err)

		return
	}

	c.current = ch
}

// RenderTrackList replaces the track list with one card per track
func (c *Controller) RenderTrackList(tracks []analysis.Track) {
	list, ok := c.page.TrackList()
	if !ok {
		return
	}

	list.Replace(Cards(tracks))
}

// Current returns the live chart, if any
func (c *Controller) Current() (chart.Chart, bool) {
	return c.current, c.current != nil
}

// Close destroys the live chart
func (c *Controller) Close() {
	if c.current != nil {
		c.current.Destroy()
		c.current = nil
	}
}
