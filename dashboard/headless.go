// ABOUTME: In-memory page for one-shot CLI runs and tests
// ABOUTME: Selectors, chart region and card list without any display

package dashboard

import "mood-dashboard/chart"

// StaticSelector holds a fixed value and notifies listeners on Set
type StaticSelector struct {
	value     string
	listeners []func()
}

// NewStaticSelector creates a selector with an initial value
func NewStaticSelector(value string) *StaticSelector {
	return &StaticSelector{value: value}
}

// Value returns the current value
func (s *StaticSelector) Value() string {
	return s.value
}

// OnChange registers fn to run after every Set
func (s *StaticSelector) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Set changes the value and notifies listeners
func (s *StaticSelector) Set(value string) {
	s.value = value
	for _, fn := range s.listeners {
		fn()
	}
}

// ChartRegion is a chart container that creates its surface on first use
type ChartRegion struct {
	name    string
	surface *chart.Canvas
	Created int // number of surfaces created
}

// NewChartRegion creates an empty region whose surface will be called name
func NewChartRegion(name string) *ChartRegion {
	return &ChartRegion{name: name}
}

// Surface returns the attached surface
func (r *ChartRegion) Surface() (chart.Surface, bool) {
	if r.surface == nil {
		return nil, false
	}

	return r.surface, true
}

// CreateSurface attaches a new canvas
func (r *ChartRegion) CreateSurface() chart.Surface {
	r.surface = chart.NewCanvas(r.name)
	r.Created++

	return r.surface
}

// CardList stores the last cards it was given
type CardList struct {
	Cards    []Card
	Replaced int
}

// Replace swaps in cards
func (l *CardList) Replace(cards []Card) {
	l.Cards = cards
	l.Replaced++
}

// HeadlessPage is a Page whose elements are set explicitly. Nil fields are absent.
type HeadlessPage struct {
	Selectors map[string]*StaticSelector
	Chart     *ChartRegion
	List      *CardList
}

// NewHeadlessPage creates a page with a chart region and track list but no selectors
func NewHeadlessPage(chartName string) *HeadlessPage {
	return &HeadlessPage{
		Selectors: map[string]*StaticSelector{},
		Chart:     NewChartRegion(chartName),
		List:      &CardList{},
	}
}

// Selector looks up a selector by element id
func (p *HeadlessPage) Selector(id string) (Selector, bool) {
	s, ok := p.Selectors[id]
	if !ok || s == nil {
		return nil, false
	}

	return s, true
}

// ChartContainer returns the chart region if present
func (p *HeadlessPage) ChartContainer() (ChartContainer, bool) {
	if p.Chart == nil {
		return nil, false
	}

	return p.Chart, true
}

// TrackList returns the card list if present
func (p *HeadlessPage) TrackList() (TrackList, bool) {
	if p.List == nil {
		return nil, false
	}

	return p.List, true
}
