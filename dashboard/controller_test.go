// ABOUTME: Tests for the analysis view controller
// ABOUTME: Fake analyzer and chart factory record requests, creations and destroys

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"mood-dashboard/analysis"
	"mood-dashboard/chart"
)

type fakeAnalyzer struct {
	requests []analysis.Selection
	respond  func(sel analysis.Selection) (analysis.Response, error)
}

func (f *fakeAnalyzer) Analyze(_ context.Context, sel analysis.Selection) (analysis.Response, error) {
	f.requests = append(f.requests, sel)
	if f.respond == nil {
		return analysis.Response{}, nil
	}

	return f.respond(sel)
}

type fakeChart struct {
	*chart.Handle
	destroyed int
}

func (c *fakeChart) Destroy() {
	c.destroyed++
	c.Handle.Destroy()
}

type fakeFactory struct {
	created []*fakeChart
	err     error
}

func (f *fakeFactory) New(s chart.Surface, spec chart.Spec) (chart.Chart, error) {
	if f.err != nil {
		return nil, f.err
	}

	h, err := chart.NewHandle(s, spec)
	if err != nil {
		return nil, err
	}

	c := &fakeChart{Handle: h}
	f.created = append(f.created, c)

	return c, nil
}

type recordLogger struct {
	lines []string
}

func (l *recordLogger) Printf(format string, args ...interface{}) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func fullPage() *HeadlessPage {
	p := NewHeadlessPage("analysis-results")
	p.Selectors[MoodSelectorID] = NewStaticSelector("happy")
	p.Selectors[VisualizationSelectorID] = NewStaticSelector("audioFeatures")
	p.Selectors[SortSelectorID] = NewStaticSelector("popularity")

	return p
}

func topSongsResponse(analysis.Selection) (analysis.Response, error) {
	return analysis.Response{
		Payload: analysis.TopSongs{Songs: []analysis.Song{
			{Name: "A", Artist: "X", Popularity: 80},
			{Name: "B", Artist: "Y", Popularity: 55},
		}},
		Tracks: []analysis.Track{{Name: "A", Artist: "X", Popularity: 80, Energy: 0.512, Danceability: 0.6}},
	}, nil
}

func TestSelectionDefaultsOnlyMissingSelectors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *HeadlessPage)
		want  analysis.Selection
	}{
		{
			name:  "all absent",
			setup: func(p *HeadlessPage) { p.Selectors = map[string]*StaticSelector{} },
			want:  analysis.DefaultSelection(),
		},
		{
			name:  "mood absent",
			setup: func(p *HeadlessPage) { delete(p.Selectors, MoodSelectorID) },
			want:  analysis.Selection{Mood: "happy", VisualizationType: "genreDistribution", SortMethod: "energy"},
		},
		{
			name:  "sort empty",
			setup: func(p *HeadlessPage) { p.Selectors[SortSelectorID] = NewStaticSelector("") },
			want:  analysis.Selection{Mood: "sad", VisualizationType: "genreDistribution", SortMethod: "popularity"},
		},
		{
			name:  "all present",
			setup: func(*HeadlessPage) {},
			want:  analysis.Selection{Mood: "sad", VisualizationType: "genreDistribution", SortMethod: "energy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullPage()
			p.Selectors[MoodSelectorID].Set("sad")
			p.Selectors[VisualizationSelectorID].Set("genreDistribution")
			p.Selectors[SortSelectorID].Set("energy")
			tt.setup(p)

			c := New(p, &fakeAnalyzer{}, &fakeFactory{}, Options{})
			if got := c.Selection(); got != tt.want {
				t.Errorf("Selection = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSelectionUsesConfiguredDefaults(t *testing.T) {
	p := NewHeadlessPage("c")
	c := New(p, &fakeAnalyzer{}, &fakeFactory{}, Options{Defaults: analysis.Selection{Mood: "chill"}})

	want := analysis.Selection{Mood: "chill", VisualizationType: analysis.AudioFeaturesType, SortMethod: "popularity"}
	if got := c.Selection(); got != want {
		t.Errorf("Selection = %+v, want %+v", got, want)
	}
}

func TestInitializeRunsOnceAndOnEveryChange(t *testing.T) {
	p := fullPage()
	an := &fakeAnalyzer{respond: topSongsResponse}
	c := New(p, an, &fakeFactory{}, Options{})

	c.Initialize(context.Background())

	if len(an.requests) != 1 {
		t.Fatalf("Expected 1 initial request, got %d", len(an.requests))
	}

	p.Selectors[SortSelectorID].Set("danceability")
	p.Selectors[MoodSelectorID].Set("chill")

	if len(an.requests) != 3 {
		t.Fatalf("Expected 3 requests, got %d", len(an.requests))
	}

	last := an.requests[2]
	if last.Mood != "chill" || last.SortMethod != "danceability" {
		t.Errorf("Last request = %+v", last)
	}
}

func TestInitializeToleratesMissingElements(t *testing.T) {
	p := &HeadlessPage{Selectors: map[string]*StaticSelector{}}
	an := &fakeAnalyzer{respond: topSongsResponse}
	c := New(p, an, &fakeFactory{}, Options{})

	c.Initialize(context.Background())

	if len(an.requests) != 1 || an.requests[0] != analysis.DefaultSelection() {
		t.Errorf("Expected one default request, got %+v", an.requests)
	}

	if _, ok := c.Current(); ok {
		t.Error("Expected no chart without a chart container")
	}
}

func TestTopSongsScenario(t *testing.T) {
	p := fullPage()
	p.Selectors[VisualizationSelectorID].Set("topSongs")

	factory := &fakeFactory{}
	c := New(p, &fakeAnalyzer{respond: topSongsResponse}, factory, Options{})
	c.RunAnalysis(context.Background())

	ch, ok := c.Current()
	if !ok {
		t.Fatal("Expected a chart")
	}

	spec := ch.Spec()
	if spec.Kind != chart.Bar || !reflect.DeepEqual(spec.Labels, []string{"A", "B"}) {
		t.Errorf("Unexpected spec: %+v", spec)
	}

	if !reflect.DeepEqual(spec.Series().Data, []float64{80, 55}) {
		t.Errorf("Data = %v", spec.Series().Data)
	}

	if spec.Options.YAxis == nil || !spec.Options.YAxis.BeginAtZero {
		t.Error("Expected y axis beginning at zero")
	}

	want := []Card{{Name: "A", Artist: "X", Popularity: "80", Energy: "0.51", Danceability: "0.60"}}
	if !reflect.DeepEqual(p.List.Cards, want) {
		t.Errorf("Cards = %+v, want %+v", p.List.Cards, want)
	}
}

func TestAtMostOneLiveChart(t *testing.T) {
	p := fullPage()
	factory := &fakeFactory{}
	c := New(p, &fakeAnalyzer{respond: topSongsResponse}, factory, Options{})

	for _, vt := range []string{"audioFeatures", "audioFeatures", "genreDistribution", "topSongs"} {
		p.Selectors[VisualizationSelectorID].Set(vt)
		c.RunAnalysis(context.Background())
	}

	if len(factory.created) != 4 {
		t.Fatalf("Expected 4 charts created, got %d", len(factory.created))
	}

	for i, ch := range factory.created[:3] {
		if ch.destroyed != 1 {
			t.Errorf("Chart %d destroyed %d times, want 1", i, ch.destroyed)
		}
	}

	if factory.created[3].destroyed != 0 {
		t.Error("Live chart should not be destroyed")
	}

	if p.Chart.Created != 1 {
		t.Errorf("Surface created %d times, want 1", p.Chart.Created)
	}
}

func TestUnknownTypeClearsChart(t *testing.T) {
	p := fullPage()
	factory := &fakeFactory{}
	an := &fakeAnalyzer{respond: topSongsResponse}
	c := New(p, an, factory, Options{})

	c.RunAnalysis(context.Background())

	p.Selectors[VisualizationSelectorID].Set("mystery")
	c.RunAnalysis(context.Background())

	if an.requests[1].VisualizationType != "mystery" {
		t.Errorf("Unknown type should be sent verbatim, got %q", an.requests[1].VisualizationType)
	}

	if factory.created[0].destroyed != 1 {
		t.Error("Previous chart should be destroyed")
	}

	if _, ok := c.Current(); ok {
		t.Error("Expected blank chart region for unknown type")
	}

	if len(factory.created) != 1 {
		t.Errorf("Expected no new chart, got %d total", len(factory.created))
	}

	if p.Chart.surface.Bound() {
		t.Error("Surface should be free")
	}
}

func TestEmptyTracksGiveEmptyList(t *testing.T) {
	p := fullPage()
	p.List.Cards = []Card{{Name: "old"}}

	c := New(p, &fakeAnalyzer{}, &fakeFactory{}, Options{})
	c.RunAnalysis(context.Background())

	if p.List.Cards == nil || len(p.List.Cards) != 0 {
		t.Errorf("Expected empty card list, got %#v", p.List.Cards)
	}
}

func TestFailureLeavesPageUntouched(t *testing.T) {
	p := fullPage()
	factory := &fakeFactory{}
	fail := false
	an := &fakeAnalyzer{respond: func(sel analysis.Selection) (analysis.Response, error) {
		if fail {
			return analysis.Response{}, errors.New("connection refused")
		}

		return topSongsResponse(sel)
	}}
	logger := &recordLogger{}
	c := New(p, an, factory, Options{Logger: logger})

	c.RunAnalysis(context.Background())
	before, _ := c.Current()
	cards := p.List.Cards

	fail = true
	c.RunAnalysis(context.Background())

	after, ok := c.Current()
	if !ok || after != before {
		t.Error("Chart should be unchanged after a failed request")
	}

	if factory.created[0].destroyed != 0 {
		t.Error("Chart should not be destroyed on failure")
	}

	if !reflect.DeepEqual(p.List.Cards, cards) || p.List.Replaced != 1 {
		t.Error("Track list should be unchanged after a failed request")
	}

	if len(logger.lines) != 1 || !strings.HasPrefix(logger.lines[0], "Error fetching analysis: ") {
		t.Errorf("Unexpected log lines: %v", logger.lines)
	}
}

func TestFactoryErrorLeavesRegionEmpty(t *testing.T) {
	p := fullPage()
	logger := &recordLogger{}
	c := New(p, &fakeAnalyzer{respond: topSongsResponse}, &fakeFactory{err: errors.New("no gpu")}, Options{Logger: logger})

	c.RunAnalysis(context.Background())

	if _, ok := c.Current(); ok {
		t.Error("Expected no chart after factory error")
	}

	if len(logger.lines) != 1 {
		t.Errorf("Expected factory error to be logged, got %v", logger.lines)
	}

	if len(p.List.Cards) != 1 {
		t.Error("Track list should still render")
	}
}

func TestStaleResultsAreFenced(t *testing.T) {
	tests := []struct {
		name      string
		fence     bool
		wantMood  string
		wantApply bool
	}{
		{"fenced", true, "second", false},
		{"last response wins", false, "first", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fullPage()
			an := &fakeAnalyzer{respond: func(sel analysis.Selection) (analysis.Response, error) {
				return analysis.Response{Tracks: []analysis.Track{{Name: sel.Mood}}}, nil
			}}

			var pending []Request
			c := New(p, an, &fakeFactory{}, Options{
				FenceStaleResponses: tt.fence,
				Schedule:            func(_ context.Context, req Request) { pending = append(pending, req) },
			})

			ctx := context.Background()
			p.Selectors[MoodSelectorID].Set("first")
			c.Trigger(ctx)
			p.Selectors[MoodSelectorID].Set("second")
			c.Trigger(ctx)

			if len(pending) != 2 || pending[0].Seq >= pending[1].Seq {
				t.Fatalf("Unexpected pending requests: %+v", pending)
			}

			// Responses arrive in reverse order
			if !c.Apply(c.Fetch(ctx, pending[1])) {
				t.Fatal("Latest result should apply")
			}

			if got := c.Apply(c.Fetch(ctx, pending[0])); got != tt.wantApply {
				t.Errorf("Apply(stale) = %v, want %v", got, tt.wantApply)
			}

			if p.List.Cards[0].Name != tt.wantMood {
				t.Errorf("Displayed %q, want %q", p.List.Cards[0].Name, tt.wantMood)
			}
		})
	}
}

func TestConfigureReplacesDefaultsAndFence(t *testing.T) {
	p := NewHeadlessPage("c")
	p.Selectors[MoodSelectorID] = NewStaticSelector("first")
	an := &fakeAnalyzer{respond: func(sel analysis.Selection) (analysis.Response, error) {
		return analysis.Response{Tracks: []analysis.Track{{Name: sel.Mood}}}, nil
	}}
	log := &recordLogger{}

	c := New(p, an, &fakeFactory{}, Options{FenceStaleResponses: false, Logger: log})
	c.Configure(Options{
		Defaults:            analysis.Selection{SortMethod: "energy"},
		FenceStaleResponses: true,
	})

	want := analysis.Selection{Mood: "first", VisualizationType: analysis.AudioFeaturesType, SortMethod: "energy"}
	if got := c.Selection(); got != want {
		t.Errorf("Selection = %+v, want %+v", got, want)
	}

	ctx := context.Background()
	stale := c.Begin()
	p.Selectors[MoodSelectorID].Set("second")
	latest := c.Begin()

	c.Apply(c.Fetch(ctx, latest))

	if c.Apply(c.Fetch(ctx, stale)) {
		t.Error("Stale result applied after enabling fencing")
	}

	if p.List.Cards[0].Name != "second" {
		t.Errorf("Displayed %q, want second", p.List.Cards[0].Name)
	}

	// Logger is kept when the new options carry none
	c.Apply(Result{Request: c.Begin(), Err: errors.New("boom")})

	if len(log.lines) != 1 || !strings.Contains(log.lines[0], "Error fetching analysis: boom") {
		t.Errorf("Unexpected log lines: %v", log.lines)
	}
}

func TestCloseDestroysChart(t *testing.T) {
	p := fullPage()
	factory := &fakeFactory{}
	c := New(p, &fakeAnalyzer{respond: topSongsResponse}, factory, Options{})

	c.RunAnalysis(context.Background())
	c.Close()
	c.Close()

	if factory.created[0].destroyed != 1 {
		t.Errorf("Destroyed %d times, want 1", factory.created[0].destroyed)
	}
}
