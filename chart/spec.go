// ABOUTME: Chart specification model and the three construction strategies
// ABOUTME: Maps analysis payloads to radar, pie and bar chart specs without side effects

// Package chart turns analysis payloads into chart specifications and defines
// the handle/factory contract used to bind a chart to a drawing surface.
package chart

import "mood-dashboard/analysis"

// Kind is the chart type tag
type Kind string

// Chart kinds
const (
	Radar Kind = "radar"
	Pie   Kind = "pie"
	Bar   Kind = "bar"
)

// Dataset is a single data series
type Dataset struct {
	Label            string
	Data             []float64
	BackgroundColors []string // one color for the whole series, or one per category
	BorderColor      string
	BorderWidth      int
}

// Axis holds title and range options for one axis
type Axis struct {
	Title       string
	BeginAtZero bool
}

// Options is the options bag passed to the chart constructor
type Options struct {
	Responsive          bool
	MaintainAspectRatio bool
	LegendPosition      string // empty means library default
	XAxis               *Axis
	YAxis               *Axis
}

// Spec is everything a chart constructor needs besides the surface
type Spec struct {
	Kind     Kind
	Labels   []string
	Datasets []Dataset
	Options  Options
}

// Series colors of the single-series charts
const (
	audioFeaturesFill   = "rgba(54, 162, 235, 0.2)"
	audioFeaturesBorder = "rgba(54, 162, 235, 1)"
	topSongsFill        = "rgba(75, 192, 192, 0.2)"
	topSongsBorder      = "rgba(75, 192, 192, 1)"
)

// Build chooses the construction strategy for visualization type t.
// It returns false for unrecognized types, which render no chart.
// A payload of the wrong variant is treated as empty.
func Build(t analysis.VisualizationType, payload analysis.Payload) (Spec, bool) {
	switch t {
	case analysis.AudioFeaturesType:
		p, _ := payload.(analysis.AudioFeatures)

		return AudioFeaturesSpec(p), true
	case analysis.GenreDistributionType:
		p, _ := payload.(analysis.GenreDistribution)

		return GenreDistributionSpec(p), true
	case analysis.TopSongsType:
		p, _ := payload.(analysis.TopSongs)

		return TopSongsSpec(p), true
	default:
		return Spec{}, false
	}
}

// AudioFeaturesSpec builds a radar chart: one axis per feature in payload order
func AudioFeaturesSpec(p analysis.AudioFeatures) Spec {
	labels := make([]string, len(p.Features))
	data := make([]float64, len(p.Features))

	for i, f := range p.Features {
		labels[i] = f.Name
		data[i] = f.Value
	}

	return Spec{
		Kind:   Radar,
		Labels: labels,
		Datasets: []Dataset{{
			Label:            "Audio Features",
			Data:             data,
			BackgroundColors: []string{audioFeaturesFill},
			BorderColor:      audioFeaturesBorder,
			BorderWidth:      1,
		}},
		Options: Options{Responsive: true},
	}
}

// GenreDistributionSpec builds a pie chart colored from the genre palette
func GenreDistributionSpec(p analysis.GenreDistribution) Spec {
	labels := make([]string, len(p.Genres))
	data := make([]float64, len(p.Genres))

	for i, g := range p.Genres {
		labels[i] = g.Genre
		data[i] = g.Count
	}

	return Spec{
		Kind:   Pie,
		Labels: labels,
		Datasets: []Dataset{{
			Data:             data,
			BackgroundColors: PaletteColors(len(labels)),
		}},
		Options: Options{Responsive: true, LegendPosition: "top"},
	}
}

// TopSongsSpec builds a bar chart of popularity per song, y starting at zero
func TopSongsSpec(p analysis.TopSongs) Spec {
	labels := make([]string, len(p.Songs))
	data := make([]float64, len(p.Songs))

	for i, s := range p.Songs {
		labels[i] = s.Name
		data[i] = s.Popularity
	}

	return Spec{
		Kind:   Bar,
		Labels: labels,
		Datasets: []Dataset{{
			Label:            "Popularity",
			Data:             data,
			BackgroundColors: []string{topSongsFill},
			BorderColor:      topSongsBorder,
			BorderWidth:      1,
		}},
		Options: Options{
			Responsive: true,
			XAxis:      &Axis{Title: "Top Songs"},
			YAxis:      &Axis{Title: "Popularity", BeginAtZero: true},
		},
	}
}

// Series returns the first dataset, or an empty one
func (s Spec) Series() Dataset {
	if len(s.Datasets) == 0 {
		return Dataset{}
	}

	return s.Datasets[0]
}

// Color returns the background color of category i, cycling if the dataset
// has fewer colors than categories
func (d Dataset) Color(i int) string {
	if len(d.BackgroundColors) == 0 {
		return ""
	}

	return d.BackgroundColors[i%len(d.BackgroundColors)]
}
