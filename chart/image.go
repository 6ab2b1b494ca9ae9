// ABOUTME: Chart factory that renders specs to PNG or SVG files with go-chart
// ABOUTME: Bar and pie use go-chart's chart types; radar is drawn on the raw renderer

package chart

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/muesli/reflow/truncate"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Image formats
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

const (
	defaultImageWidth  = 800
	defaultImageHeight = 600
	maxBarLabelWidth   = 14
	radarRings         = 5
)

// ErrFormat is returned for image formats other than png and svg
var ErrFormat = errors.New("chart: unsupported image format")

// ImageFactory writes every chart it creates to Dir/<surface name>.<Format>
type ImageFactory struct {
	Dir    string
	Format string
	Width  int
	Height int
}

// ImageChart is a chart rendered to a file
type ImageChart struct {
	*Handle
	path string
}

// Path returns the file the chart was written to
func (c *ImageChart) Path() string {
	return c.path
}

// New renders spec and binds it to s
func (f ImageFactory) New(s Surface, spec Spec) (Chart, error) {
	format := f.Format
	if format == "" {
		format = FormatPNG
	}

	if format != FormatPNG && format != FormatSVG {
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}

	h, err := NewHandle(s, spec)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(f.Dir, s.Name()+"."+format)

	if err := f.writeFile(path, format, spec); err != nil {
		h.Destroy()

		return nil, err
	}

	return &ImageChart{Handle: h, path: path}, nil
}

func (f ImageFactory) writeFile(path, format string, spec Spec) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("chart: create %s: %w", path, err)
	}

	if err := f.Render(file, format, spec); err != nil {
		_ = file.Close()

		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("chart: close %s: %w", path, err)
	}

	return nil
}

// Render writes spec as an image in format to w
func (f ImageFactory) Render(w io.Writer, format string, spec Spec) error {
	provider := gochart.PNG
	if format == FormatSVG {
		provider = gochart.SVG
	}

	width, height := f.size()

	if isEmpty(spec) {
		return renderBlank(w, provider, width, height)
	}

	var err error

	switch spec.Kind {
	case Bar:
		err = barChart(spec, width, height).Render(provider, w)
	case Pie:
		err = pieChart(spec, width, height).Render(provider, w)
	case Radar:
		err = renderRadar(w, provider, spec, width, height)
	default:
		err = fmt.Errorf("chart: unknown kind %q", spec.Kind)
	}

	if err != nil {
		return fmt.Errorf("chart: render %s: %w", spec.Kind, err)
	}

	return nil
}

func (f ImageFactory) size() (int, int) {
	width, height := f.Width, f.Height
	if width <= 0 {
		width = defaultImageWidth
	}

	if height <= 0 {
		height = defaultImageHeight
	}

	return width, height
}

// isEmpty reports specs go-chart refuses to draw: no categories or nothing to divide a pie by
func isEmpty(spec Spec) bool {
	data := spec.Series().Data
	if len(data) == 0 {
		return true
	}

	if spec.Kind == Pie {
		var total float64
		for _, v := range data {
			total += v
		}

		return total <= 0
	}

	return false
}

func toDrawing(css string) drawing.Color {
	c, ok := ParseColor(css)
	if !ok {
		return gochart.ColorBlack
	}

	return c
}

func barChart(spec Spec, width, height int) gochart.BarChart {
	series := spec.Series()
	bars := make([]gochart.Value, len(spec.Labels))
	maxValue := 0.0

	for i, label := range spec.Labels {
		v := series.Data[i]
		maxValue = math.Max(maxValue, v)
		bars[i] = gochart.Value{
			Label: truncate.StringWithTail(label, maxBarLabelWidth, "…"),
			Value: v,
			Style: gochart.Style{
				FillColor:   toDrawing(series.Color(i)),
				StrokeColor: toDrawing(series.BorderColor),
				StrokeWidth: float64(series.BorderWidth),
			},
		}
	}

	bw := barWidth(width, len(bars))
	bc := gochart.BarChart{
		Width:  width,
		Height: height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		BarWidth:   bw,
		BarSpacing: bw / 2,
		Bars:       bars,
	}

	if spec.Options.XAxis != nil {
		bc.Title = spec.Options.XAxis.Title
	}

	if y := spec.Options.YAxis; y != nil {
		bc.YAxis.Name = y.Title
		if y.BeginAtZero {
			if maxValue <= 0 {
				maxValue = 1
			}

			bc.YAxis.Range = &gochart.ContinuousRange{Min: 0, Max: maxValue}
		}
	}

	return bc
}

func barWidth(width, n int) int {
	if n == 0 {
		return 0
	}

	w := width / (2 * n)

	return max(8, min(w, 60))
}

func pieChart(spec Spec, width, height int) gochart.PieChart {
	series := spec.Series()
	values := make([]gochart.Value, len(spec.Labels))

	for i, label := range spec.Labels {
		values[i] = gochart.Value{
			Label: label,
			Value: series.Data[i],
			Style: gochart.Style{FillColor: toDrawing(series.Color(i))},
		}
	}

	return gochart.PieChart{
		Width:  width,
		Height: height,
		Values: values,
	}
}

func renderBlank(w io.Writer, provider gochart.RendererProvider, width, height int) error {
	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("chart: renderer: %w", err)
	}

	fillBackground(r, width, height)

	return r.Save(w)
}

func fillBackground(r gochart.Renderer, width, height int) {
	r.SetFillColor(gochart.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()
	r.ResetStyle()
}

// radarPoint returns the pixel position of axis i of n at fraction frac of radius
func radarPoint(cx, cy int, radius float64, i, n int, frac float64) (int, int) {
	angle := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
	x := float64(cx) + math.Cos(angle)*radius*frac
	y := float64(cy) + math.Sin(angle)*radius*frac

	return int(math.Round(x)), int(math.Round(y))
}

// radarScale is the value mapped to the outer ring: 1 for unit features, else the max value
func radarScale(data []float64) float64 {
	scale := 1.0
	for _, v := range data {
		scale = math.Max(scale, v)
	}

	return scale
}

func renderRadar(w io.Writer, provider gochart.RendererProvider, spec Spec, width, height int) error {
	r, err := provider(width, height)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}

	font, err := gochart.GetDefaultFont()
	if err != nil {
		return fmt.Errorf("font: %w", err)
	}

	fillBackground(r, width, height)

	series := spec.Series()
	n := len(series.Data)
	cx, cy := width/2, height/2
	radius := float64(min(width, height)) * 0.35
	grid := drawing.Color{R: 200, G: 200, B: 200, A: 255}

	// rings
	for ring := 1; ring <= radarRings; ring++ {
		frac := float64(ring) / radarRings

		r.SetStrokeColor(grid)
		r.SetStrokeWidth(1)

		for i := 0; i <= n; i++ {
			x, y := radarPoint(cx, cy, radius, i%n, n, frac)
			if i == 0 {
				r.MoveTo(x, y)
			} else {
				r.LineTo(x, y)
			}
		}

		r.Stroke()
	}

	// spokes and labels
	r.SetFont(font)
	r.SetFontSize(11)
	r.SetFontColor(gochart.ColorBlack)

	for i, label := range spec.Labels {
		x, y := radarPoint(cx, cy, radius, i, n, 1)

		r.SetStrokeColor(grid)
		r.MoveTo(cx, cy)
		r.LineTo(x, y)
		r.Stroke()

		lx, ly := radarPoint(cx, cy, radius, i, n, 1.12)
		box := r.MeasureText(label)
		r.Text(label, lx-box.Width()/2, ly+box.Height()/2)
	}

	// data polygon
	scale := radarScale(series.Data)

	for i, v := range series.Data {
		x, y := radarPoint(cx, cy, radius, i, n, v/scale)
		if i == 0 {
			r.MoveTo(x, y)
		} else {
			r.LineTo(x, y)
		}
	}

	r.Close()
	r.SetFillColor(toDrawing(series.Color(0)))
	r.SetStrokeColor(toDrawing(series.BorderColor))
	r.SetStrokeWidth(math.Max(1, float64(series.BorderWidth)))
	r.FillStroke()

	if series.Label != "" {
		r.SetFontSize(14)
		box := r.MeasureText(series.Label)
		r.Text(series.Label, cx-box.Width()/2, 24)
	}

	return r.Save(w)
}
