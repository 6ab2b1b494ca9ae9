// ABOUTME: Chart factory drawing radar, pie and bar specs as terminal text
// ABOUTME: Bars are scaled to the panel width and colored from the dataset colors

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"mood-dashboard/chart"
)

const (
	chartLabelWidth = 18
	chartValueWidth = 8
	minBarWidth     = 4
)

// termFactory creates terminal charts
type termFactory struct{}

// New binds spec to s. Rendering happens on demand at the current panel width.
func (termFactory) New(s chart.Surface, spec chart.Spec) (chart.Chart, error) {
	h, err := chart.NewHandle(s, spec)
	if err != nil {
		return nil, err
	}

	return &termChart{Handle: h, width: -1}, nil
}

// termChart caches its rendering for the last width it was drawn at
type termChart struct {
	*chart.Handle
	width    int
	rendered string
}

// Render returns the chart drawn for a panel width columns wide
func (c *termChart) Render(width int) string {
	if width != c.width {
		c.width = width
		c.rendered = renderSpec(c.Spec(), width)
	}

	return c.rendered
}

func renderSpec(spec chart.Spec, width int) string {
	barWidth := max(minBarWidth, width-chartLabelWidth-chartValueWidth-3)

	switch spec.Kind {
	case chart.Radar:
		return renderRadar(spec, barWidth)
	case chart.Pie:
		return renderPie(spec, barWidth)
	case chart.Bar:
		return renderBar(spec, barWidth)
	default:
		return ""
	}
}

func label(s string) string {
	return fmt.Sprintf("%-*s", chartLabelWidth, truncate.StringWithTail(s, chartLabelWidth, "…"))
}

func bar(frac float64, width int, color string) string {
	frac = math.Max(0, math.Min(1, frac))
	n := int(math.Round(frac * float64(width)))

	return lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Hex(color))).Render(strings.Repeat("█", n)) +
		strings.Repeat(" ", width-n)
}

// renderRadar draws one bar per axis, scaled to 1 for unit features
func renderRadar(spec chart.Spec, width int) string {
	ds := spec.Series()

	scale := 1.0
	for _, v := range ds.Data {
		scale = math.Max(scale, v)
	}

	var b strings.Builder

	b.WriteString(chartTitleStyle.Render(ds.Label) + "\n")

	for i, name := range spec.Labels {
		v := ds.Data[i]
		fmt.Fprintf(&b, "%s %s %*.2f\n", label(name), bar(v/scale, width, ds.BorderColor), chartValueWidth, v)
	}

	return b.String()
}

// renderPie draws the legend with each category's share of the total
func renderPie(spec chart.Spec, width int) string {
	ds := spec.Series()

	var total float64
	for _, v := range ds.Data {
		total += v
	}

	var b strings.Builder

	for i, name := range spec.Labels {
		share := 0.0
		if total > 0 {
			share = ds.Data[i] / total
		}

		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(chart.Hex(ds.Color(i)))).Render("■")
		fmt.Fprintf(&b, "%s %s %s %*.1f%%\n", swatch, label(name), bar(share, width-2, ds.Color(i)), chartValueWidth-1, share*100)
	}

	return b.String()
}

// renderBar draws horizontal bars from zero with the axis titles as header
func renderBar(spec chart.Spec, width int) string {
	ds := spec.Series()

	top := 0.0
	for _, v := range ds.Data {
		top = math.Max(top, v)
	}

	if top <= 0 {
		top = 1
	}

	var b strings.Builder

	x, y := "", ds.Label
	if spec.Options.XAxis != nil {
		x = spec.Options.XAxis.Title
	}

	if spec.Options.YAxis != nil {
		y = spec.Options.YAxis.Title
	}

	b.WriteString(chartTitleStyle.Render(fmt.Sprintf("%-*s %s", chartLabelWidth, x, y)) + "\n")

	for i, name := range spec.Labels {
		v := ds.Data[i]
		fmt.Fprintf(&b, "%s %s %*.0f\n", label(name), bar(v/top, width, ds.BorderColor), chartValueWidth, v)
	}

	return b.String()
}
