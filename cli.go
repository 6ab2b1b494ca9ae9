// ABOUTME: One-shot analysis mode for scripts and the command line
// ABOUTME: Drives a headless dashboard, exports chart images and prints the track cards

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/muesli/reflow/truncate"

	"mood-dashboard/analysis"
	"mood-dashboard/chart"
	"mood-dashboard/config"
	"mood-dashboard/dashboard"
	"mood-dashboard/pool"
)

// AnalyzeOptions contains command-line options for the analyze command.
// The Has* fields record which selectors were given; absent selectors use the configured defaults.
type AnalyzeOptions struct {
	ConfigPath string

	Mood    string
	Type    string
	Sort    string
	HasMood bool
	HasType bool
	HasSort bool

	All      bool   // one run per visualization type
	OutDir   string // overrides export.dir
	Format   string // overrides export.format
	HTMLPath string // write the cards as HTML here
}

// analysisRun is the outcome of one headless dashboard run
type analysisRun struct {
	Selection analysis.Selection
	Tracks    []analysis.Track
	Cards     []dashboard.Card
	ChartPath string // empty when no chart was drawn
	Err       error
}

// RunAnalyze runs the requested analyses and writes a report to out
func RunAnalyze(ctx context.Context, opts AnalyzeOptions, out io.Writer) error {
	_, cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	cfg = opts.applyExport(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid export options: %w", err)
	}

	if err := os.MkdirAll(cfg.Export.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	types := []string{opts.Type}
	hasType := opts.HasType

	if opts.All {
		types = types[:0]
		for _, t := range analysis.VisualizationTypes() {
			types = append(types, string(t))
		}

		hasType = true
	}

	an := configuredAnalyzer{shared: config.NewSharedConfig(cfg)}

	sp := startSpinner(out, isTerminal(out), fmt.Sprintf("Analyzing %d visualization(s)", len(types)))
	runs := pool.Each(ctx, len(types), types, func(ctx context.Context, t string) analysisRun {
		return runHeadless(ctx, cfg, an, opts.page(t, hasType))
	})
	elapsed := sp.Stop()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("analysis interrupted: %w", err)
	}

	debugf("[CLI] %d run(s) in %v", len(runs), elapsed)

	var (
		errs  []error
		first *analysisRun
	)

	for i := range runs {
		printRun(out, runs[i])

		if runs[i].Err != nil {
			errs = append(errs, runs[i].Err)

			continue
		}

		if first == nil {
			first = &runs[i]
		}
	}

	if first != nil {
		_, _ = fmt.Fprintln(out)
		printCards(out, first.Cards)
		_, _ = fmt.Fprintln(out, dashboard.Summarize(first.Tracks).String())

		if opts.HTMLPath != "" {
			if err := writeHTML(opts.HTMLPath, first.Cards); err != nil {
				errs = append(errs, err)
			} else {
				_, _ = fmt.Fprintf(out, "Cards written to: %s\n", opts.HTMLPath)
			}
		}
	}

	return errors.Join(errs...)
}

// applyExport overrides the export settings given on the command line
func (o AnalyzeOptions) applyExport(cfg config.Config) config.Config {
	if o.OutDir != "" {
		cfg.Export.Dir = o.OutDir
	}

	if cfg.Export.Dir == "" {
		cfg.Export.Dir = "."
	}

	if o.Format != "" {
		cfg.Export.Format = strings.ToLower(o.Format)
	}

	return cfg
}

// page builds a headless page holding only the selectors that were given
func (o AnalyzeOptions) page(vizType string, hasType bool) *dashboard.HeadlessPage {
	p := dashboard.NewHeadlessPage(dashboard.ChartContainerID)

	if o.HasMood {
		p.Selectors[dashboard.MoodSelectorID] = dashboard.NewStaticSelector(o.Mood)
	}

	if hasType {
		p.Selectors[dashboard.VisualizationSelectorID] = dashboard.NewStaticSelector(vizType)
	}

	if o.HasSort {
		p.Selectors[dashboard.SortSelectorID] = dashboard.NewStaticSelector(o.Sort)
	}

	return p
}

// runHeadless performs one analysis against page and exports its chart
func runHeadless(ctx context.Context, cfg config.Config, an dashboard.Analyzer, page *dashboard.HeadlessPage) analysisRun {
	factory := chart.ImageFactory{
		Dir:    cfg.Export.Dir,
		Format: cfg.Export.Format,
		Width:  cfg.Export.Width,
		Height: cfg.Export.Height,
	}

	ctrl := dashboard.New(page, an, factory, dashboard.Options{
		Defaults: cfg.Selection(),
		Logger:   logAdapter{printf: log.Printf},
	})
	defer ctrl.Close()

	sel := ctrl.Selection()
	page.Chart = dashboard.NewChartRegion(chartFileName(sel))

	run := analysisRun{Selection: sel}

	res := ctrl.Fetch(ctx, ctrl.Begin())
	if !ctrl.Apply(res) {
		run.Err = fmt.Errorf("%s: %w", sel.VisualizationType, res.Err)

		return run
	}

	run.Tracks = res.Response.Tracks
	run.Cards = page.List.Cards

	if ch, ok := ctrl.Current(); ok {
		if img, ok := ch.(*chart.ImageChart); ok {
			run.ChartPath = img.Path()
		}
	}

	return run
}

// chartFileName names the exported image after the selection, without path separators
func chartFileName(sel analysis.Selection) string {
	name := sel.Mood + "-" + string(sel.VisualizationType)

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(`/\: `, r) {
			return '_'
		}

		return r
	}, name)
}

// printRun writes the selection and exported chart of one run
func printRun(w io.Writer, run analysisRun) {
	sel := run.Selection
	_, _ = fmt.Fprintf(w, "Mood: %s | Visualization: %s | Sort: %s\n", sel.Mood, sel.VisualizationType, sel.SortMethod)

	switch {
	case run.Err != nil:
		_, _ = fmt.Fprintln(w, "  Failed")
	case run.ChartPath != "":
		_, _ = fmt.Fprintf(w, "  Chart: %s\n", run.ChartPath)
	default:
		_, _ = fmt.Fprintln(w, "  Chart: none")
	}
}

// printCards writes the track cards as a table
func printCards(out io.Writer, cards []dashboard.Card) {
	if len(cards) == 0 {
		_, _ = fmt.Fprintln(out, "No tracks")

		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "#\tName\tArtist\tPopularity\tEnergy\tDanceability"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "---\t----\t------\t----------\t------\t------------"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	for i, c := range cards {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			truncate.StringWithTail(c.Name, 30, "..."),
			truncate.StringWithTail(c.Artist, 20, "..."),
			c.Popularity,
			c.Energy,
			c.Danceability,
		); err != nil {
			log.Printf("Warning: failed to write track %d: %v", i+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}
}

// writeHTML writes cards as an HTML fragment to path
func writeHTML(path string, cards []dashboard.Card) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := dashboard.RenderHTML(f, cards); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// isTerminal reports whether out is a terminal
func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)

	return ok && isTTY(f)
}
