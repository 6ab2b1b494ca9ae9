// ABOUTME: Tests for surface binding, chart handles and image export
// ABOUTME: Renders small PNG and SVG files into a temp dir

package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mood-dashboard/analysis"
)

func TestCanvasHoldsOneChart(t *testing.T) {
	c := NewCanvas("analysis-results")

	h, err := NewHandle(c, Spec{Kind: Bar})
	if err != nil {
		t.Fatalf("NewHandle failed: %v", err)
	}

	if _, err := NewHandle(c, Spec{Kind: Pie}); !errors.Is(err, ErrSurfaceBusy) {
		t.Errorf("Expected ErrSurfaceBusy, got %v", err)
	}

	h.Destroy()
	h.Destroy()

	if c.Bound() {
		t.Error("Expected canvas to be released after Destroy")
	}

	if _, err := NewHandle(c, Spec{Kind: Pie}); err != nil {
		t.Errorf("Expected canvas to be reusable, got %v", err)
	}
}

func TestImageFactoryWritesFiles(t *testing.T) {
	dir := t.TempDir()

	specs := map[string]Spec{
		"radar": AudioFeaturesSpec(analysis.AudioFeatures{Features: []analysis.Feature{
			{Name: "energy", Value: 0.7}, {Name: "valence", Value: 0.4}, {Name: "danceability", Value: 0.9},
		}}),
		"pie": GenreDistributionSpec(analysis.GenreDistribution{Genres: []analysis.GenreCount{
			{Genre: "pop", Count: 5}, {Genre: "rock", Count: 2},
		}}),
		"bar": TopSongsSpec(analysis.TopSongs{Songs: []analysis.Song{
			{Name: "A very long song title indeed", Popularity: 80}, {Name: "B", Popularity: 40},
		}}),
		"empty": TopSongsSpec(analysis.TopSongs{}),
	}

	for _, format := range []string{FormatPNG, FormatSVG} {
		f := ImageFactory{Dir: dir, Format: format, Width: 320, Height: 240}

		for name, spec := range specs {
			t.Run(format+"/"+name, func(t *testing.T) {
				c, err := f.New(NewCanvas(name), spec)
				if err != nil {
					t.Fatalf("New failed: %v", err)
				}
				defer c.Destroy()

				img, ok := c.(*ImageChart)
				if !ok {
					t.Fatalf("Expected *ImageChart, got %T", c)
				}

				if img.Path() != filepath.Join(dir, name+"."+format) {
					t.Errorf("Path = %s", img.Path())
				}

				info, err := os.Stat(img.Path())
				if err != nil || info.Size() == 0 {
					t.Errorf("Expected non-empty file at %s: %v", img.Path(), err)
				}
			})
		}
	}
}

func TestImageFactoryRejectsUnknownFormat(t *testing.T) {
	c := NewCanvas("x")

	_, err := ImageFactory{Dir: t.TempDir(), Format: "gif"}.New(c, Spec{Kind: Bar})
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("Expected ErrFormat, got %v", err)
	}

	if c.Bound() {
		t.Error("Surface should stay free after a failed create")
	}
}

func TestImageRenderPNGSignature(t *testing.T) {
	var buf bytes.Buffer

	spec := TopSongsSpec(analysis.TopSongs{Songs: []analysis.Song{{Name: "A", Popularity: 0}}})
	if err := (ImageFactory{Width: 200, Height: 150}).Render(&buf, FormatPNG, spec); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Expected PNG output")
	}
}

func TestRadarScale(t *testing.T) {
	if got := radarScale([]float64{0.2, 0.9}); got != 1 {
		t.Errorf("radarScale of unit values = %v, want 1", got)
	}

	if got := radarScale([]float64{0.5, 120}); got != 120 {
		t.Errorf("radarScale = %v, want 120", got)
	}
}
