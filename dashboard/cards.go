// ABOUTME: Track card formatting, HTML rendering and list summary statistics
// ABOUTME: Energy and danceability are shown with two decimals

package dashboard

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"mood-dashboard/analysis"
)

// Card is the display form of a track
type Card struct {
	Name         string
	Artist       string
	Popularity   string
	Energy       string
	Danceability string
}

// Cards formats tracks in order. Empty input yields an empty, non-nil slice.
func Cards(tracks []analysis.Track) []Card {
	cards := make([]Card, len(tracks))

	for i, t := range tracks {
		cards[i] = Card{
			Name:         t.Name,
			Artist:       t.Artist,
			Popularity:   strconv.FormatFloat(t.Popularity, 'f', -1, 64),
			Energy:       fmt.Sprintf("%.2f", t.Energy),
			Danceability: fmt.Sprintf("%.2f", t.Danceability),
		}
	}

	return cards
}

// Detail is the metrics line shown under the artist
func (c Card) Detail() string {
	return fmt.Sprintf("Popularity: %s | Energy: %s | Danceability: %s", c.Popularity, c.Energy, c.Danceability)
}

var cardsTemplate = template.Must(template.New("cards").Parse(`{{range .}}<div class="p-4 bg-white rounded-lg shadow">
    <h3 class="font-semibold">{{.Name}}</h3>
    <p class="text-gray-600">{{.Artist}}</p>
    <div class="mt-2 text-sm text-gray-500">
        {{.Detail}}
    </div>
</div>
{{end}}`))

// RenderHTML writes cards as an HTML fragment
func RenderHTML(w io.Writer, cards []Card) error {
	if err := cardsTemplate.Execute(w, cards); err != nil {
		return fmt.Errorf("render cards: %w", err)
	}

	return nil
}

// Summary holds mean metrics over a track list
type Summary struct {
	Count        int
	Popularity   float64
	Energy       float64
	Danceability float64
}

// Summarize computes mean popularity, energy and danceability
func Summarize(tracks []analysis.Track) Summary {
	if len(tracks) == 0 {
		return Summary{}
	}

	pop := make([]float64, len(tracks))
	energy := make([]float64, len(tracks))
	dance := make([]float64, len(tracks))

	for i, t := range tracks {
		pop[i] = t.Popularity
		energy[i] = t.Energy
		dance[i] = t.Danceability
	}

	return Summary{
		Count:        len(tracks),
		Popularity:   stat.Mean(pop, nil),
		Energy:       stat.Mean(energy, nil),
		Danceability: stat.Mean(dance, nil),
	}
}

// String formats the summary as a single status line
func (s Summary) String() string {
	if s.Count == 0 {
		return "no tracks"
	}

	return fmt.Sprintf("%d tracks | avg popularity %.1f | energy %.2f | danceability %.2f",
		s.Count, s.Popularity, s.Energy, s.Danceability)
}
