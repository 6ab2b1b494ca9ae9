// ABOUTME: Selection state and visualization type enum for mood analysis
// ABOUTME: Provides built-in defaults and the choice lists offered by the backend

// Package analysis models the mood analysis exchange with the backend:
// the selection that is posted, the typed visualization payloads and tracks
// that come back, and the HTTP client that performs the round trip.
package analysis

// VisualizationType selects which chart strategy renders a response payload.
// Values outside the known set are carried through requests verbatim.
type VisualizationType string

// Known visualization types
const (
	AudioFeaturesType     VisualizationType = "audioFeatures"
	GenreDistributionType VisualizationType = "genreDistribution"
	TopSongsType          VisualizationType = "topSongs"
)

// Built-in selection defaults, used for any selector that is absent or empty
const (
	DefaultMood              = "happy"
	DefaultVisualizationType = AudioFeaturesType
	DefaultSortMethod        = "popularity"
)

// Moods lists the moods the backend knows target features for
var Moods = []string{"happy", "sad", "energetic", "chill"}

// SortMethods lists the track orderings the backend supports
var SortMethods = []string{"popularity", "energy", "danceability"}

// VisualizationTypes returns the known visualization types in display order
func VisualizationTypes() []VisualizationType {
	return []VisualizationType{AudioFeaturesType, GenreDistributionType, TopSongsType}
}

// Known reports whether t is one of the three supported visualization types
func (t VisualizationType) Known() bool {
	switch t {
	case AudioFeaturesType, GenreDistributionType, TopSongsType:
		return true
	}

	return false
}

// Selection is the tuple of mood, visualization type and sort method posted
// to the analysis endpoint. It is recomputed from the page on every request.
type Selection struct {
	Mood              string            `json:"mood"`
	VisualizationType VisualizationType `json:"visualizationType"`
	SortMethod        string            `json:"sortMethod"`
}

// DefaultSelection returns the built-in defaults
func DefaultSelection() Selection {
	return Selection{
		Mood:              DefaultMood,
		VisualizationType: DefaultVisualizationType,
		SortMethod:        DefaultSortMethod,
	}
}

// WithDefaults fills every empty field of s from defaults
func (s Selection) WithDefaults(defaults Selection) Selection {
	if s.Mood == "" {
		s.Mood = defaults.Mood
	}

	if s.VisualizationType == "" {
		s.VisualizationType = defaults.VisualizationType
	}

	if s.SortMethod == "" {
		s.SortMethod = defaults.SortMethod
	}

	return s
}
