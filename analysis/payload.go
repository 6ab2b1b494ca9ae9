// ABOUTME: Typed visualization payloads and the analysis response model
// ABOUTME: Decodes visualizationData by requested type, keeping JSON key order

package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Payload is the visualization data of a response. It is a closed set:
// AudioFeatures, GenreDistribution and TopSongs are the only implementations.
type Payload interface {
	VisualizationType() VisualizationType
	isPayload()
}

// Feature is one named audio feature value
type Feature struct {
	Name  string
	Value float64
}

// AudioFeatures maps feature names to values in the order the backend sent them
type AudioFeatures struct {
	Features []Feature
}

// GenreCount is the number of tracks attributed to one genre
type GenreCount struct {
	Genre string
	Count float64
}

// GenreDistribution maps genres to counts in the order the backend sent them
type GenreDistribution struct {
	Genres []GenreCount
}

// Song is one entry of the top songs payload
type Song struct {
	Name       string  `json:"name"`
	Artist     string  `json:"artist"`
	Popularity float64 `json:"popularity"`
}

// TopSongs is the ordered top songs payload
type TopSongs struct {
	Songs []Song
}

func (AudioFeatures) VisualizationType() VisualizationType     { return AudioFeaturesType }
func (GenreDistribution) VisualizationType() VisualizationType { return GenreDistributionType }
func (TopSongs) VisualizationType() VisualizationType          { return TopSongsType }

func (AudioFeatures) isPayload()     {}
func (GenreDistribution) isPayload() {}
func (TopSongs) isPayload()          {}

// Track is one entry of the track list
type Track struct {
	Name         string  `json:"name"`
	Artist       string  `json:"artist"`
	Popularity   float64 `json:"popularity"`
	Energy       float64 `json:"energy"`
	Danceability float64 `json:"danceability"`
}

// Response is a decoded analysis response. Payload is nil when the
// requested visualization type is not one of the known types.
type Response struct {
	Payload Payload
	Tracks  []Track
}

// wireResponse mirrors the JSON body of /api/analyze
type wireResponse struct {
	VisualizationData json.RawMessage `json:"visualizationData"`
	Tracks            []Track         `json:"tracks"`
}

// DecodeResponse reads an analysis response body. The shape of
// visualizationData depends on the visualization type that was requested.
func DecodeResponse(r io.Reader, t VisualizationType) (Response, error) {
	var wire wireResponse
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return Response{}, fmt.Errorf("decode response: %w", err)
	}

	payload, err := DecodePayload(t, wire.VisualizationData)
	if err != nil {
		return Response{}, err
	}

	return Response{Payload: payload, Tracks: wire.Tracks}, nil
}

// DecodePayload decodes raw visualization data for type t.
// A null or missing payload for a known type decodes to the empty variant;
// an unknown type decodes to nil.
func DecodePayload(t VisualizationType, raw json.RawMessage) (Payload, error) {
	empty := len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))

	switch t {
	case AudioFeaturesType:
		if empty {
			return AudioFeatures{}, nil
		}

		keys, values, err := decodeOrderedNumbers(raw)
		if err != nil {
			return nil, fmt.Errorf("decode audio features: %w", err)
		}

		features := make([]Feature, len(keys))
		for i := range keys {
			features[i] = Feature{Name: keys[i], Value: values[i]}
		}

		return AudioFeatures{Features: features}, nil

	case GenreDistributionType:
		if empty {
			return GenreDistribution{}, nil
		}

		keys, values, err := decodeOrderedNumbers(raw)
		if err != nil {
			return nil, fmt.Errorf("decode genre distribution: %w", err)
		}

		genres := make([]GenreCount, len(keys))
		for i := range keys {
			genres[i] = GenreCount{Genre: keys[i], Count: values[i]}
		}

		return GenreDistribution{Genres: genres}, nil

	case TopSongsType:
		if empty {
			return TopSongs{}, nil
		}

		var songs []Song
		if err := json.Unmarshal(raw, &songs); err != nil {
			return nil, fmt.Errorf("decode top songs: %w", err)
		}

		return TopSongs{Songs: songs}, nil
	}

	return nil, nil //nolint:nilnil // unknown types carry no payload
}

var errNotObject = errors.New("expected JSON object")

// decodeOrderedNumbers decodes a JSON object of numbers, keeping key order.
// A repeated key keeps its first position and takes the last value.
func decodeOrderedNumbers(raw json.RawMessage) ([]string, []float64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errNotObject
	}

	var (
		keys   []string
		values []float64
		seen   = make(map[string]int)
	)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected key token %v", tok)
		}

		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return nil, nil, fmt.Errorf("value for %q: %w", key, err)
		}

		v, err := n.Float64()
		if err != nil {
			return nil, nil, fmt.Errorf("value for %q: %w", key, err)
		}

		if idx, dup := seen[key]; dup {
			values[idx] = v

			continue
		}

		seen[key] = len(keys)
		keys = append(keys, key)
		values = append(values, v)
	}

	// Closing brace
	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}

	return keys, values, nil
}
