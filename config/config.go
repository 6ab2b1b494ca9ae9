// ABOUTME: Configuration management for the mood dashboard
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

// Package config loads, validates and watches the dashboard's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"mood-dashboard/analysis"
)

// Config holds every dashboard setting
type Config struct {
	Endpoint            string   `toml:"endpoint"`
	RequestTimeout      Duration `toml:"request_timeout"`       // zero means no timeout
	FenceStaleResponses bool     `toml:"fence_stale_responses"` // drop responses of superseded requests

	Defaults  Defaults  `toml:"defaults"`
	Selectors Selectors `toml:"selectors"`
	Choices   Choices   `toml:"choices"`
	Export    Export    `toml:"export"`
}

// Defaults are used for selectors that are absent or empty
type Defaults struct {
	Mood              string `toml:"mood"`
	VisualizationType string `toml:"visualization_type"`
	SortMethod        string `toml:"sort_method"`
}

// Selectors switches individual selectors on the dashboard on or off
type Selectors struct {
	Mood          bool `toml:"mood"`
	Visualization bool `toml:"visualization"`
	Sorting       bool `toml:"sorting"`
}

// Choices are the values offered by the mood and sort selectors
type Choices struct {
	Moods       []string `toml:"moods"`
	SortMethods []string `toml:"sort_methods"`
}

// Export controls chart image output
type Export struct {
	Dir    string `toml:"dir"`
	Format string `toml:"format"` // png or svg
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Duration is a time.Duration written as a string such as "5s"
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}

	d.Duration = v

	return nil
}

// MarshalText formats the duration
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/mood-dashboard/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./mood-dashboard.toml"); err == nil {
		return "./mood-dashboard.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./mood-dashboard.toml"
	}

	return filepath.Join(home, ".config", "mood-dashboard", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// Keys missing from the file keep their default values; a missing file yields the defaults
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		_ = f.Close()

		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the built-in configuration: every selector shown,
// a local backend and fencing of stale responses
func DefaultConfig() Config {
	return Config{
		Endpoint:            analysis.DefaultEndpoint,
		FenceStaleResponses: true,
		Defaults: Defaults{
			Mood:              analysis.DefaultMood,
			VisualizationType: string(analysis.DefaultVisualizationType),
			SortMethod:        analysis.DefaultSortMethod,
		},
		Selectors: Selectors{Mood: true, Visualization: true, Sorting: true},
		Choices: Choices{
			Moods:       append([]string(nil), analysis.Moods...),
			SortMethods: append([]string(nil), analysis.SortMethods...),
		},
		Export: Export{
			Dir:    ".",
			Format: "png",
			Width:  800,
			Height: 600,
		},
	}
}

// Selection returns the configured defaults as a selection
func (c Config) Selection() analysis.Selection {
	return analysis.Selection{
		Mood:              c.Defaults.Mood,
		VisualizationType: analysis.VisualizationType(c.Defaults.VisualizationType),
		SortMethod:        c.Defaults.SortMethod,
	}
}

// Validate reports every invalid setting
func (c Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Endpoint)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("endpoint: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("endpoint: scheme must be http or https, got %q", u.Scheme))
	case u.Host == "":
		errs = append(errs, errors.New("endpoint: missing host"))
	}

	if c.RequestTimeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("request_timeout: must not be negative, got %s", c.RequestTimeout))
	}

	if c.Export.Format != "png" && c.Export.Format != "svg" {
		errs = append(errs, fmt.Errorf("export.format: must be png or svg, got %q", c.Export.Format))
	}

	if c.Export.Width < 0 || c.Export.Height < 0 {
		errs = append(errs, fmt.Errorf("export: negative size %dx%d", c.Export.Width, c.Export.Height))
	}

	if len(c.Choices.Moods) == 0 {
		errs = append(errs, errors.New("choices.moods: must not be empty"))
	}

	if len(c.Choices.SortMethods) == 0 {
		errs = append(errs, errors.New("choices.sort_methods: must not be empty"))
	}

	return errors.Join(errs...)
}
