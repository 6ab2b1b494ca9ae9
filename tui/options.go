// ABOUTME: TUI mode configuration and injected dependencies
// ABOUTME: Defines everything needed to run the interactive dashboard

package tui

import "mood-dashboard/dashboard"

// Options contains configuration for running the TUI
type Options struct {
	ConfigPath  string // Config file to watch and reload
	WatchConfig bool   // Reload the config file when it changes
}

// Dependencies holds all external dependencies for the TUI
type Dependencies struct {
	SharedConfig ConfigProvider
	Analyzer     dashboard.Analyzer
	Debugf       func(string, ...interface{})
}
