// ABOUTME: Interactive dashboard mode
// ABOUTME: Loads the config and hands it with a live analyzer to the terminal UI

package main

import (
	"mood-dashboard/config"
	"mood-dashboard/tui"
)

// WatchOptions contains options for the interactive dashboard
type WatchOptions struct {
	ConfigPath string
	NoReload   bool
}

// RunTUI starts the interactive dashboard
func RunTUI(opts WatchOptions) error {
	path, cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	shared := config.NewSharedConfig(cfg)

	debugf("[TUI] Starting with %s (reload=%v)", path, !opts.NoReload)

	return tui.Run(
		tui.Options{
			ConfigPath:  path,
			WatchConfig: !opts.NoReload,
		},
		tui.Dependencies{
			SharedConfig: shared,
			Analyzer:     configuredAnalyzer{shared: shared},
			Debugf:       debugf,
		},
	)
}
