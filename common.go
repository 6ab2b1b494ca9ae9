// ABOUTME: Shared initialization code for the dashboard and one-shot analysis
// ABOUTME: Provides config loading, the analysis client and the debug log

package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"mood-dashboard/analysis"
	"mood-dashboard/config"
)

var debugLog *log.Logger

// loadConfig reads and validates the config at path, or at the default location when path is empty.
// It returns the path that was used so callers can watch it.
func loadConfig(path string) (string, config.Config, error) {
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return path, cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return path, cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}

	debugf("[CONFIG] Loaded %s: endpoint=%s timeout=%s fence=%v", path, cfg.Endpoint, cfg.RequestTimeout.Duration, cfg.FenceStaleResponses)

	return path, cfg, nil
}

// newAnalysisClient builds a client for the configured endpoint and request timeout
func newAnalysisClient(cfg config.Config) *analysis.Client {
	return analysis.NewClient(&http.Client{Timeout: cfg.RequestTimeout.Duration}, cfg.Endpoint)
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	if isTTY(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog opens filename and routes debugf output to it
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}
