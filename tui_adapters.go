// ABOUTME: Adapter implementations for the dashboard's injected dependencies
// ABOUTME: Bridges the live config and debug log to the TUI and controller

package main

import (
	"context"

	"mood-dashboard/analysis"
	"mood-dashboard/config"
)

// configuredAnalyzer posts to whatever endpoint the live config names,
// so an endpoint or timeout change applies to the next request.
type configuredAnalyzer struct {
	shared *config.SharedConfig
}

func (a configuredAnalyzer) Analyze(ctx context.Context, sel analysis.Selection) (analysis.Response, error) {
	cfg := a.shared.Get()
	debugf("[ANALYZE] POST %s mood=%s type=%s sort=%s", cfg.Endpoint, sel.Mood, sel.VisualizationType, sel.SortMethod)

	resp, err := newAnalysisClient(cfg).Analyze(ctx, sel)
	if err != nil {
		debugf("[ANALYZE] Failed: %v", err)

		return resp, err
	}

	debugf("[ANALYZE] %d tracks", len(resp.Tracks))

	return resp, nil
}

// logAdapter sends controller messages to the user and to the debug log
type logAdapter struct {
	printf func(string, ...interface{})
}

func (l logAdapter) Printf(format string, args ...interface{}) {
	if l.printf != nil {
		l.printf(format, args...)
	}

	debugf(format, args...)
}
