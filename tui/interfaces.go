// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with fakes

package tui

import "mood-dashboard/config"

// ConfigProvider provides thread-safe access to the live configuration
type ConfigProvider interface {
	Get() config.Config
	Update(cfg config.Config)
}

// debugLogger adapts a debugf function to the controller's Printf logger
type debugLogger func(string, ...interface{})

func (d debugLogger) Printf(format string, args ...interface{}) {
	d("[DASHBOARD] "+format, args...)
}
