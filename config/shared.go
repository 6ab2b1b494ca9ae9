// ABOUTME: Thread-safe holder for the live configuration
// ABOUTME: Read by request goroutines, replaced by the UI on reload

package config

import "sync"

// SharedConfig wraps Config with a mutex for access from request goroutines and the TUI
type SharedConfig struct {
	mu     sync.RWMutex
	config Config
}

// NewSharedConfig creates a holder with an initial config
func NewSharedConfig(config Config) *SharedConfig {
	return &SharedConfig{config: config}
}

// Get returns a copy of the current config (thread-safe read)
func (sc *SharedConfig) Get() Config {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return sc.config
}

// Update replaces the config (thread-safe write)
func (sc *SharedConfig) Update(config Config) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.config = config
}
