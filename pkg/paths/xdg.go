// Package paths provides XDG-compliant path resolution for gate.
//
// Resolution order:
// 1. GATE_HOME (portable root) → $GATE_HOME/{config,cache}
// 2. XDG env vars → $XDG_*_HOME/gate
// 3. Platform defaults → ~/.config/gate, ~/.cache/gate
package paths

import (
	"os"
	"path/filepath"
)

// getConfigHome returns the base config home directory.
func getConfigHome() string {
	if gateHome := os.Getenv("GATE_HOME"); gateHome != "" {
		return filepath.Join(gateHome, "config")
	}
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config")
	}
	return ""
}

// getCacheHome returns the base cache home directory.
func getCacheHome() string {
	if gateHome := os.Getenv("GATE_HOME"); gateHome != "" {
		return filepath.Join(gateHome, "cache")
	}
	if xdgCacheHome := os.Getenv("XDG_CACHE_HOME"); xdgCacheHome != "" {
		return xdgCacheHome
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".cache")
	}
	return ""
}

// ConfigDir returns the gate configuration directory.
func ConfigDir() string {
	base := getConfigHome()
	if base == "" {
		return ""
	}
	if os.Getenv("GATE_HOME") != "" {
		return base
	}
	return filepath.Join(base, "gate")
}

// CacheDir returns the gate cache directory.
func CacheDir() string {
	base := getCacheHome()
	if base == "" {
		return ""
	}
	if os.Getenv("GATE_HOME") != "" {
		return base
	}
	return filepath.Join(base, "gate")
}
