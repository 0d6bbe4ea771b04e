package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// ConfigDir returns the XDG-compliant config directory for lnch
// Typically ~/.config/lnch/ on Linux
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "lnch")
}

// ConfigPath returns the full path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json5")
}

// DataDir holds the item list
// Typically ~/.local/share/lnch/ on Linux
func DataDir() string {
	return filepath.Join(xdg.DataHome, "lnch")
}

// StateDir holds the log file
// Typically ~/.local/state/lnch/ on Linux
func StateDir() string {
	return filepath.Join(xdg.StateHome, "lnch")
}
