package config

import (
	"fmt"
	"slices"
	"strings"
)

// Key describes one settable config entry
type Key struct {
	Name        string
	Description string

	// Allowed restricts the value when non-empty. "" (unset) is always allowed.
	Allowed []string
}

// OutputModes are the values accepted by default_output and --output
var OutputModes = []string{"auto", "json", "plain", "rich"}

// Keys lists every config key in display order
var Keys = []Key{
	{Name: "default_output", Description: "output format when --output is not given", Allowed: OutputModes},
	{Name: "terminal", Description: "terminal emulator tried first on Linux"},
	{Name: "shell", Description: "shell that runs commands in Linux terminals (default bash)"},
	{Name: "workspace_dir", Description: "directory the command workspace is created in (default: OS temp)"},
	{Name: "items_file", Description: "path of the saved item list"},
	{Name: "log_file", Description: "path of the log file"},
}

// LookupKey returns the key named name
func LookupKey(name string) (Key, error) {
	for _, k := range Keys {
		if k.Name == name {
			return k, nil
		}
	}
	return Key{}, fmt.Errorf("unknown config key: %s", name)
}

// KeyNames returns all key names in display order
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// ValidateValue checks value against the key's allowed values
func ValidateValue(key, value string) error {
	k, err := LookupKey(key)
	if err != nil {
		return err
	}
	if value == "" || len(k.Allowed) == 0 || slices.Contains(k.Allowed, value) {
		return nil
	}
	return fmt.Errorf("invalid value %q for %s (valid: %s)", value, key, strings.Join(k.Allowed, ", "))
}
