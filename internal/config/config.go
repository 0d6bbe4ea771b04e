package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

// Config holds the CLI configuration
type Config struct {
	DefaultOutput string `json:"default_output,omitempty"`
	Terminal      string `json:"terminal,omitempty"`
	Shell         string `json:"shell,omitempty"`
	WorkspaceDir  string `json:"workspace_dir,omitempty"`
	ItemsFile     string `json:"items_file,omitempty"`
	LogFile       string `json:"log_file,omitempty"`

	path string
}

// Load reads config from the XDG path, returns defaults if the file doesn't exist
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads config from path. Comments and trailing commas are allowed.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{path: path}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Config{path: path}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// Path returns the file the config was loaded from
func (c *Config) Path() string {
	if c.path == "" {
		return ConfigPath()
	}
	return c.path
}

// Save writes the config back to its path
func (c *Config) Save() error {
	path := c.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Marshal to JSON (not JSON5 for writing - JSON is valid JSON5)
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Get retrieves a config value by key name
func (c *Config) Get(key string) (string, error) {
	f, err := c.field(key)
	if err != nil {
		return "", err
	}
	return f.String(), nil
}

// Set validates and sets a config value by key name, then saves
func (c *Config) Set(key, value string) error {
	f, err := c.field(key)
	if err != nil {
		return err
	}
	if err := ValidateValue(key, value); err != nil {
		return err
	}
	f.SetString(value)
	return c.Save()
}

// Unset resets a config value to its default and saves
func (c *Config) Unset(key string) error {
	f, err := c.field(key)
	if err != nil {
		return err
	}
	f.SetString("")
	return c.Save()
}

// Values returns every key with its current value, in Keys order.
func (c *Config) Values() map[string]string {
	out := make(map[string]string, len(Keys))
	for _, k := range Keys {
		v, _ := c.Get(k.Name)
		out[k.Name] = v
	}
	return out
}

func (c *Config) field(key string) (reflect.Value, error) {
	v := reflect.ValueOf(c).Elem()
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name != "" && name == key {
			return v.Field(i), nil
		}
	}

	return reflect.Value{}, fmt.Errorf("unknown config key: %s", key)
}

// ItemsPath is the item list file, honoring items_file
func (c *Config) ItemsPath() string {
	if c.ItemsFile != "" {
		return expandHome(c.ItemsFile)
	}
	return filepath.Join(DataDir(), "items.json")
}

// LogPath is the log file, honoring log_file
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return expandHome(c.LogFile)
	}
	return filepath.Join(StateDir(), "lnch.log")
}

// WorkspaceRoot is the directory the workspace is created under. Empty means
// the OS temp directory.
func (c *Config) WorkspaceRoot() string {
	return expandHome(c.WorkspaceDir)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
