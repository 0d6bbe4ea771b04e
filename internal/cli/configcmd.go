package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/semmy-space/lnch/internal/config"
	"github.com/semmy-space/lnch/internal/output"
)

func unknownKey(key string) error {
	return output.NewCLIError(output.ExitUsage, fmt.Sprintf("Unknown config key: %s", key)).
		WithHint("Valid keys: " + strings.Join(config.KeyNames(), ", "))
}

// ConfigGetCmd implements config get command
type ConfigGetCmd struct {
	Key string `arg:"" help:"Config key to get (e.g., terminal, shell)"`
}

// Run executes the get command
func (cmd *ConfigGetCmd) Run(cfg *config.Config, app *App) error {
	value, err := cfg.Get(cmd.Key)
	if err != nil {
		return unknownKey(cmd.Key)
	}

	fmt.Fprintln(app.stdout, value)
	return nil
}

// ConfigSetCmd implements config set command
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key to set"`
	Value string `arg:"" help:"Value to set"`
}

// Run executes the set command
func (cmd *ConfigSetCmd) Run(cfg *config.Config, fp *FormatterProvider, app *App) error {
	if _, err := config.LookupKey(cmd.Key); err != nil {
		return unknownKey(cmd.Key)
	}
	if err := config.ValidateValue(cmd.Key, cmd.Value); err != nil {
		return output.Wrap(output.ExitUsage, "invalid value", err)
	}

	if app.globals.DryRun {
		app.dryRun("Would set %s = %s", cmd.Key, cmd.Value)
		return nil
	}

	if err := cfg.Set(cmd.Key, cmd.Value); err != nil {
		return output.Wrap(output.ExitConfigError, "failed to set config", err)
	}

	fp.Formatter.PrintMessage(fmt.Sprintf("Set %s = %s", cmd.Key, cmd.Value))
	return nil
}

// ConfigUnsetCmd implements config unset command
type ConfigUnsetCmd struct {
	Key string `arg:"" help:"Config key to remove"`
}

// Run executes the unset command
func (cmd *ConfigUnsetCmd) Run(cfg *config.Config, fp *FormatterProvider, app *App) error {
	if _, err := config.LookupKey(cmd.Key); err != nil {
		return unknownKey(cmd.Key)
	}

	if app.globals.DryRun {
		app.dryRun("Would unset %s", cmd.Key)
		return nil
	}

	if err := cfg.Unset(cmd.Key); err != nil {
		return output.Wrap(output.ExitConfigError, "failed to unset config", err)
	}

	fp.Formatter.PrintMessage("Unset " + cmd.Key)
	return nil
}

// ConfigListConfigCmd implements config list command
type ConfigListConfigCmd struct{}

// Run executes the list command
func (cmd *ConfigListConfigCmd) Run(cfg *config.Config, fp *FormatterProvider) error {
	type ConfigItem struct {
		Key         string `json:"key"`
		Value       string `json:"value"`
		Description string `json:"description"`
	}

	values := cfg.Values()
	items := make([]ConfigItem, len(config.Keys))
	for i, k := range config.Keys {
		items[i] = ConfigItem{Key: k.Name, Value: values[k.Name], Description: k.Description}
	}

	cols := []output.Column{
		{Name: "Key", Key: "Key"},
		{Name: "Value", Key: "Value"},
		{Name: "Description", Key: "Description"},
	}

	return fp.Formatter.PrintList(items, cols)
}

// ConfigPathCmd implements config path command
type ConfigPathCmd struct{}

// Run executes the path command
func (cmd *ConfigPathCmd) Run(cfg *config.Config, app *App) error {
	path := cfg.Path()

	fmt.Fprintln(app.stdout, path)

	// Print existence hint to stderr
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(app.stderr, "(file does not exist yet - will be created on first write)\n")
	} else {
		fmt.Fprintf(app.stderr, "(file exists)\n")
	}

	return nil
}
