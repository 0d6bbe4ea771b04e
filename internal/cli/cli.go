package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/lnch/internal/config"
	"github.com/semmy-space/lnch/internal/output"
)

// FormatterProvider wraps the formatter interface for Kong binding
type FormatterProvider struct {
	Formatter output.Formatter
}

// CLI is the root command structure
type CLI struct {
	Globals

	Add      AddCmd      `cmd:"" help:"Save a path, URL or command"`
	List     ListCmd     `cmd:"" aliases:"ls" help:"List saved items"`
	Show     ShowCmd     `cmd:"" help:"Show one saved item"`
	Edit     EditCmd     `cmd:"" help:"Change a saved item"`
	Rm       RmCmd       `cmd:"" aliases:"remove" help:"Remove saved items"`
	Mv       MvCmd       `cmd:"" aliases:"move" help:"Move a saved item to another position"`
	Clear    ClearCmd    `cmd:"" help:"Remove every saved item"`
	Open     OpenCmd     `cmd:"" help:"Open saved items"`
	Launch   LaunchCmd   `cmd:"" help:"Classify and open a target without saving it"`
	Classify ClassifyCmd `cmd:"" help:"Show how a target would be classified"`
	Reveal   RevealCmd   `cmd:"" help:"Show a saved file or folder in the file manager"`
	Copy     CopyCmd     `cmd:"" help:"Copy a saved item's path to the clipboard"`
	Pick     PickCmd     `cmd:"" help:"Pick an item interactively and open it"`

	Workspace WorkspaceCmd `cmd:"" help:"Inspect the command workspace"`
	Export    ExportCmd    `cmd:"" help:"Export saved items as JSON or YAML"`
	Import    ImportCmd    `cmd:"" help:"Import saved items from JSON or YAML"`
	Paths     PathsCmd     `cmd:"" help:"Show the files lnch reads and writes"`

	Config     ConfigCmd     `cmd:"" help:"Configuration commands"`
	Completion CompletionCmd `cmd:"" help:"Shell completion"`
	Version    VersionCmd    `cmd:"" help:"Show version information"`

	app *App
}

// AfterApply runs once flags are parsed and before the command.
// It loads config, creates the formatter and the app, and binds them.
func (c *CLI) AfterApply(ctx *kong.Context) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return output.Wrap(output.ExitConfigError, "failed to load config", err).
			WithHint("Run: lnch config path")
	}

	mode := c.ResolvedOutput(cfg)
	formatter := &FormatterProvider{
		Formatter: output.NewWithWriters(mode, c.ResultsOnly, ctx.Stdout, ctx.Stderr),
	}

	c.app = newApp(cfg, &c.Globals, formatter, ctx.Stdout, ctx.Stderr)

	// Bind dependencies to kong context
	ctx.Bind(cfg)
	ctx.Bind(formatter)
	ctx.Bind(&c.Globals)
	ctx.Bind(c.app)

	return nil
}

func (c *CLI) loadConfig() (*config.Config, error) {
	if c.ConfigFile != "" {
		return config.LoadFrom(c.ConfigFile)
	}
	return config.Load()
}

// Close releases the log file. Safe to call when no command ran.
func (c *CLI) Close() error {
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

// WorkspaceCmd holds workspace subcommands
type WorkspaceCmd struct {
	Path  WorkspacePathCmd  `cmd:"" help:"Print the workspace directory"`
	List  WorkspaceListCmd  `cmd:"" aliases:"ls" help:"List generated scripts"`
	Prune WorkspacePruneCmd `cmd:"" help:"Delete old generated scripts"`
}

// ConfigCmd holds configuration subcommands
type ConfigCmd struct {
	Get   ConfigGetCmd        `cmd:"" help:"Get a configuration value"`
	Set   ConfigSetCmd        `cmd:"" help:"Set a configuration value"`
	Unset ConfigUnsetCmd      `cmd:"" help:"Remove a configuration value"`
	List  ConfigListConfigCmd `cmd:"" name:"list" help:"List all configuration values"`
	Path  ConfigPathCmd       `cmd:"" help:"Show config file path"`
}

// CompletionCmd holds completion subcommands
type CompletionCmd struct {
	Install kongplete.InstallCompletions `cmd:"" help:"Install shell completions for bash, zsh or fish"`
}

// VersionCmd shows version information
type VersionCmd struct{}

func (cmd *VersionCmd) Run(ctx *kong.Context) error {
	version := ctx.Model.Vars()["version"]
	fmt.Fprintln(ctx.Stdout, "lnch version "+version)
	return nil
}
