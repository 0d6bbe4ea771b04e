package cli

import (
	"os"

	"golang.org/x/term"

	"github.com/semmy-space/lnch/internal/config"
)

// Globals holds global flags available to all commands
type Globals struct {
	Output      string `help:"Output format" default:"" enum:"json,plain,rich,auto," short:"o" env:"LNCH_OUTPUT"`
	Verbose     bool   `help:"Mirror log lines to stderr" short:"v" env:"LNCH_VERBOSE"`
	ResultsOnly bool   `help:"Strip JSON envelope, return data array only" env:"LNCH_RESULTS_ONLY"`
	NoInput     bool   `help:"Disable interactive prompts (fail instead)" env:"LNCH_NO_INPUT"`
	Force       bool   `help:"Skip confirmation prompts for destructive operations" env:"LNCH_FORCE"`
	DryRun      bool   `help:"Print what would be spawned or changed without doing it" name:"dry-run" env:"LNCH_DRY_RUN"`
	ConfigFile  string `help:"Config file to use instead of the default" name:"config" type:"path" env:"LNCH_CONFIG"`
}

// ResolvedOutput returns the effective output mode: flag, then the
// default_output config key, then "auto". "auto" detects TTY: if stdout is
// TTY -> rich, else -> plain
func (g *Globals) ResolvedOutput(cfg *config.Config) string {
	mode := g.Output
	if mode == "" && cfg != nil {
		mode = cfg.DefaultOutput
	}
	if mode != "" && mode != "auto" {
		return mode
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return "rich"
	}

	return "plain"
}

// interactive reports whether prompts may be shown
func (g *Globals) interactive() bool {
	return !g.NoInput && term.IsTerminal(int(os.Stdin.Fd()))
}
