package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"
	"github.com/willabides/kongplete"

	"github.com/semmy-space/lnch/internal/cli"
	"github.com/semmy-space/lnch/internal/output"
)

var (
	version = "dev"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cliInstance := &cli.CLI{}
	defer cliInstance.Close()

	parser := kong.Must(cliInstance,
		kong.Name("lnch"),
		kong.Description("Save files, folders, URLs and shell commands, then open them in one step"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	// Answers shell completion requests and exits
	kongplete.Complete(parser,
		kongplete.WithPredictor("item", cli.ItemPredictor()),
	)

	ctx, err := parser.Parse(args)
	if err != nil {
		// hook errors arrive here already carrying an exit code
		var cliErr *output.CLIError
		if errors.As(err, &cliErr) {
			return output.ExitWithError(output.New("plain"), err)
		}
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			_ = parseErr.Context.PrintUsage(true)
		}
		return output.ExitWithError(output.New("plain"),
			output.Wrap(output.ExitUsage, "invalid arguments", err))
	}

	// Run command with bound dependencies
	if err := ctx.Run(); err != nil {
		return output.ExitWithError(output.New("plain"), err)
	}
	return output.ExitOK
}
