package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/semmy-space/lnch/internal/output"
	"github.com/semmy-space/lnch/internal/store"
)

// ExportCmd writes the item list to a file or stdout
type ExportCmd struct {
	File   string `arg:"" optional:"" help:"Destination file (default: stdout)" type:"path"`
	Format string `help:"json or yaml (default: from the file extension)" short:"f" enum:"json,yaml," default:""`
}

// Run executes the export command
func (cmd *ExportCmd) Run(app *App) error {
	s, err := app.Store()
	if err != nil {
		return err
	}

	format := cmd.Format
	if format == "" {
		format = store.FormatFromPath(cmd.File)
	}

	if cmd.File == "" {
		return storeError(s.Export(app.stdout, format))
	}

	if app.globals.DryRun {
		app.dryRun("Would write %s", cmd.File)
		return nil
	}

	f, err := os.Create(cmd.File)
	if err != nil {
		return output.Wrap(output.ExitGeneral, "failed to create export file", err)
	}
	if err := s.Export(f, format); err != nil {
		f.Close()
		return storeError(err)
	}
	if err := f.Close(); err != nil {
		return output.Wrap(output.ExitGeneral, "failed to write export file", err)
	}

	app.fp.Formatter.PrintMessage(fmt.Sprintf("Exported to %s", cmd.File))
	return nil
}

// ImportCmd reads items from a file or stdin ("-")
type ImportCmd struct {
	File    string `arg:"" help:"Source file, or - for stdin"`
	Format  string `help:"json or yaml (default: from the file extension)" short:"f" enum:"json,yaml," default:""`
	Replace bool   `help:"Replace the saved list instead of merging"`
}

// Run executes the import command
func (cmd *ImportCmd) Run(app *App) error {
	if cmd.Replace && !app.globals.Force && !app.globals.DryRun {
		return output.NewCLIError(output.ExitUsage, "--replace requires --force")
	}

	s, err := app.Store()
	if err != nil {
		return err
	}

	format := cmd.Format
	if format == "" {
		format = store.FormatFromPath(cmd.File)
	}

	var r io.Reader = os.Stdin
	if cmd.File != "-" {
		f, err := os.Open(cmd.File)
		if err != nil {
			return output.Wrap(output.ExitNotFound, "failed to open import file", err)
		}
		defer f.Close()
		r = f
	}

	if app.globals.DryRun {
		app.dryRun("Would import %s as %s", cmd.File, format)
		return nil
	}

	added, err := s.Import(r, format, cmd.Replace)
	if err != nil {
		return storeError(err)
	}
	app.Logger().Printf("store: imported %d item(s) from %s", added, cmd.File)
	return app.result(map[string]int{"added": added}, fmt.Sprintf("Imported %d item(s)", added))
}

// pathView lists the files lnch uses
type pathView struct {
	Config    string `json:"config"`
	Items     string `json:"items"`
	Log       string `json:"log"`
	Workspace string `json:"workspace"`
}

// PathsCmd prints every file and directory lnch uses
type PathsCmd struct{}

// Run executes the paths command
func (cmd *PathsCmd) Run(app *App, fp *FormatterProvider) error {
	return fp.Formatter.Print(pathView{
		Config:    app.cfg.Path(),
		Items:     app.cfg.ItemsPath(),
		Log:       app.cfg.LogPath(),
		Workspace: app.Workspace().Dir(),
	})
}
