package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/semmy-space/lnch/internal/output"
	"github.com/semmy-space/lnch/internal/workspace"
)

// WorkspacePathCmd prints the workspace directory
type WorkspacePathCmd struct{}

// Run executes the workspace path command
func (cmd *WorkspacePathCmd) Run(app *App) error {
	fmt.Fprintln(app.stdout, app.Workspace().Dir())
	return nil
}

// scriptView is one generated script as listed by workspace list
type scriptView struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	HumanSz  string    `json:"-"`
	Age      string    `json:"-"`
}

// WorkspaceListCmd lists generated scripts
type WorkspaceListCmd struct{}

// Run executes the workspace list command
func (cmd *WorkspaceListCmd) Run(app *App, fp *FormatterProvider) error {
	files, err := workspace.Scripts(app.Workspace().Dir())
	if err != nil {
		return err
	}

	views := make([]scriptView, len(files))
	for i, f := range files {
		views[i] = scriptView{
			Name:     f.Name,
			Path:     f.Path,
			Size:     f.Size,
			Modified: f.ModTime,
			HumanSz:  humanize.Bytes(uint64(f.Size)),
			Age:      humanize.Time(f.ModTime),
		}
	}

	return fp.Formatter.PrintList(views, []output.Column{
		{Name: "Script", Key: "Name"},
		{Name: "Size", Key: "HumanSz"},
		{Name: "Modified", Key: "Age"},
	})
}

// WorkspacePruneCmd deletes old generated scripts. Nothing is deleted
// automatically; this command is the only cleanup.
type WorkspacePruneCmd struct {
	OlderThan time.Duration `help:"Only delete scripts older than this" default:"168h" name:"older-than"`
}

// Run executes the workspace prune command
func (cmd *WorkspacePruneCmd) Run(app *App) error {
	dir := app.Workspace().Dir()
	cutoff := time.Now().Add(-cmd.OlderThan)

	if app.globals.DryRun {
		files, err := workspace.Scripts(dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			if f.ModTime.Before(cutoff) {
				app.dryRun("Would delete %s", f.Path)
			}
		}
		return nil
	}

	removed, err := workspace.Prune(dir, cutoff)
	if err != nil {
		return err
	}
	app.Logger().Printf("workspace: pruned %d script(s) older than %s", len(removed), cmd.OlderThan)
	return app.result(map[string]any{"removed": removed}, fmt.Sprintf("Deleted %d script(s)", len(removed)))
}
