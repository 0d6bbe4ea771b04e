package cli

import (
	"context"
	"fmt"

	"github.com/semmy-space/lnch/internal/output"
	"github.com/semmy-space/lnch/internal/store"
	"github.com/semmy-space/lnch/internal/target"
)

// OpenCmd dispatches saved items
type OpenCmd struct {
	Refs []string `arg:"" help:"Positions, names or paths" predictor:"item"`
}

// Run executes the open command
func (cmd *OpenCmd) Run(app *App) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	items, err := s.List()
	if err != nil {
		return storeError(err)
	}

	var selected []store.Item
	for _, ref := range cmd.Refs {
		idx, err := store.Resolve(items, ref)
		if err != nil {
			return storeError(err)
		}
		selected = append(selected, items[idx])
	}

	d, err := app.Dispatcher()
	if err != nil {
		return err
	}

	ctx := context.Background()
	for _, it := range selected {
		if err := d.Dispatch(ctx, it.Target()); err != nil {
			return dispatchError(err)
		}
		app.fp.Formatter.PrintMessage(fmt.Sprintf("Opened %s (%s)", it.Label(), it.Type))
	}
	return nil
}

// LaunchCmd classifies and dispatches a target that is not saved
type LaunchCmd struct {
	Target []string `arg:"" passthrough:"" help:"Path, URL or command (use -- before commands with flags)"`
	As     string   `help:"Skip classification and treat the target as this type" enum:"file,folder,url,command," default:""`
}

// Run executes the launch command
func (cmd *LaunchCmd) Run(app *App) error {
	t := target.New(joinArgs(cmd.Target), "")
	if cmd.As != "" {
		kind, err := target.ParseKind(cmd.As)
		if err != nil {
			return output.Wrap(output.ExitUsage, "invalid --as", err)
		}
		t.Kind = kind
	}

	d, err := app.Dispatcher()
	if err != nil {
		return err
	}
	if err := d.Dispatch(context.Background(), t); err != nil {
		return dispatchError(err)
	}
	app.fp.Formatter.PrintMessage(fmt.Sprintf("Opened %s (%s)", t.Label(), t.Kind))
	return nil
}

// classification is the result of lnch classify
type classification struct {
	Target string `json:"target"`
	Type   string `json:"type"`
	URL    string `json:"url,omitempty"`
}

// ClassifyCmd prints the type a target would get
type ClassifyCmd struct {
	Target []string `arg:"" passthrough:"" help:"Path, URL or command"`
}

// Run executes the classify command
func (cmd *ClassifyCmd) Run(fp *FormatterProvider) error {
	raw := joinArgs(cmd.Target)
	c := classification{Target: raw, Type: target.Classify(raw).String()}
	if c.Type == target.KindURL.String() {
		c.URL = target.NormalizeURL(raw)
	}
	return fp.Formatter.Print(c)
}

// RevealCmd shows a saved file or folder in the file manager
type RevealCmd struct {
	Ref string `arg:"" help:"Position, name or path" predictor:"item"`
}

// Run executes the reveal command
func (cmd *RevealCmd) Run(app *App) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	item, _, err := s.Get(cmd.Ref)
	if err != nil {
		return storeError(err)
	}
	if item.Type != target.KindFile && item.Type != target.KindFolder {
		return output.NewCLIError(output.ExitUsage, fmt.Sprintf("%s is a %s, not a file or folder", item.Label(), item.Type))
	}

	d, err := app.Dispatcher()
	if err != nil {
		return err
	}
	if err := d.Reveal(context.Background(), item.Path); err != nil {
		return dispatchError(err)
	}
	return nil
}

// CopyCmd puts an item's path on the clipboard
type CopyCmd struct {
	Ref string `arg:"" help:"Position, name or path" predictor:"item"`
}

// Run executes the copy command
func (cmd *CopyCmd) Run(app *App) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	item, _, err := s.Get(cmd.Ref)
	if err != nil {
		return storeError(err)
	}

	if app.globals.DryRun {
		app.dryRun("Would copy %q", item.Path)
		return nil
	}
	if err := writeClipboard(item.Path); err != nil {
		return output.Wrap(output.ExitUnavailable, "clipboard unavailable", err).
			WithHint("On Linux install xclip, xsel or wl-clipboard")
	}
	app.fp.Formatter.PrintMessage("Copied " + item.Label())
	return nil
}
