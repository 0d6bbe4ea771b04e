package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/semmy-space/lnch/internal/output"
	"github.com/semmy-space/lnch/internal/store"
	"github.com/semmy-space/lnch/internal/target"
)

// itemView is an item with its 1-based position, as printed by list/show
type itemView struct {
	Index   int       `json:"index"`
	Name    string    `json:"name,omitempty"`
	Type    string    `json:"type"`
	Path    string    `json:"path"`
	AddedAt time.Time `json:"added_at,omitzero"`
	Added   string    `json:"-"`
}

func newItemView(idx int, it store.Item) itemView {
	v := itemView{
		Index:   idx + 1,
		Name:    it.Name,
		Type:    it.Type.String(),
		Path:    it.Path,
		AddedAt: it.AddedAt,
	}
	if !it.AddedAt.IsZero() {
		v.Added = humanize.Time(it.AddedAt)
	}
	return v
}

var itemColumns = []output.Column{
	{Name: "#", Key: "Index"},
	{Name: "Name", Key: "Name", Width: 24},
	{Name: "Type", Key: "Type"},
	{Name: "Target", Key: "Path", Width: 60},
	{Name: "Added", Key: "Added"},
}

// joinArgs rebuilds a target typed as several shell words
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// AddCmd saves a target
type AddCmd struct {
	Target []string `arg:"" passthrough:"" help:"Path, URL or command (use -- before commands with flags)"`
	Name   string   `help:"Display name" short:"n"`
	Type   string   `help:"Force the type instead of classifying" short:"t" enum:"file,folder,url,command," default:""`
}

// Run executes the add command
func (cmd *AddCmd) Run(app *App) error {
	item := store.Item{Path: joinArgs(cmd.Target), Name: cmd.Name}
	if cmd.Type != "" {
		kind, err := target.ParseKind(cmd.Type)
		if err != nil {
			return output.Wrap(output.ExitUsage, "invalid --type", err)
		}
		item.Type = kind
	}

	if app.globals.DryRun {
		kind := item.Type
		if kind == "" {
			kind = target.Classify(item.Path)
		}
		app.dryRun("Would save %q as %s", item.Path, kind)
		return nil
	}

	s, err := app.Store()
	if err != nil {
		return err
	}
	saved, err := s.Add(item)
	if err != nil {
		return storeError(err)
	}

	items, err := s.List()
	if err != nil {
		return storeError(err)
	}
	view := newItemView(len(items)-1, saved)
	app.Logger().Printf("store: added %s %q", saved.Type, saved.Path)
	return app.result(view, fmt.Sprintf("Added #%d %s (%s)", view.Index, saved.Label(), saved.Type))
}

// ListCmd lists saved items
type ListCmd struct {
	Type string `help:"Only show items of this type" short:"t" enum:"file,folder,url,command," default:""`
}

// Run executes the list command
func (cmd *ListCmd) Run(app *App, fp *FormatterProvider) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	items, err := s.List()
	if err != nil {
		return storeError(err)
	}

	views := make([]itemView, 0, len(items))
	for i, it := range items {
		if cmd.Type != "" && it.Type.String() != cmd.Type {
			continue
		}
		views = append(views, newItemView(i, it))
	}

	return fp.Formatter.PrintList(views, itemColumns)
}

// ShowCmd prints one item
type ShowCmd struct {
	Ref string `arg:"" help:"Position, name or path" predictor:"item"`
}

// Run executes the show command
func (cmd *ShowCmd) Run(app *App, fp *FormatterProvider) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	item, idx, err := s.Get(cmd.Ref)
	if err != nil {
		return storeError(err)
	}
	return fp.Formatter.Print(newItemView(idx, item))
}

// EditCmd changes an item in place
type EditCmd struct {
	Ref    string `arg:"" help:"Position, name or path" predictor:"item"`
	Target string `help:"New path, URL or command" short:"t"`
	Name   string `help:"New display name" short:"n"`
	NoName bool   `help:"Remove the display name" name:"no-name"`
	Type   string `help:"Force the type" enum:"file,folder,url,command," default:""`
}

// Run executes the edit command
func (cmd *EditCmd) Run(app *App) error {
	if cmd.Target == "" && cmd.Name == "" && !cmd.NoName && cmd.Type == "" {
		return output.NewCLIError(output.ExitUsage, "nothing to change").
			WithHint("Pass --target, --name, --no-name or --type")
	}

	s, err := app.Store()
	if err != nil {
		return err
	}
	item, idx, err := s.Get(cmd.Ref)
	if err != nil {
		return storeError(err)
	}

	if cmd.Target != "" && cmd.Target != item.Path {
		item.Path = cmd.Target
		item.Type = ""
	}
	if cmd.Name != "" {
		item.Name = cmd.Name
	}
	if cmd.NoName {
		item.Name = ""
	}
	if cmd.Type != "" {
		kind, err := target.ParseKind(cmd.Type)
		if err != nil {
			return output.Wrap(output.ExitUsage, "invalid --type", err)
		}
		item.Type = kind
	}

	if app.globals.DryRun {
		app.dryRun("Would update #%d to %q", idx+1, item.Path)
		return nil
	}

	updated, err := s.Update(idx, item)
	if err != nil {
		return storeError(err)
	}
	return app.result(newItemView(idx, updated), fmt.Sprintf("Updated #%d %s (%s)", idx+1, updated.Label(), updated.Type))
}

// RmCmd removes items
type RmCmd struct {
	Refs []string `arg:"" help:"Positions, names or paths" predictor:"item"`
}

// Run executes the rm command
func (cmd *RmCmd) Run(app *App) error {
	s, err := app.Store()
	if err != nil {
		return err
	}
	items, err := s.List()
	if err != nil {
		return storeError(err)
	}

	// Resolve every ref against one snapshot so positions don't shift
	// between removals.
	var targets []store.Item
	for _, ref := range cmd.Refs {
		idx, err := store.Resolve(items, ref)
		if err != nil {
			return storeError(err)
		}
		targets = append(targets, items[idx])
	}

	var removed []itemView
	for _, it := range targets {
		if app.globals.DryRun {
			app.dryRun("Would remove %s", it.Label())
			continue
		}
		_, idx, err := s.Get(it.Path)
		if err != nil {
			continue // already removed by a duplicate ref
		}
		gone, err := s.Remove(idx)
		if err != nil {
			return storeError(err)
		}
		removed = append(removed, newItemView(idx, gone))
		app.fp.Formatter.PrintMessage("Removed " + gone.Label())
	}

	if app.isJSON() && !app.globals.DryRun {
		return app.fp.Formatter.PrintList(removed, itemColumns)
	}
	return nil
}

// MvCmd reorders an item
type MvCmd struct {
	Ref      string `arg:"" help:"Position, name or path" predictor:"item"`
	Position int    `arg:"" help:"New 1-based position"`
}

// Run executes the mv command
func (cmd *MvCmd) Run(app *App) error {
	if cmd.Position < 1 {
		return output.NewCLIError(output.ExitUsage, "position must be 1 or more")
	}

	s, err := app.Store()
	if err != nil {
		return err
	}
	item, idx, err := s.Get(cmd.Ref)
	if err != nil {
		return storeError(err)
	}

	if app.globals.DryRun {
		app.dryRun("Would move %s from #%d to #%d", item.Label(), idx+1, cmd.Position)
		return nil
	}

	if err := s.Move(idx, cmd.Position-1); err != nil {
		return storeError(err)
	}
	app.fp.Formatter.PrintMessage(fmt.Sprintf("Moved %s to #%d", item.Label(), cmd.Position))
	return nil
}

// ClearCmd removes every item
type ClearCmd struct {
	Confirm bool `help:"Confirm removing every item"`
}

// Run executes the clear command
func (cmd *ClearCmd) Run(app *App) error {
	if !cmd.Confirm && !app.globals.Force && !app.globals.DryRun {
		if !app.globals.interactive() {
			return output.NewCLIError(output.ExitUsage, "clearing requires --confirm or --force flag")
		}
		answer := prompt(app.stderr, bufio.NewReader(os.Stdin), "Remove every saved item? [y/N] ")
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			return output.NewCLIError(output.ExitGeneral, "aborted")
		}
	}

	s, err := app.Store()
	if err != nil {
		return err
	}

	if app.globals.DryRun {
		items, err := s.List()
		if err != nil {
			return storeError(err)
		}
		app.dryRun("Would remove %d item(s)", len(items))
		return nil
	}

	n, err := s.Clear()
	if err != nil {
		return storeError(err)
	}
	return app.result(map[string]int{"removed": n}, fmt.Sprintf("Removed %d item(s)", n))
}

// prompt prints a prompt and reads a line of input
func prompt(w io.Writer, reader *bufio.Reader, text string) string {
	fmt.Fprint(w, text)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
