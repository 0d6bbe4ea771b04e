// Package dispatch routes a classified target to the action that opens it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"

	"github.com/semmy-space/lnch/internal/launch"
	"github.com/semmy-space/lnch/internal/target"
	"github.com/semmy-space/lnch/internal/workspace"
	"github.com/semmy-space/lnch/pkg/browser"
)

// ErrNotDispatchable is returned for targets of kind unknown
var ErrNotDispatchable = errors.New("target cannot be dispatched")

// Options configure a Dispatcher. Zero values select the running platform,
// real process spawning, the shared workspace and a silent logger.
type Options struct {
	GOOS      string
	Spawner   launch.Spawner
	Workspace *workspace.Workspace
	Logger    *log.Logger

	// Shell and Terminal are passed to the Linux strategy.
	Shell    string
	Terminal string
}

// Dispatcher is the single entry point for invoking targets. It is safe for
// concurrent use.
type Dispatcher struct {
	goos      string
	strategy  launch.Strategy
	spawner   launch.Spawner
	workspace *workspace.Workspace
	log       *log.Logger
}

// New builds a Dispatcher for opts.GOOS.
func New(opts Options) (*Dispatcher, error) {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.Spawner == nil {
		opts.Spawner = launch.ExecSpawner{Grace: launch.DefaultGrace}
	}
	if opts.Workspace == nil {
		opts.Workspace = workspace.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	strategy, err := launch.ForOS(opts.GOOS, launch.Options{
		Spawner:  opts.Spawner,
		Logger:   opts.Logger,
		Shell:    opts.Shell,
		Terminal: opts.Terminal,
	})
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		goos:      opts.GOOS,
		strategy:  strategy,
		spawner:   opts.Spawner,
		workspace: opts.Workspace,
		log:       opts.Logger,
	}, nil
}

// Workspace returns the directory commands run in
func (d *Dispatcher) Workspace() *workspace.Workspace {
	return d.workspace
}

// Dispatch opens t according to its kind and returns once the handler
// process has started. Every failure is logged before it is returned.
func (d *Dispatcher) Dispatch(ctx context.Context, t target.Target) error {
	switch t.Kind {
	case target.KindFile, target.KindFolder:
		cmd, err := browser.Open(d.goos, t.Raw)
		if err != nil {
			return d.fail(t, err)
		}
		return d.start(ctx, t, cmd)

	case target.KindURL:
		url := target.NormalizeURL(t.Raw)
		cmd, err := browser.OpenURL(d.goos, url)
		if err != nil {
			return d.fail(t, err)
		}
		return d.start(ctx, t, cmd)

	case target.KindCommand:
		dir, err := d.workspace.Ensure()
		if err != nil {
			return d.fail(t, fmt.Errorf("%w: %w", workspace.ErrScriptWrite, err))
		}
		d.log.Printf("dispatch: command %q in %s", t.Label(), dir)
		// strategies log their own failures
		return d.strategy.Run(ctx, launch.Request{Command: t.Raw, WorkspaceDir: dir})

	default:
		return d.fail(t, fmt.Errorf("%w: %q", ErrNotDispatchable, t.Raw))
	}
}

// Reveal shows path selected in the platform file manager.
func (d *Dispatcher) Reveal(ctx context.Context, path string) error {
	t := target.Target{Raw: path, Kind: target.KindFile}
	cmd, err := browser.Reveal(d.goos, path)
	if err != nil {
		return d.fail(t, err)
	}
	return d.start(ctx, t, cmd)
}

func (d *Dispatcher) start(ctx context.Context, t target.Target, cmd browser.Command) error {
	l := launch.Launch{
		Name:    cmd.Name,
		Args:    cmd.Args,
		CmdLine: cmd.CmdLine,
	}
	d.log.Printf("dispatch: %s %q via %s", t.Kind, t.Label(), l)
	if err := d.spawner.Spawn(ctx, l); err != nil {
		return d.fail(t, err)
	}
	return nil
}

func (d *Dispatcher) fail(t target.Target, err error) error {
	d.log.Printf("dispatch: %s %q failed: %v", t.Kind, t.Label(), err)
	return err
}
