package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"runtime"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/semmy-space/lnch/internal/config"
	"github.com/semmy-space/lnch/internal/dispatch"
	"github.com/semmy-space/lnch/internal/launch"
	"github.com/semmy-space/lnch/internal/logging"
	"github.com/semmy-space/lnch/internal/store"
	"github.com/semmy-space/lnch/internal/workspace"
)

// Overridden in tests
var (
	goos           = runtime.GOOS
	newSpawner     = func() launch.Spawner { return launch.ExecSpawner{Grace: launch.DefaultGrace} }
	writeClipboard = clipboard.WriteAll
)

// App carries what commands share: config, flags, output, the log, and
// lazily built store and dispatcher.
type App struct {
	cfg     *config.Config
	globals *Globals
	fp      *FormatterProvider
	stdout  io.Writer
	stderr  io.Writer

	logOnce  sync.Once
	log      *log.Logger
	closeLog func() error

	store      *store.Store
	dispatcher *dispatch.Dispatcher
}

func newApp(cfg *config.Config, globals *Globals, fp *FormatterProvider, stdout, stderr io.Writer) *App {
	return &App{
		cfg:     cfg,
		globals: globals,
		fp:      fp,
		stdout:  stdout,
		stderr:  stderr,
	}
}

// Logger opens the log file on first use. When it cannot be opened the
// lines go to stderr under --verbose and are dropped otherwise.
func (a *App) Logger() *log.Logger {
	a.logOnce.Do(func() {
		var mirror io.Writer
		if a.globals.Verbose {
			mirror = a.stderr
		}

		logger, closeFn, err := logging.Open(a.cfg.LogPath(), mirror)
		if err != nil {
			if a.globals.Verbose {
				fmt.Fprintf(a.stderr, "Warning: %v\n", err)
			}
			a.log = logging.Fallback(mirror)
			return
		}
		a.log = logger
		a.closeLog = closeFn
	})
	return a.log
}

// Store opens the item list
func (a *App) Store() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := store.Open(a.cfg.ItemsPath())
	if err != nil {
		return nil, storeError(err)
	}
	a.store = s
	return s, nil
}

// Dispatcher builds the dispatcher for the running platform. Under --dry-run
// launches are printed instead of spawned.
func (a *App) Dispatcher() (*dispatch.Dispatcher, error) {
	if a.dispatcher != nil {
		return a.dispatcher, nil
	}

	spawner := newSpawner()
	if a.globals.DryRun {
		spawner = &printSpawner{w: a.stdout}
	}

	d, err := dispatch.New(dispatch.Options{
		GOOS:      goos,
		Spawner:   spawner,
		Workspace: a.Workspace(),
		Logger:    a.Logger(),
		Shell:     a.cfg.Shell,
		Terminal:  a.cfg.Terminal,
	})
	if err != nil {
		return nil, dispatchError(err)
	}
	a.dispatcher = d
	return d, nil
}

// Workspace is the configured workspace, or the shared default one
func (a *App) Workspace() *workspace.Workspace {
	if root := a.cfg.WorkspaceRoot(); root != "" {
		return workspace.New(root)
	}
	return workspace.Default()
}

// Close releases the log file
func (a *App) Close() error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

// isJSON reports whether results should be printed as data
func (a *App) isJSON() bool {
	return a.globals.ResolvedOutput(a.cfg) == "json"
}

// result prints data in JSON mode and msg otherwise.
func (a *App) result(data any, msg string) error {
	if a.isJSON() {
		return a.fp.Formatter.Print(data)
	}
	a.fp.Formatter.PrintMessage(msg)
	return nil
}

// dryRun prints a preview line for a skipped mutation.
func (a *App) dryRun(format string, args ...any) {
	fmt.Fprintf(a.stderr, "[DRY RUN] "+format+"\n", args...)
}

// printSpawner writes each launch as a command line instead of starting it.
type printSpawner struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *printSpawner) Spawn(_ context.Context, l launch.Launch) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, err := fmt.Fprintln(p.w, l.String())
	return err
}
