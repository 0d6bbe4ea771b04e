// Package launch turns a command string into a running interactive terminal
// session on Windows, macOS and Linux.
//
// Every strategy builds a typed Launch (program, argv, working directory)
// instead of a shell template, and hands it to a Spawner. Spawning never waits
// for the terminal to exit, only for a short window in which an immediate
// failure still counts.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"time"

	"github.com/semmy-space/lnch/internal/escape"
)

var (
	// ErrSpawn means the OS refused to start a process
	ErrSpawn = errors.New("failed to spawn process")

	// ErrNoTerminal means every Linux terminal candidate failed to start
	ErrNoTerminal = errors.New("no terminal emulator could be started")

	// ErrUnsupported is returned for operating systems without a strategy
	ErrUnsupported = errors.New("unsupported platform")
)

// Launch is a ready-to-spawn process description.
type Launch struct {
	Name string   // program to run
	Args []string // arguments after Name
	Dir  string   // working directory

	// CmdLine, when set, is handed to Windows verbatim instead of an argv
	// rebuilt from Args. cmd.exe does not follow the C runtime quoting rules.
	CmdLine string

	// Detach starts the child in its own console (Windows) or session (Unix)
	// so closing the launcher does not take the terminal down with it.
	Detach bool
}

// String renders the launch as a copy-pasteable command line.
func (l Launch) String() string {
	if l.CmdLine != "" {
		return l.CmdLine
	}
	return escape.ShellJoin(append([]string{l.Name}, l.Args...)...)
}

// Spawner starts a process and returns as soon as it is running.
type Spawner interface {
	Spawn(ctx context.Context, l Launch) error
}

// DefaultGrace is how long a new process is watched for an immediate failure.
const DefaultGrace = 300 * time.Millisecond

// ExecSpawner starts real processes with os/exec.
type ExecSpawner struct {
	// Grace is how long Spawn waits for an early exit. A non-zero exit inside
	// it counts as a spawn failure, e.g. a terminal with no display to attach
	// to. Zero returns as soon as the process has started.
	Grace time.Duration
}

// Spawn starts l and reaps it in the background. Exit status after the grace
// window is dropped.
func (s ExecSpawner) Spawn(ctx context.Context, l Launch) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// exec.CommandContext would kill the terminal when ctx ends; the launched
	// session must outlive the call.
	cmd := exec.Command(l.Name, l.Args...)
	cmd.Dir = l.Dir
	applySysProcAttr(cmd, l)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSpawn, l.Name, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	if s.Grace <= 0 {
		return nil
	}

	timer := time.NewTimer(s.Grace)
	defer timer.Stop()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("%w: %s exited immediately: %w", ErrSpawn, l.Name, err)
		}
		return nil
	case <-timer.C:
		return nil
	case <-ctx.Done():
		// already running; cancelling does not undo the launch
		return nil
	}
}

// Request is one command to run
type Request struct {
	Command      string // may span several lines
	WorkspaceDir string // exists by the time a strategy runs
}

// MultiLine reports whether the command has to go through a script file
func (r Request) MultiLine() bool {
	return strings.ContainsAny(r.Command, "\r\n")
}

// Strategy runs a command in a new interactive terminal.
type Strategy interface {
	// Name identifies the platform the strategy targets.
	Name() string

	// Run writes any script the command needs, starts the terminal and
	// returns without waiting for it.
	Run(ctx context.Context, req Request) error
}

// Options configure a Strategy
type Options struct {
	Spawner Spawner
	Logger  *log.Logger

	// Shell runs single-line commands inside Linux terminals. Default "bash".
	Shell string

	// Terminal is tried before the built-in Linux candidates.
	Terminal string
}

func (o Options) withDefaults() Options {
	if o.Spawner == nil {
		o.Spawner = ExecSpawner{Grace: DefaultGrace}
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard, "", 0)
	}
	if o.Shell == "" {
		o.Shell = "bash"
	}
	return o
}

// ForOS returns the strategy for goos (a runtime.GOOS value).
func ForOS(goos string, opts Options) (Strategy, error) {
	opts = opts.withDefaults()

	switch goos {
	case "windows":
		return &consoleStrategy{spawner: opts.Spawner, log: opts.Logger}, nil
	case "darwin":
		return &terminalAppStrategy{spawner: opts.Spawner, log: opts.Logger}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return &emulatorStrategy{
			spawner:    opts.Spawner,
			log:        opts.Logger,
			shell:      opts.Shell,
			candidates: OrderCandidates(opts.Terminal, DefaultCandidates),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}
