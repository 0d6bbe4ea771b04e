package launch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/semmy-space/lnch/internal/escape"
)

// Candidate is one terminal emulator the Linux strategy may start.
type Candidate struct {
	// Name is the emulator binary, looked up in PATH.
	Name string

	// Argv returns the emulator arguments that run `shell -c line` and keep
	// the window open once it finishes.
	Argv func(shell, line string) []string
}

// DefaultCandidates is the fixed priority order: GNOME, KDE, plain X, then
// the distribution's configured default.
var DefaultCandidates = []Candidate{
	{
		Name: "gnome-terminal",
		Argv: func(shell, line string) []string {
			return []string{"--", shell, "-c", line + "; exec " + escape.Shell(shell)}
		},
	},
	{
		Name: "konsole",
		Argv: func(shell, line string) []string {
			return []string{"--noclose", "-e", shell, "-c", line}
		},
	},
	{
		Name: "xterm",
		Argv: func(shell, line string) []string {
			return []string{"-hold", "-e", shell, "-c", line}
		},
	},
	{
		Name: "x-terminal-emulator",
		Argv: func(shell, line string) []string {
			return []string{"-e", shell, "-c", line + "; exec " + escape.Shell(shell)}
		},
	},
}

// genericArgv drives emulators that follow the xterm "-e program args" convention.
func genericArgv(shell, line string) []string {
	return []string{"-e", shell, "-c", line + "; exec " + escape.Shell(shell)}
}

// OrderCandidates moves the preferred terminal to the front. A name outside
// the built-in list is added as an xterm-compatible candidate.
func OrderCandidates(preferred string, base []Candidate) []Candidate {
	preferred = strings.TrimSpace(preferred)
	if preferred == "" {
		return base
	}

	ordered := make([]Candidate, 0, len(base)+1)
	found := false
	for _, c := range base {
		if c.Name == preferred {
			ordered = append([]Candidate{c}, ordered...)
			found = true
			continue
		}
		ordered = append(ordered, c)
	}
	if !found {
		ordered = append([]Candidate{{Name: preferred, Argv: genericArgv}}, ordered...)
	}
	return ordered
}

// Launches renders every candidate for one shell line, in order.
func Launches(candidates []Candidate, shell, line, dir string) []Launch {
	launches := make([]Launch, len(candidates))
	for i, c := range candidates {
		launches[i] = Launch{
			Name:   c.Name,
			Args:   c.Argv(shell, line),
			Dir:    dir,
			Detach: true,
		}
	}
	return launches
}

// SelectFirst calls try on each launch in order and stops at the first one
// that succeeds, returning its index. When all fail the errors are joined.
func SelectFirst(launches []Launch, try func(Launch) error) (int, error) {
	var errs []error
	for i, l := range launches {
		err := try(l)
		if err == nil {
			return i, nil
		}
		errs = append(errs, err)
	}

	names := make([]string, len(launches))
	for i, l := range launches {
		names[i] = l.Name
	}
	return -1, fmt.Errorf("%w (tried %s): %w", ErrNoTerminal, strings.Join(names, ", "), errors.Join(errs...))
}

// emulatorStrategy runs commands in the first terminal emulator that starts.
type emulatorStrategy struct {
	spawner    Spawner
	log        *log.Logger
	shell      string
	candidates []Candidate
}

func (s *emulatorStrategy) Name() string { return "linux" }

func (s *emulatorStrategy) Run(ctx context.Context, req Request) error {
	var line string
	if req.MultiLine() {
		path, err := writeShellScript(req)
		if err != nil {
			s.log.Printf("linux: %v", err)
			return err
		}
		line = escape.Shell(path)
	} else {
		line = "cd " + escape.Shell(req.WorkspaceDir) + " && " + req.Command
	}

	launches := Launches(s.candidates, s.shell, line, req.WorkspaceDir)
	idx, err := SelectFirst(launches, func(l Launch) error {
		if err := s.spawner.Spawn(ctx, l); err != nil {
			s.log.Printf("linux: %s failed, trying next: %v", l.Name, err)
			return err
		}
		return nil
	})
	if err != nil {
		s.log.Printf("linux: %v", err)
		return err
	}

	s.log.Printf("linux: started %s (candidate %d/%d)", launches[idx].Name, idx+1, len(launches))
	return nil
}
