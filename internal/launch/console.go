package launch

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/semmy-space/lnch/internal/escape"
	"github.com/semmy-space/lnch/internal/workspace"
)

// consoleFlag matches a leading cmd.exe "/K" (keep open) or "/C" (close) switch.
var consoleFlag = regexp.MustCompile(`(?i)^/[kc]\s*`)

// consoleStrategy runs commands in a new cmd.exe console on Windows.
type consoleStrategy struct {
	spawner Spawner
	log     *log.Logger
}

func (s *consoleStrategy) Name() string { return "windows" }

func (s *consoleStrategy) Run(ctx context.Context, req Request) error {
	l, err := s.prepare(req)
	if err != nil {
		s.log.Printf("windows: %v", err)
		return err
	}

	s.log.Printf("windows: starting %s", l)
	if err := s.spawner.Spawn(ctx, l); err != nil {
		s.log.Printf("windows: %v", err)
		return err
	}
	return nil
}

// prepare builds the console launch. Multi-line text goes into a batch file
// verbatim; the console starts in the workspace, so no cd line is needed.
func (s *consoleStrategy) prepare(req Request) (Launch, error) {
	if req.MultiLine() {
		path, err := workspace.WriteScript(req.WorkspaceDir, workspace.Script{
			Ext:  ".bat",
			Body: req.Command,
		})
		if err != nil {
			return Launch{}, err
		}
		return consoleLaunch(req.WorkspaceDir, "/K", escape.CmdPath(path)), nil
	}

	flag, command := "/K", req.Command
	if m := consoleFlag.FindString(command); m != "" {
		flag = strings.ToUpper(strings.TrimSpace(m))
		command = command[len(m):]
	}

	// cmd.exe strips the outer pair of quotes and keeps the inner ones, so
	// the quoted workspace survives intact.
	body := `"cd /d ` + escape.CmdPath(req.WorkspaceDir) + ` && ` + command + `"`
	return consoleLaunch(req.WorkspaceDir, flag, body), nil
}

func consoleLaunch(dir, flag, body string) Launch {
	return Launch{
		Name:    "cmd.exe",
		Args:    []string{flag, body},
		CmdLine: "cmd.exe " + flag + " " + body,
		Dir:     dir,
		Detach:  true,
	}
}
