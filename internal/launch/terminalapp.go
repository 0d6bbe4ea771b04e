package launch

import (
	"context"
	"log"

	"github.com/semmy-space/lnch/internal/escape"
	"github.com/semmy-space/lnch/internal/workspace"
)

// terminalAppStrategy drives Terminal.app through osascript on macOS.
type terminalAppStrategy struct {
	spawner Spawner
	log     *log.Logger
}

func (s *terminalAppStrategy) Name() string { return "darwin" }

func (s *terminalAppStrategy) Run(ctx context.Context, req Request) error {
	l, err := s.prepare(req)
	if err != nil {
		s.log.Printf("darwin: %v", err)
		return err
	}

	s.log.Printf("darwin: starting %s", l)
	if err := s.spawner.Spawn(ctx, l); err != nil {
		s.log.Printf("darwin: %v", err)
		return err
	}
	return nil
}

func (s *terminalAppStrategy) prepare(req Request) (Launch, error) {
	var line string
	if req.MultiLine() {
		path, err := writeShellScript(req)
		if err != nil {
			return Launch{}, err
		}
		line = escape.Shell(path)
	} else {
		line = "cd " + escape.Shell(req.WorkspaceDir) + " && " + req.Command
	}

	return Launch{
		Name: "osascript",
		Args: []string{
			"-e", `tell application "Terminal" to do script ` + escape.AppleScriptString(line),
			"-e", `tell application "Terminal" to activate`,
		},
		Dir:    req.WorkspaceDir,
		Detach: true,
	}, nil
}

// ScriptHeader is written above the command text of every generated shell
// script: a bash shebang and a cd into the workspace.
func ScriptHeader(dir string) string {
	return "#!/bin/bash\ncd " + escape.Shell(dir) + "\n"
}

func writeShellScript(req Request) (string, error) {
	return workspace.WriteScript(req.WorkspaceDir, workspace.Script{
		Ext:    ".sh",
		Header: ScriptHeader(req.WorkspaceDir),
		Body:   req.Command,
		Mode:   0o755,
	})
}
