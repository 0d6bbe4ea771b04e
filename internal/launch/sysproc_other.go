//go:build !unix && !windows

package launch

import "os/exec"

func applySysProcAttr(cmd *exec.Cmd, l Launch) {}
