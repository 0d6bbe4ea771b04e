//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

func applySysProcAttr(cmd *exec.Cmd, l Launch) {
	if l.Detach {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	}
}
