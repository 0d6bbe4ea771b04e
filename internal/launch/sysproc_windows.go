//go:build windows

package launch

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

func applySysProcAttr(cmd *exec.Cmd, l Launch) {
	attr := &syscall.SysProcAttr{
		CmdLine: l.CmdLine,
	}
	if l.Detach {
		attr.CreationFlags = windows.CREATE_NEW_CONSOLE | windows.CREATE_NEW_PROCESS_GROUP
	}
	cmd.SysProcAttr = attr
}
