// Package escape quotes user text for the command lines and script literals
// the launch strategies build.
//
// Two layers exist on Unix-like systems. The inner layer is POSIX shell
// quoting, applied to every path interpolated into a shell line. The outer
// layer, used only on macOS, is the AppleScript string literal that carries
// the shell line to Terminal.app. Arguments are always passed to the OS as an
// argv slice, so no intermediate /bin/sh adds a third layer.
package escape

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Shell quotes s as a single POSIX shell word. Backslashes, double quotes and
// single quotes all survive a re-parse by the shell byte for byte.
func Shell(s string) string {
	return shellquote.Join(s)
}

// ShellJoin quotes each argument and joins them with spaces. Used to render an
// argv for humans (dry-run, logs).
func ShellJoin(args ...string) string {
	return shellquote.Join(args...)
}

var appleScriptReplacer = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
)

// AppleScript escapes s for use inside a double-quoted AppleScript string
// literal. Single quotes need no escaping there.
func AppleScript(s string) string {
	return appleScriptReplacer.Replace(s)
}

// AppleScriptString returns s as a complete AppleScript string literal.
func AppleScriptString(s string) string {
	return `"` + AppleScript(s) + `"`
}

// CmdPath quotes a path for cmd.exe. Windows paths cannot contain double
// quotes, so any that slip in are dropped rather than escaped.
func CmdPath(p string) string {
	return `"` + strings.ReplaceAll(p, `"`, "") + `"`
}
