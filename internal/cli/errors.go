package cli

import (
	"errors"

	"github.com/semmy-space/lnch/internal/dispatch"
	"github.com/semmy-space/lnch/internal/launch"
	"github.com/semmy-space/lnch/internal/output"
	"github.com/semmy-space/lnch/internal/store"
	"github.com/semmy-space/lnch/internal/workspace"
	"github.com/semmy-space/lnch/pkg/browser"
)

// storeError maps item store failures to exit codes
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return output.Wrap(output.ExitNotFound, "no such item", err).
			WithHint("Run: lnch list")
	case errors.Is(err, store.ErrExists):
		return output.Wrap(output.ExitConflict, "already saved", err)
	case errors.Is(err, store.ErrInvalid):
		return output.Wrap(output.ExitUsage, "cannot save", err)
	case errors.Is(err, store.ErrLocked):
		return output.Wrap(output.ExitLocked, "item list is busy", err).
			WithHint("Another lnch process is writing the list; retry in a moment")
	default:
		return output.Wrap(output.ExitGeneral, "item store", err)
	}
}

// dispatchError maps launch failures to exit codes
func dispatchError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, launch.ErrNoTerminal):
		return output.Wrap(output.ExitSpawn, "could not open a terminal", err).
			WithHint("Install one of gnome-terminal, konsole or xterm, or run: lnch config set terminal <name>")
	case errors.Is(err, launch.ErrSpawn):
		return output.Wrap(output.ExitSpawn, "could not start process", err)
	case errors.Is(err, workspace.ErrScriptWrite):
		return output.Wrap(output.ExitScript, "could not prepare the command", err).
			WithHint("Check that the workspace is writable: lnch workspace path")
	case errors.Is(err, launch.ErrUnsupported), errors.Is(err, browser.ErrUnsupported):
		return output.Wrap(output.ExitUnsupported, "cannot launch on this platform", err)
	case errors.Is(err, dispatch.ErrNotDispatchable):
		return output.Wrap(output.ExitUsage, "nothing to open", err)
	default:
		return output.Wrap(output.ExitGeneral, "dispatch failed", err)
	}
}
