// Package browser builds the commands that hand a path or URL to the
// desktop's default application.
package browser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrUnsupported is returned for platforms without a known opener.
var ErrUnsupported = errors.New("no default opener for platform")

// Command is a program and its arguments.
type Command struct {
	Name string
	Args []string

	// CmdLine is the raw Windows command line, set when the argument needs
	// quoting that the default argv escaping would get wrong.
	CmdLine string
}

// Open returns the command that opens a file or folder with its default
// application.
func Open(goos, path string) (Command, error) {
	switch goos {
	case "darwin":
		return Command{Name: "open", Args: []string{path}}, nil
	case "windows":
		return Command{Name: "explorer.exe", Args: []string{path}}, nil
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return Command{Name: "xdg-open", Args: []string{path}}, nil
	default:
		return Command{}, fmt.Errorf("%w: %s", ErrUnsupported, goos)
	}
}

// OpenURL returns the command that opens url in the default handler for its
// scheme.
func OpenURL(goos, url string) (Command, error) {
	if goos == "windows" {
		return Command{Name: "rundll32", Args: []string{"url.dll,FileProtocolHandler", url}}, nil
	}
	return Open(goos, url)
}

// Reveal returns the command that shows path selected in the file manager.
// xdg-open has no selection support, so Linux opens the parent folder.
func Reveal(goos, path string) (Command, error) {
	switch goos {
	case "darwin":
		return Command{Name: "open", Args: []string{"-R", path}}, nil
	case "windows":
		arg := `/select,"` + strings.ReplaceAll(path, `"`, "") + `"`
		return Command{
			Name:    "explorer.exe",
			Args:    []string{arg},
			CmdLine: "explorer.exe " + arg,
		}, nil
	default:
		return Open(goos, filepath.Dir(path))
	}
}
