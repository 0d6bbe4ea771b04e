// Package workspace manages the shared temp directory that spawned commands
// run in and that generated scripts are written to.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// DirName is the fixed subdirectory created under the temp root
	DirName = "lnch-workspace"

	// ScriptPrefix starts the name of every generated script
	ScriptPrefix = "lnch-cmd-"
)

// ErrScriptWrite is returned when a generated script cannot be written
var ErrScriptWrite = errors.New("failed to write script")

// chmod is swapped in tests
var chmod = os.Chmod

// Workspace resolves its directory once and recreates it on demand.
// It is safe for concurrent use.
type Workspace struct {
	root string

	once sync.Once
	dir  string
}

// New returns a Workspace rooted at root. An empty root means os.TempDir().
func New(root string) *Workspace {
	return &Workspace{root: root}
}

var (
	defaultOnce sync.Once
	defaultWS   *Workspace
)

// Default returns the process-wide workspace under the OS temp root.
func Default() *Workspace {
	defaultOnce.Do(func() {
		defaultWS = New("")
	})
	return defaultWS
}

// Dir returns the workspace path without touching the filesystem
func (w *Workspace) Dir() string {
	w.once.Do(func() {
		root := w.root
		if root == "" {
			root = os.TempDir()
		}
		w.dir = filepath.Join(root, DirName)
	})
	return w.dir
}

// Ensure creates the workspace directory if it is missing and returns its path.
// It is idempotent and may race with itself safely.
func (w *Workspace) Ensure() (string, error) {
	dir := w.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create workspace %s: %w", dir, err)
	}
	return dir, nil
}

// Script describes a file to generate inside the workspace.
type Script struct {
	Ext    string      // file extension including the dot, e.g. ".sh"
	Header string      // written before Body (shebang, cd line)
	Body   string      // the user's command text, written verbatim
	Mode   os.FileMode // permissions applied after writing
}

// WriteScript writes s into dir and returns the file path. Names carry a
// millisecond timestamp plus a random suffix, so concurrent calls never collide.
func WriteScript(dir string, s Script) (string, error) {
	pattern := fmt.Sprintf("%s%d-*%s", ScriptPrefix, time.Now().UnixMilli(), s.Ext)

	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrScriptWrite, err)
	}
	path := f.Name()

	if _, err := f.WriteString(s.Header + s.Body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: %s: %w", ErrScriptWrite, path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %s: %w", ErrScriptWrite, path, err)
	}

	mode := s.Mode
	if mode == 0 {
		mode = 0o644
	}
	if err := chmod(path, mode); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %s: %w", ErrScriptWrite, path, err)
	}

	return path, nil
}

// ScriptFile is a generated script found in the workspace
type ScriptFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// Scripts lists generated scripts in dir, oldest first. A missing directory
// yields an empty list.
func Scripts(dir string) ([]ScriptFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read workspace: %w", err)
	}

	var files []ScriptFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), ScriptPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, ScriptFile{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}

// Prune removes generated scripts last modified before cutoff and returns the
// removed paths. It only runs when a user asks for it.
func Prune(dir string, cutoff time.Time) ([]string, error) {
	files, err := Scripts(dir)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, f := range files {
		if !f.ModTime.Before(cutoff) {
			continue
		}
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to remove %s: %w", f.Path, err)
		}
		removed = append(removed, f.Path)
	}
	return removed, nil
}
