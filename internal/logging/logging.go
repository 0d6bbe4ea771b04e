// Package logging opens the lnch log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// MaxSize is the size past which the log is rotated on open
const MaxSize int64 = 1024 * 1024

// Flags used for every lnch log line
const Flags = log.LstdFlags | log.Lmicroseconds

// Rotate renames path to path + ".old", replacing any previous backup, when
// it is larger than maxBytes.
func Rotate(path string, maxBytes int64) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Size() <= maxBytes {
		return nil
	}

	oldPath := path + ".old"
	_ = os.Remove(oldPath)
	if err := os.Rename(path, oldPath); err != nil {
		return fmt.Errorf("failed to rotate log %s: %w", path, err)
	}
	return nil
}

// Open rotates the log at path if needed and returns a logger appending to
// it. When mirror is non-nil every line is copied there too. The returned
// close func releases the file.
func Open(path string, mirror io.Writer) (*log.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := Rotate(path, MaxSize); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("could not open log file: %w", err)
	}

	var w io.Writer = f
	if mirror != nil {
		w = io.MultiWriter(f, mirror)
	}
	return log.New(w, "", Flags), f.Close, nil
}

// Fallback is used when the log file cannot be opened: lines go to mirror,
// or nowhere.
func Fallback(mirror io.Writer) *log.Logger {
	if mirror == nil {
		mirror = io.Discard
	}
	return log.New(mirror, "", Flags)
}
