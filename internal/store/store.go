// Package store persists the user's saved targets in a JSON file.
//
// Every mutation takes an advisory lock on a sibling ".lock" file, reads the
// current list, applies the change and replaces the file atomically, so two
// lnch processes never lose each other's writes.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/flock"

	"github.com/semmy-space/lnch/internal/target"
)

var (
	// ErrNotFound means no item matched a reference
	ErrNotFound = errors.New("item not found")

	// ErrExists means an item with the same path or name is already stored
	ErrExists = errors.New("item already exists")

	// ErrLocked means another process held the lock for too long
	ErrLocked = errors.New("item list is locked by another process")

	// ErrInvalid means an item has no path or an undispatchable type
	ErrInvalid = errors.New("invalid item")
)

// DefaultLockTimeout bounds how long a mutation waits for the lock.
const DefaultLockTimeout = 5 * time.Second

// Item is one saved target.
type Item struct {
	Path    string      `json:"path" yaml:"path"`
	Type    target.Kind `json:"type" yaml:"type"`
	Name    string      `json:"name,omitempty" yaml:"name,omitempty"`
	AddedAt time.Time   `json:"added_at,omitzero" yaml:"added_at,omitempty"`
}

// Target converts the item for dispatch. The stored type is used as is; it
// is not re-classified.
func (i Item) Target() target.Target {
	return target.Target{Raw: i.Path, Kind: i.Type, DisplayName: i.Name}
}

// Label is the name, or the path when the item is unnamed
func (i Item) Label() string {
	return i.Target().Label()
}

// Store reads and writes the item file at a fixed path.
type Store struct {
	path string

	// LockTimeout caps the wait for the lock file. Zero means DefaultLockTimeout.
	LockTimeout time.Duration

	now func() time.Time
}

// Open returns a Store backed by path, creating the parent directory.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: path, now: time.Now}, nil
}

// Path returns the item file location
func (s *Store) Path() string {
	return s.path
}

// List returns all items in stored order.
func (s *Store) List() ([]Item, error) {
	return s.read()
}

// Get resolves ref and returns the item with its 0-based index.
func (s *Store) Get(ref string) (Item, int, error) {
	items, err := s.read()
	if err != nil {
		return Item{}, -1, err
	}
	idx, err := Resolve(items, ref)
	if err != nil {
		return Item{}, -1, err
	}
	return items[idx], idx, nil
}

// Add appends item. An empty type is filled in by classifying the path and
// a zero AddedAt is set to now.
func (s *Store) Add(item Item) (Item, error) {
	item, err := s.normalize(item)
	if err != nil {
		return Item{}, err
	}

	err = s.mutate(func(items []Item) ([]Item, error) {
		if err := checkConflict(items, item, -1); err != nil {
			return nil, err
		}
		return append(items, item), nil
	})
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

// Update replaces the item at index.
func (s *Store) Update(index int, item Item) (Item, error) {
	item, err := s.normalize(item)
	if err != nil {
		return Item{}, err
	}

	err = s.mutate(func(items []Item) ([]Item, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("%w: index %d", ErrNotFound, index+1)
		}
		if err := checkConflict(items, item, index); err != nil {
			return nil, err
		}
		items[index] = item
		return items, nil
	})
	if err != nil {
		return Item{}, err
	}
	return item, nil
}

// Remove deletes the item at index and returns it.
func (s *Store) Remove(index int) (Item, error) {
	var removed Item
	err := s.mutate(func(items []Item) ([]Item, error) {
		if index < 0 || index >= len(items) {
			return nil, fmt.Errorf("%w: index %d", ErrNotFound, index+1)
		}
		removed = items[index]
		return append(items[:index], items[index+1:]...), nil
	})
	return removed, err
}

// Move puts the item at from into position to, shifting the rest.
func (s *Store) Move(from, to int) error {
	return s.mutate(func(items []Item) ([]Item, error) {
		if from < 0 || from >= len(items) {
			return nil, fmt.Errorf("%w: index %d", ErrNotFound, from+1)
		}
		if to < 0 {
			to = 0
		}
		if to >= len(items) {
			to = len(items) - 1
		}

		item := items[from]
		items = append(items[:from], items[from+1:]...)
		items = append(items[:to], append([]Item{item}, items[to:]...)...)
		return items, nil
	})
}

// Clear removes every item and returns how many there were.
func (s *Store) Clear() (int, error) {
	n := 0
	err := s.mutate(func(items []Item) ([]Item, error) {
		n = len(items)
		return []Item{}, nil
	})
	return n, err
}

// Resolve finds ref in items: a 1-based position, then an exact name, then
// an exact path. It returns the 0-based index.
func Resolve(items []Item, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(items) {
		return n - 1, nil
	}
	for i, it := range items {
		if it.Name != "" && it.Name == ref {
			return i, nil
		}
	}
	for i, it := range items {
		if it.Path == ref {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, ref)
}

func (s *Store) normalize(item Item) (Item, error) {
	if strings.TrimSpace(item.Path) == "" {
		return Item{}, fmt.Errorf("%w: path is empty", ErrInvalid)
	}
	if item.Type == "" {
		item.Type = target.Classify(item.Path)
	}
	if !item.Type.Dispatchable() {
		return Item{}, fmt.Errorf("%w: %q has type %s", ErrInvalid, item.Path, item.Type)
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = s.now().UTC().Truncate(time.Second)
	}
	return item, nil
}

// checkConflict rejects a duplicate path or name, ignoring position skip.
func checkConflict(items []Item, item Item, skip int) error {
	for i, it := range items {
		if i == skip {
			continue
		}
		if it.Path == item.Path {
			return fmt.Errorf("%w: %s", ErrExists, item.Path)
		}
		if item.Name != "" && it.Name == item.Name {
			return fmt.Errorf("%w: name %q", ErrExists, item.Name)
		}
	}
	return nil
}

// mutate runs fn on the current list under the lock and saves the result.
func (s *Store) mutate(fn func([]Item) ([]Item, error)) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	items, err := s.read()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return s.write(items)
}

// lock acquires the lock file, retrying with exponential backoff.
func (s *Store) lock() (func(), error) {
	timeout := s.LockTimeout
	if timeout <= 0 {
		timeout = DefaultLockTimeout
	}

	fl := flock.New(s.path + ".lock")

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 10 * time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.MaxElapsedTime = timeout

	err := backoff.Retry(func() error {
		locked, err := fl.TryLock()
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to acquire lock: %w", err))
		}
		if !locked {
			return ErrLocked
		}
		return nil
	}, b)
	if err != nil {
		return nil, err
	}

	return func() { _ = fl.Unlock() }, nil
}

func (s *Store) read() ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("failed to read items: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return []Item{}, nil
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return items, nil
}

func (s *Store) write(items []Item) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write items: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
