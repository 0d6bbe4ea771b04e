package target

import (
	"fmt"
	"strings"
)

// Kind is the classification of a target string
type Kind string

const (
	KindFile    Kind = "file"
	KindFolder  Kind = "folder"
	KindURL     Kind = "url"
	KindCommand Kind = "command"

	// KindUnknown marks input that cannot be dispatched (empty string,
	// sockets, devices and other special filesystem entries).
	KindUnknown Kind = "unknown"
)

// Kinds lists the dispatchable kinds in display order
var Kinds = []Kind{KindFile, KindFolder, KindURL, KindCommand}

// String implements fmt.Stringer
func (k Kind) String() string {
	if k == "" {
		return string(KindUnknown)
	}
	return string(k)
}

// Dispatchable reports whether k is one of the four kinds the dispatcher routes.
func (k Kind) Dispatchable() bool {
	switch k {
	case KindFile, KindFolder, KindURL, KindCommand:
		return true
	default:
		return false
	}
}

// ParseKind converts a user supplied kind name. Matching is case-insensitive
// and "dir"/"directory" are accepted for folders.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "file":
		return KindFile, nil
	case "folder", "dir", "directory":
		return KindFolder, nil
	case "url", "link":
		return KindURL, nil
	case "command", "cmd":
		return KindCommand, nil
	default:
		return KindUnknown, fmt.Errorf("unknown target type: %q", s)
	}
}

// Target is one invocable entity: a path, a URL or a shell command.
type Target struct {
	Raw         string
	Kind        Kind
	DisplayName string
}

// New classifies raw and returns the resulting Target.
func New(raw, displayName string) Target {
	return Target{
		Raw:         raw,
		Kind:        Classify(raw),
		DisplayName: displayName,
	}
}

// Label returns the display name, falling back to the raw string
func (t Target) Label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.Raw
}
