package store

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported import/export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Export writes every item to w in format.
func (s *Store) Export(w io.Writer, format string) error {
	items, err := s.read()
	if err != nil {
		return err
	}

	switch format {
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	case FormatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(items); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Import reads items from r. With replace the stored list is overwritten;
// otherwise items whose path is already stored are skipped. It returns the
// number of items added.
func (s *Store) Import(r io.Reader, format string, replace bool) (int, error) {
	var incoming []Item
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&incoming); err != nil {
			return 0, fmt.Errorf("failed to parse json: %w", err)
		}
	case FormatYAML, "yml":
		if err := yaml.NewDecoder(r).Decode(&incoming); err != nil && err != io.EOF {
			return 0, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return 0, fmt.Errorf("unsupported format: %s", format)
	}

	normalized := make([]Item, 0, len(incoming))
	for _, it := range incoming {
		it, err := s.normalize(it)
		if err != nil {
			return 0, err
		}
		normalized = append(normalized, it)
	}

	added := 0
	err := s.mutate(func(items []Item) ([]Item, error) {
		if replace {
			items = []Item{}
		}
		for _, it := range normalized {
			if checkConflict(items, it, -1) != nil {
				continue
			}
			items = append(items, it)
			added++
		}
		return items, nil
	})
	return added, err
}
