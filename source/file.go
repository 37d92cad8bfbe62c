package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/arloliu/spinpick/types"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedRosterFormat is returned when a roster file is neither a list of
// entries nor a mapping with a "roster" list.
var ErrUnsupportedRosterFormat = errors.New("unsupported roster format")

// File reads roster entries from a YAML or JSON file on every call.
//
// Two layouts are accepted: a top-level list of entries, or a mapping with a
// "roster" key holding that list (so a roster can share a file with the engine
// configuration).
//
//	roster:
//	  - name: Alice
//	    score: 5
//	  - name: Bob
//	    score: 3
type File struct {
	path string
}

var _ types.RosterSource = (*File)(nil)

// NewFile creates a roster source backed by the file at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// ListEntries reads and parses the roster file.
//
// Returns:
//   - []types.Entry: Entries in file order
//   - error: Read, parse or format error
func (f *File) ListEntries(ctx context.Context) ([]types.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	return ParseRoster(data)
}

// ParseRoster decodes roster entries from YAML or JSON data.
func ParseRoster(data []byte) ([]types.Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	node := doc.Content[0]
	if node.Kind == yaml.MappingNode {
		node = rosterField(node)
		if node == nil {
			return nil, fmt.Errorf("%w: missing roster key", ErrUnsupportedRosterFormat)
		}
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list of entries", ErrUnsupportedRosterFormat)
	}

	var entries []types.Entry
	if err := node.Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode roster entries: %w", err)
	}

	return entries, nil
}

func rosterField(mapping *yaml.Node) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == "roster" {
			return mapping.Content[i+1]
		}
	}

	return nil
}
