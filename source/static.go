package source

import (
	"context"
	"sync"

	"github.com/arloliu/spinpick/types"
)

// Static implements a roster source with a fixed list of entries.
type Static struct {
	mu      sync.RWMutex
	entries []types.Entry
}

var _ types.RosterSource = (*Static)(nil)

// NewStatic creates a new static roster source.
//
// Parameters:
//   - entries: Fixed list of entries (copied)
//
// Returns:
//   - *Static: Initialized static source
//
// Example:
//
//	src := source.NewStatic([]types.Entry{
//	    {Name: "Alice", Score: 5},
//	    {Name: "Bob", Score: 3},
//	})
//	added, err := engine.LoadRoster(ctx, src)
func NewStatic(entries []types.Entry) *Static {
	s := &Static{}
	s.Update(entries)

	return s
}

// ListEntries returns a copy of the static entry list.
//
// Returns:
//   - []types.Entry: The fixed list of entries
//   - error: Always nil (never fails)
func (s *Static) ListEntries(_ context.Context) ([]types.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]types.Entry, len(s.entries))
	copy(result, s.entries)

	return result, nil
}

// Update replaces the entry list.
//
// Parameters:
//   - entries: New list of entries (copied)
func (s *Static) Update(entries []types.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]types.Entry, len(entries))
	copy(s.entries, entries)
}
