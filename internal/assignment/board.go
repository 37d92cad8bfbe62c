package assignment

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arloliu/spinpick/types"
)

// Board is the mutable game state: the entries still on the wheel and the
// groups filled so far.
//
// Board is not safe for concurrent use.
type Board struct {
	roster   []types.Entry
	groups   types.Partition
	minScore int
}

// NewBoard creates an empty board with groupCount empty groups.
//
// Scores below minScore are raised to minScore when entries are added.
func NewBoard(groupCount, minScore int) *Board {
	return &Board{
		roster:   []types.Entry{},
		groups:   types.NewEmptyPartition(groupCount),
		minScore: minScore,
	}
}

// Add appends a new entry to the roster.
//
// The name is trimmed and must be non-empty and unique across both the roster
// and the groups of the current game.
//
// Returns the entry as stored.
func (b *Board) Add(name string, score int) (types.Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Entry{}, fmt.Errorf("add entry: empty name: %w", types.ErrInvalidEntry)
	}
	if b.Contains(name) {
		return types.Entry{}, fmt.Errorf("add entry %q: %w", name, types.ErrDuplicateEntry)
	}
	entry := types.Entry{Name: name, Score: max(score, b.minScore)}
	b.roster = append(b.roster, entry)

	return entry, nil
}

// Contains reports whether name is on the roster or already in a group.
func (b *Board) Contains(name string) bool {
	if b.rosterIndex(name) >= 0 {
		return true
	}
	for _, g := range b.groups {
		for _, m := range g.Members {
			if m.Name == name {
				return true
			}
		}
	}

	return false
}

// RemoveAt removes and returns the roster entry at i.
func (b *Board) RemoveAt(i int) (types.Entry, error) {
	if i < 0 || i >= len(b.roster) {
		return types.Entry{}, fmt.Errorf("remove entry %d of %d: %w", i, len(b.roster), types.ErrEntryIndexOutOfRange)
	}
	entry := b.roster[i]
	b.roster = slices.Delete(b.roster, i, i+1)

	return entry, nil
}

// Take removes the named entry from the roster.
func (b *Board) Take(name string) (types.Entry, bool) {
	i := b.rosterIndex(name)
	if i < 0 {
		return types.Entry{}, false
	}
	entry := b.roster[i]
	b.roster = slices.Delete(b.roster, i, i+1)

	return entry, true
}

// Place appends entry to the group at groupIndex.
func (b *Board) Place(entry types.Entry, groupIndex int) {
	b.groups[groupIndex].Add(entry)
}

// ManualTarget returns the group a manually placed entry should join.
//
// Groups with the fewest members are preferred, then the lowest total score,
// then the lowest index. Returns -1 when there are no groups.
func (b *Board) ManualTarget() int {
	best := -1
	for i, g := range b.groups {
		if best < 0 {
			best = i
			continue
		}
		cur := b.groups[best]
		if g.Len() < cur.Len() || (g.Len() == cur.Len() && g.TotalScore < cur.TotalScore) {
			best = i
		}
	}

	return best
}

// Load appends entries to the roster, skipping invalid and duplicate names.
//
// Returns the error for every skipped entry.
func (b *Board) Load(entries []types.Entry) []error {
	var errs []error
	for _, e := range entries {
		if _, err := b.Add(e.Name, e.Score); err != nil {
			errs = append(errs, err)
		}
	}

	return errs
}

// ResetGroups replaces the groups with groupCount empty groups.
func (b *Board) ResetGroups(groupCount int) {
	b.groups = types.NewEmptyPartition(groupCount)
}

// Clear empties the roster and every group, keeping the group count.
func (b *Board) Clear() {
	b.roster = []types.Entry{}
	b.ResetGroups(len(b.groups))
}

// ClearRoster empties the roster only.
func (b *Board) ClearRoster() {
	b.roster = []types.Entry{}
}

// Roster returns the live roster. Callers must not modify it.
func (b *Board) Roster() []types.Entry {
	return b.roster
}

// Groups returns the live groups. Callers must not modify them.
func (b *Board) Groups() types.Partition {
	return b.groups
}

// Len returns the number of entries on the roster.
func (b *Board) Len() int {
	return len(b.roster)
}

// GroupCount returns the number of groups.
func (b *Board) GroupCount() int {
	return len(b.groups)
}

func (b *Board) rosterIndex(name string) int {
	return slices.IndexFunc(b.roster, func(e types.Entry) bool { return e.Name == name })
}
