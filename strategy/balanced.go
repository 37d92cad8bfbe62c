package strategy

import (
	"cmp"
	"slices"

	"github.com/arloliu/spinpick/types"
)

// Balanced implements greedy longest-processing-time partitioning.
//
// Entries are taken heaviest first and each one is placed into the group whose
// running total is currently lowest. The result is not guaranteed optimal, but
// the heaviest group never exceeds 4/3 of the optimal maximum.
type Balanced struct {
	logger types.Logger
}

var _ types.Partitioner = (*Balanced)(nil)

// BalancedOption configures a Balanced partitioner.
type BalancedOption func(*Balanced)

// WithBalancedLogger sets the logger used for debug diagnostics.
func WithBalancedLogger(logger types.Logger) BalancedOption {
	return func(b *Balanced) {
		b.logger = logger
	}
}

// NewBalanced creates a new balanced partitioner.
//
// Parameters:
//   - opts: Optional configuration (logger)
//
// Returns:
//   - *Balanced: Initialized partitioner
//
// Example:
//
//	p := strategy.NewBalanced()
//	groups, err := p.Partition(entries, 3)
func NewBalanced(opts ...BalancedOption) *Balanced {
	b := &Balanced{}
	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Partition splits entries into groupCount groups with near-equal score totals.
//
// The algorithm:
//  1. Stable-sort a copy of the entries by score descending (equal scores keep input order)
//  2. For each entry, pick the group with the minimum total; ties go to the lowest index
//  3. Append the entry to that group and add its score to the total
//
// The input slice is not modified. An empty roster yields groupCount empty groups.
//
// Parameters:
//   - entries: Roster to partition
//   - groupCount: Number of groups (>= 1)
//
// Returns:
//   - types.Partition: Exactly groupCount groups
//   - error: types.ErrInvalidGroupCount if groupCount < 1
func (b *Balanced) Partition(entries []types.Entry, groupCount int) (types.Partition, error) {
	if groupCount < 1 {
		return nil, invalidGroupCount(groupCount)
	}

	sorted := sortByScoreDesc(entries)
	groups := types.NewEmptyPartition(groupCount)

	for _, e := range sorted {
		groups[groups.LightestGroup()].Add(e)
	}

	if b.logger != nil {
		b.logger.Debug("balanced partition computed",
			"entries", len(entries),
			"groups", groupCount,
			"spread", groups.Spread(),
		)
	}

	return groups, nil
}

// sortByScoreDesc returns a copy of entries stably sorted by score, heaviest first.
func sortByScoreDesc(entries []types.Entry) []types.Entry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b types.Entry) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return sorted
}
