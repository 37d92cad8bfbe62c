package strategy

import (
	"github.com/arloliu/spinpick/types"
)

// RoundRobin implements snake-draft partitioning.
//
// Entries are sorted heaviest first and dealt across groups in alternating
// direction (0, 1, ..., n-1, n-1, ..., 1, 0, 0, 1, ...). Group sizes never
// differ by more than one, which Balanced does not guarantee.
type RoundRobin struct{}

var _ types.Partitioner = (*RoundRobin)(nil)

// NewRoundRobin creates a new snake-draft partitioner.
//
// Use it in place of Balanced when equal head counts matter more than equal
// score totals.
//
// Returns:
//   - *RoundRobin: Initialized partitioner
//
// Example:
//
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithPartitioner(strategy.NewRoundRobin()))
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{}
}

// Partition deals score-sorted entries across groups in snake order.
//
// Parameters:
//   - entries: Roster to partition (not modified)
//   - groupCount: Number of groups (>= 1)
//
// Returns:
//   - types.Partition: Exactly groupCount groups
//   - error: types.ErrInvalidGroupCount if groupCount < 1
func (rr *RoundRobin) Partition(entries []types.Entry, groupCount int) (types.Partition, error) {
	if groupCount < 1 {
		return nil, invalidGroupCount(groupCount)
	}

	groups := types.NewEmptyPartition(groupCount)
	for i, e := range sortByScoreDesc(entries) {
		round, pos := i/groupCount, i%groupCount
		if round%2 == 1 {
			pos = groupCount - 1 - pos
		}
		groups[pos].Add(e)
	}

	return groups, nil
}
