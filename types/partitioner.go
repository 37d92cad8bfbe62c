package types

// Partitioner divides a roster into a fixed number of groups.
//
// Implementations must be deterministic for a given input: the same entries in
// the same order and the same group count always produce the same partition.
// Every entry appears in exactly one group, and the sum of group totals equals
// the sum of entry scores.
type Partitioner interface {
	// Partition splits entries into groupCount groups.
	//
	// Parameters:
	//   - entries: Roster to partition (not modified)
	//   - groupCount: Number of groups to produce (>= 1)
	//
	// Returns:
	//   - Partition: Exactly groupCount groups
	//   - error: ErrInvalidGroupCount-wrapped error if groupCount < 1
	Partition(entries []Entry, groupCount int) (Partition, error)
}
