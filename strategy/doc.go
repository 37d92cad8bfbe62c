// Package strategy provides built-in partitioner implementations.
//
// A partitioner decides which group every roster entry belongs to before the
// first spin of a game. The package includes two built-in strategies:
//
//   - Balanced: Greedy longest-processing-time partitioning (default)
//   - RoundRobin: Score-sorted snake draft
//
// # Strategy Selection Guide
//
// Balanced:
//   - Use when group score totals should be as close as possible
//   - Heaviest group is within 4/3 of the optimal maximum
//   - Group sizes may differ by more than one entry
//
// RoundRobin:
//   - Use when every group should have the same head count (±1)
//   - Totals are reasonably close but not minimized
//
// Both strategies are deterministic: the same roster in the same order always
// produces the same partition. Custom strategies can be implemented by
// satisfying the types.Partitioner interface.
package strategy
