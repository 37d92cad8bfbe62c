// Package assignment holds the engine's game-state building blocks.
//
//   - Index: entry name to precomputed group lookup
//   - Cache: the partition frozen at the first spin of a game, with a roster
//     fingerprint for drift detection
//   - Resolve: picks the group for a settled entry, falling back to the
//     lightest live group on an index miss
//   - Board: roster and groups with name validation
//   - Feed: non-blocking fan-out to subscriber channels
//   - PhaseMachine: current phase with transition logging, metrics and
//     subscriptions
//
// None of these types lock on their own except Feed and PhaseMachine; the
// engine serializes access to the rest.
package assignment
