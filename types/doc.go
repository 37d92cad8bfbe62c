// Package types provides core type definitions and interfaces for the spinpick library.
//
// This package contains shared types that are used across multiple packages in
// spinpick. Keeping them in a separate package avoids import cycles between the
// root spinpick package and its internal implementations.
//
// Key types:
//   - Entry: Named, scored roster participant
//   - Group: One of the fixed-count output buckets
//   - Partition: Balanced division of a roster into groups
//   - Phase: Engine spin/reveal lifecycle phase
//   - AssignmentEvent: Completed placement of an entry into a group
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
