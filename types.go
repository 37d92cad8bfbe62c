package spinpick

import "github.com/arloliu/spinpick/types"

// Re-export types from the types package.
//
// The types subpackage holds the shared definitions so internal packages can
// depend on them without importing the root spinpick package. These aliases
// give callers the shorter spinpick.Entry, spinpick.Logger, and so on.
type (
	Entry           = types.Entry
	Group           = types.Group
	Partition       = types.Partition
	Phase           = types.Phase
	AssignmentEvent = types.AssignmentEvent
	Snapshot        = types.Snapshot
)

// Re-export interfaces from the types package for convenience.
type (
	Partitioner      = types.Partitioner
	RosterSource     = types.RosterSource
	RandomSource     = types.RandomSource
	Clock            = types.Clock
	MetricsCollector = types.MetricsCollector
	Logger           = types.Logger
	Hooks            = types.Hooks
)

// Re-export Phase constants from the types package.
const (
	PhaseIdle          = types.PhaseIdle
	PhaseSpinning      = types.PhaseSpinning
	PhaseRevealingLast = types.PhaseRevealingLast
	PhaseSettling      = types.PhaseSettling
	PhaseEmpty         = types.PhaseEmpty
)
