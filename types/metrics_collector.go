package types

import "time"

// MetricsCollector defines methods for recording operational metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// Methods may be called from the frame runner goroutine and from API callers
// concurrently, so implementations must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces.
type MetricsCollector interface {
	EngineMetrics
	SpinMetrics
	AssignmentMetrics
}

// EngineMetrics defines metrics for engine-level lifecycle.
type EngineMetrics interface {
	// RecordPhaseTransition records a phase transition.
	RecordPhaseTransition(from, to Phase)

	// RecordEventDropped records an assignment event dropped because a subscriber
	// channel was full.
	RecordEventDropped()

	// RecordRosterSize sets the current number of entries on the wheel (gauge metric).
	RecordRosterSize(count int)
}

// SpinMetrics defines metrics for wheel spins.
type SpinMetrics interface {
	// RecordSpinStarted records a spin start.
	//
	// Parameters:
	//   - entries: Number of entries on the wheel when the spin started
	RecordSpinStarted(entries int)

	// RecordSpinSettled records the wall time a spin took to settle.
	RecordSpinSettled(elapsed time.Duration)
}

// AssignmentMetrics defines metrics for group assignment.
type AssignmentMetrics interface {
	// RecordAssignment records a completed assignment.
	//
	// Parameters:
	//   - path: How the group was chosen ("precomputed", "fallback", "manual")
	RecordAssignment(path string)

	// RecordPartitionBuilt records a balanced partition computation.
	//
	// Parameters:
	//   - entries: Number of entries partitioned
	//   - spread: Difference between heaviest and lightest group totals
	//   - duration: Time taken to compute the partition
	RecordPartitionBuilt(entries, spread int, duration time.Duration)

	// RecordRosterDrift records a spin started after the live roster diverged
	// from the roster the partition was computed from.
	RecordRosterDrift()
}

// Assignment path labels used with RecordAssignment.
const (
	AssignmentPathPrecomputed = "precomputed"
	AssignmentPathFallback    = "fallback"
	AssignmentPathManual      = "manual"
)
