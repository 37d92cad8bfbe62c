package assignment

import (
	"sync/atomic"

	"github.com/arloliu/spinpick/types"
)

// phaseBuffer lets Idle -> Spinning -> RevealingLast -> Empty queue up for a
// slow subscriber without drops.
const phaseBuffer = 4

// PhaseMachine tracks the engine phase and notifies subscribers of transitions.
//
// The phase itself is read atomically. Callers serialize transitions; the
// engine performs them while holding its state lock.
type PhaseMachine struct {
	current atomic.Int32 // types.Phase

	logger  types.Logger
	metrics types.EngineMetrics
	feed    *Feed[types.Phase]
}

// NewPhaseMachine creates a phase machine starting in initial.
//
// Parameters:
//   - initial: Starting phase
//   - logger: Logger for transitions
//   - metrics: Metrics collector for transitions and dropped notifications
func NewPhaseMachine(initial types.Phase, logger types.Logger, metrics types.EngineMetrics) *PhaseMachine {
	pm := &PhaseMachine{
		logger:  logger,
		metrics: metrics,
		feed:    NewFeed[types.Phase](phaseBuffer, metrics.RecordEventDropped),
	}
	pm.current.Store(int32(initial)) //nolint:gosec // G115: phase is a bounded enum

	return pm
}

// Phase returns the current phase.
func (pm *PhaseMachine) Phase() types.Phase {
	return types.Phase(pm.current.Load())
}

// Transition moves to phase to.
//
// Returns the previous phase and whether anything changed. Transitions to the
// current phase are ignored and produce no notification.
func (pm *PhaseMachine) Transition(to types.Phase) (types.Phase, bool) {
	from := pm.Phase()
	if from == to {
		return from, false
	}

	pm.current.Store(int32(to)) //nolint:gosec // G115: phase is a bounded enum
	pm.logger.Info("state transition", "from", from, "to", to)
	pm.metrics.RecordPhaseTransition(from, to)
	pm.feed.Publish(to)

	return from, true
}

// Subscribe returns a channel receiving every phase the machine enters.
//
// The current phase is delivered immediately upon subscription.
//
// Example:
//
//	ch, unsubscribe := pm.Subscribe()
//	defer unsubscribe()
//	for phase := range ch {
//	    fmt.Printf("phase changed to: %s\n", phase)
//	}
func (pm *PhaseMachine) Subscribe() (<-chan types.Phase, func()) {
	return pm.feed.SubscribeWith(pm.Phase())
}

// Close closes every subscriber channel.
func (pm *PhaseMachine) Close() {
	pm.feed.Close()
}
