// Package metrics provides types.MetricsCollector implementations.
package metrics

import (
	"time"

	"github.com/arloliu/spinpick/types"
)

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. It is the engine default when no collector is supplied.
type NopMetrics struct{}

var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	engine, err := spinpick.NewEngine(&cfg, spinpick.WithMetrics(metrics.NewNop()))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// EngineMetrics implementation

// RecordPhaseTransition discards the phase transition metric.
func (n *NopMetrics) RecordPhaseTransition(_, _ types.Phase) {}

// RecordEventDropped discards the dropped event metric.
func (n *NopMetrics) RecordEventDropped() {}

// RecordRosterSize discards the roster size metric.
func (n *NopMetrics) RecordRosterSize(_ int) {}

// SpinMetrics implementation

// RecordSpinStarted discards the spin start metric.
func (n *NopMetrics) RecordSpinStarted(_ int) {}

// RecordSpinSettled discards the spin duration metric.
func (n *NopMetrics) RecordSpinSettled(_ time.Duration) {}

// AssignmentMetrics implementation

// RecordAssignment discards the assignment metric.
func (n *NopMetrics) RecordAssignment(_ string) {}

// RecordPartitionBuilt discards the partition metric.
func (n *NopMetrics) RecordPartitionBuilt(_, _ int, _ time.Duration) {}

// RecordRosterDrift discards the drift metric.
func (n *NopMetrics) RecordRosterDrift() {}
