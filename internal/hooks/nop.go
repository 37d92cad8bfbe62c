// Package hooks provides default hook implementations.
package hooks

import (
	"context"

	"github.com/arloliu/spinpick/types"
)

// NopHooks implements every engine hook as a no-op.
//
// The engine fills unset hook fields from it so callbacks never need nil checks.
type NopHooks struct{}

var (
	_ func(context.Context, types.AssignmentEvent) error    = (*NopHooks)(nil).OnAssignment
	_ func(context.Context, types.Phase, types.Phase) error = (*NopHooks)(nil).OnPhaseChanged
	_ func(context.Context, types.Entry, int) error         = (*NopHooks)(nil).OnFallback
	_ func(context.Context, string, types.Partition) error  = (*NopHooks)(nil).OnPartitionBuilt
)

// NewNop returns hooks with every callback set to a no-op.
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnAssignment:     h.OnAssignment,
		OnPhaseChanged:   h.OnPhaseChanged,
		OnFallback:       h.OnFallback,
		OnPartitionBuilt: h.OnPartitionBuilt,
	}
}

// Fill returns a copy of h with nil callbacks replaced by no-ops.
//
// Parameters:
//   - h: User supplied hooks (may be nil)
//
// Returns:
//   - types.Hooks: Hooks whose callbacks are all non-nil
func Fill(h *types.Hooks) types.Hooks {
	out := NewNop()
	if h == nil {
		return out
	}
	if h.OnAssignment != nil {
		out.OnAssignment = h.OnAssignment
	}
	if h.OnPhaseChanged != nil {
		out.OnPhaseChanged = h.OnPhaseChanged
	}
	if h.OnFallback != nil {
		out.OnFallback = h.OnFallback
	}
	if h.OnPartitionBuilt != nil {
		out.OnPartitionBuilt = h.OnPartitionBuilt
	}

	return out
}

// OnAssignment is a no-op implementation.
func (h *NopHooks) OnAssignment(_ context.Context, _ types.AssignmentEvent) error {
	return nil
}

// OnPhaseChanged is a no-op implementation.
func (h *NopHooks) OnPhaseChanged(_ context.Context, _, _ types.Phase) error {
	return nil
}

// OnFallback is a no-op implementation.
func (h *NopHooks) OnFallback(_ context.Context, _ types.Entry, _ int) error {
	return nil
}

// OnPartitionBuilt is a no-op implementation.
func (h *NopHooks) OnPartitionBuilt(_ context.Context, _ string, _ types.Partition) error {
	return nil
}
