package types

import "context"

// Hooks defines callbacks for engine events.
//
// All hooks are optional. They are invoked after the engine has released its
// internal lock, from a single queue shared by every caller, in the order the
// events happened. Usually the goroutine that completed the event runs its
// hooks; if another goroutine is already draining the queue, that goroutine
// runs them instead. Hooks may call back into the engine.
//
// Hook errors are logged but never fail engine operations. The context passed to
// hooks is the engine's lifecycle context and is cancelled by Close.
//
// Example:
//
//	hooks := &spinpick.Hooks{
//	    OnAssignment: func(ctx context.Context, ev spinpick.AssignmentEvent) error {
//	        fmt.Printf("%s -> group %d\n", ev.Entry.Name, ev.GroupIndex+1)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnAssignment is called after an entry has been placed into a group.
	OnAssignment func(ctx context.Context, ev AssignmentEvent) error

	// OnPhaseChanged is called when the engine's phase transitions.
	OnPhaseChanged func(ctx context.Context, from, to Phase) error

	// OnFallback is called when a settled entry was missing from the precomputed
	// assignment and had to be placed into the live lightest group instead.
	OnFallback func(ctx context.Context, entry Entry, groupIndex int) error

	// OnPartitionBuilt is called when the balanced partition for a game is computed.
	OnPartitionBuilt func(ctx context.Context, gameID string, partition Partition) error
}
