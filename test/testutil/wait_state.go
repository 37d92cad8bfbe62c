package testutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/spinpick/types"
)

// ErrPhaseTimeout is returned when an engine does not reach a phase in time.
var ErrPhaseTimeout = errors.New("timed out waiting for phase")

// PhaseWatcher is the subset of Engine methods needed for waiting.
// This allows the helpers to work with both real engines and test doubles.
type PhaseWatcher interface {
	SubscribePhases() (<-chan types.Phase, func())
}

// Spinner is a PhaseWatcher that can also be asked to spin.
type Spinner interface {
	PhaseWatcher
	RequestSpin() error
}

// WaitPhase waits for the engine to enter the expected phase.
//
// The subscription delivers the current phase first, so an engine already in
// the expected phase returns immediately.
//
// Parameters:
//   - ctx: Context for cancellation
//   - engine: Engine to watch
//   - expected: Target phase
//   - timeout: Maximum time to wait
//
// Returns:
//   - error: nil if reached, ErrPhaseTimeout, ctx.Err(), or an error if the
//     phase channel closed first
//
// Example:
//
//	require.NoError(t, engine.RequestSpin())
//	err := testutil.WaitPhase(ctx, engine, types.PhaseIdle, 2*time.Second)
//	require.NoError(t, err, "spin should settle")
func WaitPhase(ctx context.Context, engine PhaseWatcher, expected types.Phase, timeout time.Duration) error {
	return WaitPhases(ctx, engine, []types.Phase{expected}, timeout)
}

// WaitPhases waits for the engine to pass through phases in order.
//
// Phases in between the expected ones are skipped, so a sequence only needs to
// name the milestones.
//
// Parameters:
//   - ctx: Context for cancellation
//   - engine: Engine to watch
//   - phases: Sequence of phases to wait for
//   - timeout: Maximum time for the whole sequence
//
// Returns:
//   - error: nil if all phases were seen, error on first failure
func WaitPhases(ctx context.Context, engine PhaseWatcher, phases []types.Phase, timeout time.Duration) error {
	ch, unsubscribe := engine.SubscribePhases()
	defer unsubscribe()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for i := 0; i < len(phases); {
		select {
		case phase, ok := <-ch:
			if !ok {
				return fmt.Errorf("phase channel closed before phase[%d] %s", i, phases[i])
			}
			if phase == phases[i] {
				i++
			}
		case <-timer.C:
			return fmt.Errorf("%w: phase[%d] %s", ErrPhaseTimeout, i, phases[i])
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// PlayGame requests spins whenever the engine is idle until it is empty.
//
// A Runner (or another goroutine calling Advance) must be driving the engine.
//
// Returns:
//   - int: Number of spins started
//   - error: nil once the engine is empty, ErrPhaseTimeout, ctx.Err(), or an
//     unexpected spin error
func PlayGame(ctx context.Context, engine Spinner, timeout time.Duration) (int, error) {
	ch, unsubscribe := engine.SubscribePhases()
	defer unsubscribe()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	spins := 0
	for {
		select {
		case phase, ok := <-ch:
			if !ok {
				return spins, errors.New("phase channel closed before the game ended")
			}
			switch phase {
			case types.PhaseEmpty:
				return spins, nil
			case types.PhaseIdle:
				err := engine.RequestSpin()
				switch {
				case err == nil:
					spins++
				case errors.Is(err, types.ErrSpinInProgress):
				default:
					return spins, err
				}
			default:
			}
		case <-timer.C:
			return spins, ErrPhaseTimeout
		case <-ctx.Done():
			return spins, ctx.Err()
		}
	}
}
