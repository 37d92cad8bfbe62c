package types

// Phase represents the engine's spin and reveal lifecycle.
//
// Phases follow this progression during a game:
//
//	PhaseEmpty → PhaseIdle → PhaseSpinning → PhaseIdle (more than two entries left)
//	PhaseIdle → PhaseSpinning → PhaseRevealingLast → PhaseEmpty (two entries left)
//	PhaseIdle → PhaseSpinning → PhaseSettling → PhaseEmpty (one entry left)
//
// Idle and Empty are resting phases: no spin or reveal is in flight, and the
// roster is non-empty or empty respectively.
type Phase int

const (
	// PhaseIdle indicates the engine is ready to spin a non-empty roster.
	PhaseIdle Phase = iota

	// PhaseSpinning indicates a wheel animation is in flight.
	PhaseSpinning

	// PhaseRevealingLast indicates the staged reveal of the final entry after
	// a two-entry spin settled.
	PhaseRevealingLast

	// PhaseSettling indicates the delayed reveal of a lone remaining entry.
	PhaseSettling

	// PhaseEmpty indicates there are no entries left on the wheel.
	PhaseEmpty
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseSpinning:
		return "Spinning"
	case PhaseRevealingLast:
		return "RevealingLast"
	case PhaseSettling:
		return "Settling"
	case PhaseEmpty:
		return "Empty"
	default:
		return "Unknown"
	}
}

// Busy reports whether a spin or staged reveal is in flight.
func (p Phase) Busy() bool {
	return p == PhaseSpinning || p == PhaseRevealingLast || p == PhaseSettling
}

// MarshalText encodes the phase as its name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
