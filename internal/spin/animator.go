package spin

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/spinpick/types"
)

// ErrNoSegments is returned when a spin is started on an empty wheel.
var ErrNoSegments = errors.New("wheel has no segments")

// Settings control the shape of every spin.
type Settings struct {
	// Duration is the wall time from start to settle.
	Duration time.Duration

	// MinTurns and MaxTurns bound the number of full revolutions, drawn
	// uniformly from [MinTurns, MaxTurns).
	MinTurns float64
	MaxTurns float64
}

// Animator creates spins with a shared random source.
type Animator struct {
	settings Settings
	random   types.RandomSource
}

// NewAnimator creates an animator.
//
// Parameters:
//   - settings: Spin duration and turn bounds
//   - random: Source of uniform floats in [0, 1)
func NewAnimator(settings Settings, random types.RandomSource) *Animator {
	return &Animator{settings: settings, random: random}
}

// Start begins a spin from the current rotation.
//
// The target is current + turns·2π with turns drawn from [MinTurns, MaxTurns).
// Because the target is cumulative, the wheel never visibly snaps back between spins.
//
// Parameters:
//   - segments: Number of entries on the wheel
//   - current: Rotation the wheel is resting at, in radians
//
// Returns:
//   - *Spin: Spin ready to be advanced
//   - error: ErrNoSegments if segments < 1
func (a *Animator) Start(segments int, current float64) (*Spin, error) {
	if segments < 1 {
		return nil, fmt.Errorf("start spin: %w", ErrNoSegments)
	}
	turns := a.settings.MinTurns + a.random.Float64()*(a.settings.MaxTurns-a.settings.MinTurns)

	return &Spin{
		segments: segments,
		start:    current,
		target:   current + turns*FullTurn,
		duration: a.settings.Duration,
		rotation: current,
	}, nil
}

// Spin is a single in-flight wheel animation.
//
// A Spin is not safe for concurrent use.
type Spin struct {
	segments int
	start    float64
	target   float64
	duration time.Duration
	elapsed  time.Duration
	rotation float64
	done     bool
}

// Advance moves the spin forward by delta and returns the new rotation.
//
// Rotation follows start + (target - start)·EaseOutCubic(elapsed/duration).
// Once elapsed reaches the duration, rotation is exactly the target and done is
// true; further calls keep returning the target. Negative deltas are ignored.
func (s *Spin) Advance(delta time.Duration) (rotation float64, done bool) {
	if s.done {
		return s.rotation, true
	}
	if delta > 0 {
		s.elapsed += delta
	}
	if s.duration <= 0 || s.elapsed >= s.duration {
		s.elapsed = s.duration
		s.rotation = s.target
		s.done = true

		return s.rotation, true
	}
	p := float64(s.elapsed) / float64(s.duration)
	s.rotation = s.start + (s.target-s.start)*EaseOutCubic(p)

	return s.rotation, false
}

// Rotation returns the current rotation in radians.
func (s *Spin) Rotation() float64 { return s.rotation }

// Start returns the rotation the spin began from.
func (s *Spin) Start() float64 { return s.start }

// Target returns the rotation the spin will settle at.
func (s *Spin) Target() float64 { return s.target }

// Done reports whether the spin has settled.
func (s *Spin) Done() bool { return s.done }

// Elapsed returns the animation time consumed so far.
func (s *Spin) Elapsed() time.Duration { return s.elapsed }

// Selected returns the index under the pointer at the target rotation.
func (s *Spin) Selected() int {
	return SelectIndex(s.target, s.segments)
}
