package types

import "time"

// RandomSource supplies uniformly distributed floats in [0, 1).
//
// The engine draws from it once per spin to pick the number of turns. Tests
// inject a fixed sequence to make spins reproducible.
type RandomSource interface {
	Float64() float64
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}
