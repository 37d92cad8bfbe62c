package spin

import "math"

// FullTurn is one complete revolution in radians.
const FullTurn = 2 * math.Pi

// Normalize maps any rotation into [0, 2π).
func Normalize(rotation float64) float64 {
	r := math.Mod(rotation, FullTurn)
	if r < 0 {
		r += FullTurn
	}
	if r >= FullTurn {
		// math.Mod of a tiny negative value plus 2π can round up to 2π.
		r = 0
	}

	return r
}

// SelectIndex returns the index of the segment under the fixed pointer.
//
// The wheel is split into n equal segments laid out clockwise from angle 0 and
// rotates clockwise, so segments pass under the pointer in reverse order. The
// result is n - 1 - (floor(normalize(rotation) / (2π/n)) mod n), always in [0, n).
//
// Returns -1 when n < 1.
func SelectIndex(rotation float64, n int) int {
	if n < 1 {
		return -1
	}
	segment := FullTurn / float64(n)
	slot := int(math.Floor(Normalize(rotation)/segment)) % n

	return n - 1 - slot
}
