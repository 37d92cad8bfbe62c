package testutil

import (
	"fmt"
	"math/rand/v2"

	"github.com/arloliu/spinpick/types"
)

// RandomRoster generates n uniquely named entries with scores in [1, maxScore].
func RandomRoster(rng *rand.Rand, n, maxScore int) []types.Entry {
	entries := make([]types.Entry, n)
	for i := range entries {
		entries[i] = types.Entry{
			Name:  fmt.Sprintf("entry-%03d", i),
			Score: 1 + rng.IntN(maxScore),
		}
	}

	return entries
}

// ReferenceRoster returns the four-entry roster whose balanced two-group split
// is {A, D} and {B, C}, both totalling 6.
func ReferenceRoster() []types.Entry {
	return []types.Entry{
		{Name: "A", Score: 5},
		{Name: "B", Score: 3},
		{Name: "C", Score: 3},
		{Name: "D", Score: 1},
	}
}
