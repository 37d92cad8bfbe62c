package testutil

import (
	"slices"
	"testing"

	"github.com/arloliu/spinpick/types"
)

// AssertPartitionConsistent verifies that groups hold exactly the entries of
// roster, each once, and that every group total matches its members.
//
// Parameters:
//   - t: testing handle
//   - roster: entries that were partitioned
//   - groups: resulting groups
func AssertPartitionConsistent(t testing.TB, roster []types.Entry, groups types.Partition) {
	t.Helper()

	want := make(map[string]int, len(roster))
	for _, e := range roster {
		want[e.Name] = e.Score
	}

	seen := make(map[string]struct{}, len(roster))
	for gi, g := range groups {
		total := 0
		for _, m := range g.Members {
			if _, dup := seen[m.Name]; dup {
				t.Fatalf("entry %q placed more than once", m.Name)
			}
			seen[m.Name] = struct{}{}

			score, ok := want[m.Name]
			if !ok {
				t.Fatalf("group %d holds unknown entry %q", gi, m.Name)
			}
			if score != m.Score {
				t.Fatalf("entry %q has score %d, want %d", m.Name, m.Score, score)
			}
			total += m.Score
		}
		if total != g.TotalScore {
			t.Fatalf("group %d total %d does not match member sum %d", gi, g.TotalScore, total)
		}
	}

	if len(seen) != len(roster) {
		t.Fatalf("placed %d entries, roster has %d", len(seen), len(roster))
	}
	if groups.TotalScore() != types.TotalScoreOf(roster) {
		t.Fatalf("group totals sum to %d, roster sums to %d", groups.TotalScore(), types.TotalScoreOf(roster))
	}
}

// AssertGreedyBound verifies the greedy partition guarantee: the spread between
// the heaviest and lightest group never exceeds the largest score.
func AssertGreedyBound(t testing.TB, roster []types.Entry, groups types.Partition) {
	t.Helper()

	if len(roster) == 0 {
		return
	}
	maxScore := slices.MaxFunc(roster, func(a, b types.Entry) int { return a.Score - b.Score }).Score
	if spread := groups.Spread(); spread > maxScore {
		t.Fatalf("spread %d exceeds largest score %d", spread, maxScore)
	}
}
