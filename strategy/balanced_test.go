package strategy

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/arloliu/spinpick/internal/logging"
	"github.com/arloliu/spinpick/types"
	"github.com/stretchr/testify/require"
)

func names(g types.Group) []string {
	out := make([]string, 0, len(g.Members))
	for _, m := range g.Members {
		out = append(out, m.Name)
	}

	return out
}

func randomRoster(r *rand.Rand, n int) []types.Entry {
	entries := make([]types.Entry, n)
	for i := range entries {
		entries[i] = types.Entry{Name: fmt.Sprintf("e%03d", i), Score: 1 + r.IntN(20)}
	}

	return entries
}

func TestBalanced_Partition(t *testing.T) {
	t.Run("splits the reference roster into two groups of six", func(t *testing.T) {
		entries := []types.Entry{
			{Name: "A", Score: 5},
			{Name: "B", Score: 3},
			{Name: "C", Score: 3},
			{Name: "D", Score: 1},
		}

		groups, err := NewBalanced().Partition(entries, 2)

		require.NoError(t, err)
		require.Len(t, groups, 2)
		require.Equal(t, []string{"A", "D"}, names(groups[0]))
		require.Equal(t, 6, groups[0].TotalScore)
		require.Equal(t, []string{"B", "C"}, names(groups[1]))
		require.Equal(t, 6, groups[1].TotalScore)
	})

	t.Run("keeps input order among equal scores", func(t *testing.T) {
		entries := []types.Entry{
			{Name: "x", Score: 2},
			{Name: "y", Score: 2},
			{Name: "z", Score: 2},
		}

		groups, err := NewBalanced().Partition(entries, 3)

		require.NoError(t, err)
		require.Equal(t, []string{"x"}, names(groups[0]))
		require.Equal(t, []string{"y"}, names(groups[1]))
		require.Equal(t, []string{"z"}, names(groups[2]))
	})

	t.Run("returns empty groups for an empty roster", func(t *testing.T) {
		groups, err := NewBalanced().Partition(nil, 4)

		require.NoError(t, err)
		require.Len(t, groups, 4)
		for _, g := range groups {
			require.Empty(t, g.Members)
			require.Zero(t, g.TotalScore)
		}
	})

	t.Run("rejects group counts below one", func(t *testing.T) {
		_, err := NewBalanced().Partition([]types.Entry{{Name: "A", Score: 1}}, 0)
		require.ErrorIs(t, err, types.ErrInvalidGroupCount)
	})

	t.Run("does not modify the input roster", func(t *testing.T) {
		entries := []types.Entry{{Name: "low", Score: 1}, {Name: "high", Score: 9}}

		_, err := NewBalanced().Partition(entries, 2)

		require.NoError(t, err)
		require.Equal(t, "low", entries[0].Name)
	})

	t.Run("accepts a logger", func(t *testing.T) {
		p := NewBalanced(WithBalancedLogger(logging.NewTest(t)))
		_, err := p.Partition([]types.Entry{{Name: "A", Score: 1}}, 2)
		require.NoError(t, err)
	})
}

func TestBalanced_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	p := NewBalanced()

	for trial := range 200 {
		entries := randomRoster(r, r.IntN(30))
		groupCount := 2 + r.IntN(5)

		groups, err := p.Partition(entries, groupCount)
		require.NoError(t, err)
		require.Len(t, groups, groupCount)

		// every entry exactly once, totals preserved
		require.Equal(t, types.TotalScoreOf(entries), groups.TotalScore(), "trial %d", trial)
		require.Equal(t, len(entries), groups.EntryCount(), "trial %d", trial)
		seen := make(map[string]bool, len(entries))
		for _, g := range groups {
			require.Equal(t, types.TotalScoreOf(g.Members), g.TotalScore)
			for _, m := range g.Members {
				require.False(t, seen[m.Name], "entry %s placed twice", m.Name)
				seen[m.Name] = true
			}
		}

		// LPT bound
		maxScore := 0
		for _, e := range entries {
			maxScore = max(maxScore, e.Score)
		}
		require.LessOrEqual(t, groups.Spread(), maxScore, "trial %d", trial)

		// determinism
		again, err := p.Partition(entries, groupCount)
		require.NoError(t, err)
		require.Equal(t, groups, again, "trial %d", trial)
	}
}

func BenchmarkBalanced_Partition(b *testing.B) {
	r := rand.New(rand.NewPCG(1, 2))
	entries := randomRoster(r, 500)
	p := NewBalanced()

	b.ResetTimer()
	for b.Loop() {
		_, _ = p.Partition(entries, 8)
	}
}
