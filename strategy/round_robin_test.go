package strategy

import (
	"math/rand/v2"
	"testing"

	"github.com/arloliu/spinpick/types"
	"github.com/stretchr/testify/require"
)

func TestRoundRobin_Partition(t *testing.T) {
	t.Run("deals score-sorted entries in snake order", func(t *testing.T) {
		entries := []types.Entry{
			{Name: "a", Score: 6},
			{Name: "b", Score: 5},
			{Name: "c", Score: 4},
			{Name: "d", Score: 3},
			{Name: "e", Score: 2},
			{Name: "f", Score: 1},
		}

		groups, err := NewRoundRobin().Partition(entries, 3)

		require.NoError(t, err)
		require.Equal(t, []string{"a", "f"}, names(groups[0]))
		require.Equal(t, []string{"b", "e"}, names(groups[1]))
		require.Equal(t, []string{"c", "d"}, names(groups[2]))
		require.Equal(t, 7, groups[0].TotalScore)
		require.Equal(t, 7, groups[1].TotalScore)
		require.Equal(t, 7, groups[2].TotalScore)
	})

	t.Run("keeps group sizes within one of each other", func(t *testing.T) {
		r := rand.New(rand.NewPCG(3, 5))
		entries := randomRoster(r, 17)

		groups, err := NewRoundRobin().Partition(entries, 4)

		require.NoError(t, err)
		require.Equal(t, types.TotalScoreOf(entries), groups.TotalScore())
		for _, g := range groups {
			require.GreaterOrEqual(t, g.Len(), 4)
			require.LessOrEqual(t, g.Len(), 5)
		}
	})

	t.Run("returns error when group count is invalid", func(t *testing.T) {
		_, err := NewRoundRobin().Partition(nil, 0)

		require.ErrorIs(t, err, types.ErrInvalidGroupCount)
		require.Contains(t, err.Error(), "0 groups")
	})
}
