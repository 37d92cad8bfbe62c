package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/spinpick/types"
	"github.com/stretchr/testify/require"
)

func TestParseRoster(t *testing.T) {
	want := []types.Entry{{Name: "A", Score: 5}, {Name: "B", Score: 3}}

	t.Run("top-level yaml list", func(t *testing.T) {
		entries, err := ParseRoster([]byte("- name: A\n  score: 5\n- name: B\n  score: 3\n"))

		require.NoError(t, err)
		require.Equal(t, want, entries)
	})

	t.Run("roster key next to config", func(t *testing.T) {
		data := []byte("groupCount: 3\nroster:\n  - name: A\n    score: 5\n  - name: B\n    score: 3\n")

		entries, err := ParseRoster(data)

		require.NoError(t, err)
		require.Equal(t, want, entries)
	})

	t.Run("json document", func(t *testing.T) {
		entries, err := ParseRoster([]byte(`{"roster":[{"name":"A","score":5},{"name":"B","score":3}]}`))

		require.NoError(t, err)
		require.Equal(t, want, entries)
	})

	t.Run("empty document", func(t *testing.T) {
		entries, err := ParseRoster(nil)

		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("mapping without roster key", func(t *testing.T) {
		_, err := ParseRoster([]byte("groupCount: 3\n"))

		require.ErrorIs(t, err, ErrUnsupportedRosterFormat)
	})

	t.Run("scalar document", func(t *testing.T) {
		_, err := ParseRoster([]byte("just a string"))

		require.ErrorIs(t, err, ErrUnsupportedRosterFormat)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := ParseRoster([]byte("roster: [unclosed"))

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse roster")
	})
}

func TestFile_ListEntries(t *testing.T) {
	t.Run("reads entries from disk", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "roster.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- name: A\n  score: 2\n"), 0o600))

		entries, err := NewFile(path).ListEntries(context.Background())

		require.NoError(t, err)
		require.Equal(t, []types.Entry{{Name: "A", Score: 2}}, entries)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFile(filepath.Join(t.TempDir(), "nope.yaml")).ListEntries(context.Background())

		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewFile("unused").ListEntries(ctx)

		require.ErrorIs(t, err, context.Canceled)
	})
}
