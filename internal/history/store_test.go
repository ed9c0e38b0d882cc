package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "nested", "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openTemp(t)

	_, err := store.Record("disk usage", "run: df -h", "42% used")
	require.NoError(t, err)
	second, err := store.Record("uptime", "run: uptime", "3 days")
	require.NoError(t, err)
	assert.NotZero(t, second.ID)
	assert.False(t, second.CreatedAt.IsZero())

	got, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "uptime", got[0].UserText)
	assert.Equal(t, "42% used", got[1].Reply)
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTemp(t)

	for _, text := range []string{"a", "b", "c"} {
		_, err := store.Record(text, text, text)
		require.NoError(t, err)
	}

	got, err := store.Recent(2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "c", got[0].UserText)
}

func TestStore_Clear(t *testing.T) {
	store := openTemp(t)

	_, err := store.Record("a", "a", "a")
	require.NoError(t, err)

	n, err := store.Clear()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := store.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
