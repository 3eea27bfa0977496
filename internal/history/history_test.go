package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "nested", "history.db")

	store, err := Open(context.Background(), "sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLStore_RecordAssignsIDAndTime(t *testing.T) {
	store := openTestStore(t)

	entry, err := store.Record(context.Background(), Entry{
		Kind:   KindMigration,
		Name:   "create_posts_table",
		Table:  "posts",
		Action: "create",
		Path:   "database/migrations/2024_01_01_000000_create_posts_table.php",
	})
	require.NoError(t, err)

	_, err = uuid.Parse(entry.ID)
	assert.NoError(t, err)
	assert.False(t, entry.CreatedAt.IsZero())
}

func TestSQLStore_ListNewestFirst(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, kind := range []string{KindMigration, KindModel, KindController} {
		_, err := store.Record(ctx, Entry{
			Kind:      kind,
			Name:      "create_posts_table",
			Table:     "posts",
			Action:    "create",
			Path:      kind + ".php",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	entries, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, KindController, entries[0].Kind)
	assert.Equal(t, KindMigration, entries[2].Kind)
	assert.True(t, entries[0].CreatedAt.Equal(base.Add(2*time.Second)))
	assert.Equal(t, "posts", entries[0].Table)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, KindModel, limited[1].Kind)
}

func TestSQLStore_ReopenKeepsEntries(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	store, err := Open(ctx, "sqlite3", dsn)
	require.NoError(t, err)
	_, err = store.Record(ctx, Entry{Kind: KindRoute, Name: "posts", Table: "posts", Action: "create", Path: "routes/web.php"})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(ctx, "sqlite3", dsn)
	require.NoError(t, err)
	defer store.Close()

	entries, err := store.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "routes/web.php", entries[0].Path)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestRebind(t *testing.T) {
	postgres := &DB{driver: "postgres"}
	sqlite := &DB{driver: "sqlite3"}
	query := "INSERT INTO t (a, b) VALUES (?, ?)"

	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", postgres.Rebind(query))
	assert.Equal(t, query, sqlite.Rebind(query))
	assert.Equal(t, "mysql", (&DB{driver: "mysql"}).Driver())
}
