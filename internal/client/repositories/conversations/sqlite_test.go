package conversations

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE conversations (
  id INTEGER PRIMARY KEY,
  position INTEGER NOT NULL,
  kind TEXT NOT NULL,
  name TEXT NOT NULL DEFAULT '',
  group_id INTEGER NOT NULL DEFAULT 0,
  display_name TEXT NOT NULL,
  created_at INTEGER NOT NULL,
  last_message_at INTEGER
);`)
	require.NoError(t, err)
	return db
}

func TestReplaceAllAndList_KeepsOrder(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 2, 0, 0, 0, 5, time.UTC)
	items := []models.Summary{
		{Conversation: models.Conversation{ID: 9, Kind: models.KindGroup, Name: "Study Group", GroupID: 3, CreatedAt: created}, DisplayName: "Study Group", LastMessageAt: &last},
		{Conversation: models.Conversation{ID: 2, Kind: models.KindDirect, CreatedAt: created}, DisplayName: "bob"},
	}
	require.NoError(t, r.ReplaceAll(ctx, items))

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	require.NoError(t, r.ReplaceAll(ctx, items[1:]))
	got, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].DisplayName)
}

func TestClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.ReplaceAll(ctx, []models.Summary{{Conversation: models.Conversation{ID: 1, Kind: models.KindDirect}, DisplayName: "x"}}))
	require.NoError(t, r.Clear(ctx))

	got, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReplaceAll_ErrorWrapped(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`DROP TABLE conversations`)
	require.NoError(t, err)

	err = NewSQLiteRepository(db).ReplaceAll(context.Background(), nil)
	require.ErrorContains(t, err, "failed to clear conversations")
}
