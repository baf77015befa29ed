package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RunsMigrationsIdempotently(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "cache.db")
	ctx := context.Background()

	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='goose_db_version'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestStore_RoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveConversations(ctx, []models.Summary{
		{Conversation: models.Conversation{ID: 5, Kind: models.KindDirect, CreatedAt: at}, DisplayName: "bob"},
	}))
	require.NoError(t, s.SaveMessages(ctx, []models.Message{
		{ID: 1, ConversationID: 5, FromID: 1, ToID: 2, SenderName: "alice", Contents: "hi", CreatedAt: at},
	}))

	convs, err := s.Conversations(ctx)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, "bob", convs[0].DisplayName)

	msgs, err := s.Messages(ctx, 5)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Contents)
}

func TestStore_ClaimDropsOtherAccountsData(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Claim(ctx, "alice@example.org"))
	require.NoError(t, s.SaveMessages(ctx, []models.Message{{ID: 1, ConversationID: 5, SenderName: "alice", Contents: "hi"}}))

	// same owner keeps data
	require.NoError(t, s.Claim(ctx, "alice@example.org"))
	msgs, err := s.Messages(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)

	require.NoError(t, s.Claim(ctx, "bob@example.org"))
	owner, err := s.Owner(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.org", owner)
	msgs, err = s.Messages(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestStore_Clear(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Claim(ctx, "alice@example.org"))
	require.NoError(t, s.SaveConversations(ctx, []models.Summary{{Conversation: models.Conversation{ID: 1, Kind: models.KindDirect}, DisplayName: "x"}}))
	require.NoError(t, s.Clear(ctx))

	owner, err := s.Owner(ctx)
	require.NoError(t, err)
	assert.Empty(t, owner)
	convs, err := s.Conversations(ctx)
	require.NoError(t, err)
	assert.Empty(t, convs)
}
