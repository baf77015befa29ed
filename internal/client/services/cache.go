package services

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// Cache keeps the last conversations and messages seen online so they can
// be shown while the server is unreachable. Cache failures are logged and
// never fail the user's command.
type Cache interface {
	Claim(ctx context.Context, owner string) error
	Clear(ctx context.Context) error
	SaveConversations(ctx context.Context, items []models.Summary) error
	Conversations(ctx context.Context) ([]models.Summary, error)
	SaveMessages(ctx context.Context, items []models.Message) error
	Messages(ctx context.Context, conversationID int64) ([]models.Message, error)
}

// offlineWarning is shown with results served from the local cache.
const offlineWarning = "server unavailable, showing cached data"
