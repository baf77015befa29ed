// Package messages stores conversation messages. Reads are always ordered
// by (created_at, id).
package messages

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

type Repository interface {
	// Append fills ID and CreatedAt from the database.
	Append(ctx context.Context, m *models.Message) (*models.Message, error)
	// History returns messages oldest first. SenderName is empty when the
	// sender has no profile.
	History(ctx context.Context, conversationID int64) ([]*models.HistoryEntry, error)
	// LastMessageAt returns nil for an empty conversation.
	LastMessageAt(ctx context.Context, conversationID int64) (*time.Time, error)
}
