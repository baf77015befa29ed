// Package conversations stores conversations and their membership rows.
package conversations

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	// GetForUpdate is GetByID plus a row lock held until the surrounding
	// transaction ends. Appends take it so that message ids and timestamps
	// are assigned in commit order.
	GetForUpdate(ctx context.Context, id int64) (*models.Conversation, error)

	// FindDirect returns the direct conversation whose membership is exactly
	// {a, b}, or common.ErrorNotFound.
	FindDirect(ctx context.Context, a, b int64) (*models.Conversation, error)
	// CreateDirect inserts a direct conversation row for the pair. A
	// concurrent insert for the same pair yields common.ErrConflictRetry.
	CreateDirect(ctx context.Context, a, b int64, name string) (*models.Conversation, error)

	FindByGroupRef(ctx context.Context, groupID int64) (*models.Conversation, error)
	// CreateForGroup yields common.ErrConflictRetry if the group already has
	// a conversation.
	CreateForGroup(ctx context.Context, groupID int64, name string) (*models.Conversation, error)

	// AddParticipant is idempotent; added reports whether a row was inserted.
	AddParticipant(ctx context.Context, conversationID, participantID int64) (added bool, err error)
	Participants(ctx context.Context, conversationID int64) ([]int64, error)
	IsParticipant(ctx context.Context, conversationID, participantID int64) (bool, error)

	// ListForParticipant returns conversations participantID belongs to,
	// newest first.
	ListForParticipant(ctx context.Context, participantID int64) ([]*models.Conversation, error)
}
