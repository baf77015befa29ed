package messages

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

type Repository interface {
	Upsert(ctx context.Context, items []models.Message) error
	ListByConversation(ctx context.Context, conversationID int64) ([]models.Message, error)
	Clear(ctx context.Context) error
}
