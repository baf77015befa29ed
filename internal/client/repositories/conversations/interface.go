package conversations

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

type Repository interface {
	ReplaceAll(ctx context.Context, items []models.Summary) error
	List(ctx context.Context) ([]models.Summary, error)
	Clear(ctx context.Context) error
}
