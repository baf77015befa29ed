// Package groups stores named groups backing group conversations.
package groups

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, name string) (*models.Group, error)
	GetByID(ctx context.Context, id int64) (*models.Group, error)
}
