// Package profiles stores public user profiles keyed by auth identity.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

type Repository interface {
	// CreateIfAbsent inserts p unless a profile with the same AuthIdentity
	// already exists, then returns the stored row either way.
	CreateIfAbsent(ctx context.Context, p *models.Profile) (*models.Profile, error)
	GetByAuthIdentity(ctx context.Context, identity string) (*models.Profile, error)
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	// Search matches term as a case-insensitive substring of username.
	Search(ctx context.Context, term string, limit int) ([]*models.Profile, error)
}
