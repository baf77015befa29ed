// Package refreshtokens stores the opaque refresh tokens issued on login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Find returns common.ErrorNotFound when the token is absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete is a no-op for unknown tokens.
	Delete(ctx context.Context, token string) error
}
