package client

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

type Client interface {
	Close() error
	Register(ctx context.Context, username string, salt []byte, key []byte) error
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, key []byte) error
	Logout()
	Ping(ctx context.Context) error

	Me(ctx context.Context) (*models.Profile, error)
	SearchProfiles(ctx context.Context, term string) (models.Page[models.Profile], error)
	ResolveDirect(ctx context.Context, profileID int64) (*models.Conversation, error)
	StartGroup(ctx context.Context, name string, memberIDs []int64) (*models.Conversation, error)
	ResolveGroup(ctx context.Context, groupID int64, participantIDs []int64) (*models.Conversation, error)
	Open(ctx context.Context, conversationID int64) (*models.Session, error)
	ListConversations(ctx context.Context) (models.Page[models.Summary], error)
	Send(ctx context.Context, conversationID int64, toID int64, contents string) (*models.Message, error)
	History(ctx context.Context, conversationID int64) (models.Page[models.Message], error)
}
