package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	CloseErr    error
	RegisterErr error
	GetSaltRet  []byte
	GetSaltErr  error
	LoginErr    error
	PingErr     error

	// Err is returned by every conversation call when set.
	Err error

	MeRet      *models.Profile
	SearchRet  models.Page[models.Profile]
	ConvRet    *models.Conversation
	SessionRet *models.Session
	ListRet    models.Page[models.Summary]
	HistoryRet models.Page[models.Message]

	LastRegisterUser string
	LastRegisterSalt []byte
	LastRegisterKey  []byte
	LastGetSaltUser  string
	LastLoginUser    string
	LastLoginKey     []byte
	LoggedOut        bool

	LastDirectID    int64
	LastGroupName   string
	LastGroupIDs    []int64
	LastOpenID      int64
	LastHistoryID   int64
	LastSendConv    int64
	LastSendTo      int64
	LastSendContent string
	SendCalls       int
}

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Register(ctx context.Context, username string, salt []byte, key []byte) error {
	f.LastRegisterUser = username
	f.LastRegisterSalt = append([]byte(nil), salt...)
	f.LastRegisterKey = append([]byte(nil), key...)
	return f.RegisterErr
}

func (f *fakeClient) GetSalt(ctx context.Context, username string) ([]byte, error) {
	f.LastGetSaltUser = username
	return append([]byte(nil), f.GetSaltRet...), f.GetSaltErr
}

func (f *fakeClient) Login(ctx context.Context, username string, key []byte) error {
	f.LastLoginUser = username
	f.LastLoginKey = append([]byte(nil), key...)
	return f.LoginErr
}

func (f *fakeClient) Logout() { f.LoggedOut = true }

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Me(ctx context.Context) (*models.Profile, error) { return f.MeRet, f.Err }

func (f *fakeClient) SearchProfiles(ctx context.Context, term string) (models.Page[models.Profile], error) {
	return f.SearchRet, f.Err
}

func (f *fakeClient) ResolveDirect(ctx context.Context, profileID int64) (*models.Conversation, error) {
	f.LastDirectID = profileID
	return f.ConvRet, f.Err
}

func (f *fakeClient) StartGroup(ctx context.Context, name string, memberIDs []int64) (*models.Conversation, error) {
	f.LastGroupName = name
	f.LastGroupIDs = memberIDs
	return f.ConvRet, f.Err
}

func (f *fakeClient) ResolveGroup(ctx context.Context, groupID int64, participantIDs []int64) (*models.Conversation, error) {
	return f.ConvRet, f.Err
}

func (f *fakeClient) Open(ctx context.Context, conversationID int64) (*models.Session, error) {
	f.LastOpenID = conversationID
	return f.SessionRet, f.Err
}

func (f *fakeClient) ListConversations(ctx context.Context) (models.Page[models.Summary], error) {
	return f.ListRet, f.Err
}

func (f *fakeClient) Send(ctx context.Context, conversationID int64, toID int64, contents string) (*models.Message, error) {
	f.SendCalls++
	f.LastSendConv, f.LastSendTo, f.LastSendContent = conversationID, toID, contents
	if f.Err != nil {
		return nil, f.Err
	}
	return &models.Message{
		ID:             100 + int64(f.SendCalls),
		ConversationID: conversationID,
		ToID:           toID,
		Contents:       contents,
		CreatedAt:      time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}, nil
}

func (f *fakeClient) History(ctx context.Context, conversationID int64) (models.Page[models.Message], error) {
	f.LastHistoryID = conversationID
	return f.HistoryRet, f.Err
}
