package grpc

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/services"
)

// ---- fakes ----

type fakeUser struct {
	refreshResp *services.TokenPair
	refreshErr  error

	regUser    *models.User
	regProfile *models.Profile
	regErr     error

	saltResp []byte
	saltErr  error

	loginResp *services.TokenPair
	loginErr  error
}

func (f *fakeUser) RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error) {
	return f.refreshResp, f.refreshErr
}
func (f *fakeUser) Register(ctx context.Context, username string, salt []byte, verifier []byte) (*models.User, *models.Profile, error) {
	return f.regUser, f.regProfile, f.regErr
}
func (f *fakeUser) GetSalt(ctx context.Context, username string) ([]byte, error) {
	return f.saltResp, f.saltErr
}
func (f *fakeUser) Login(ctx context.Context, username string, verifierCandidate []byte) (*services.TokenPair, error) {
	return f.loginResp, f.loginErr
}

type fakeProfiles struct {
	byIdentity map[string]*models.Profile
	identErr   error

	lastTerm  string
	searchOut []*models.Profile
	searchErr error
}

func (f *fakeProfiles) ForIdentity(ctx context.Context, identity string) (*models.Profile, error) {
	if f.identErr != nil {
		return nil, f.identErr
	}
	return f.byIdentity[identity], nil
}
func (f *fakeProfiles) Search(ctx context.Context, term string) ([]*models.Profile, error) {
	f.lastTerm = term
	return f.searchOut, f.searchErr
}

type fakeConversations struct {
	directArgs [2]int64
	groupArgs  struct {
		actor int64
		ids   []int64
		group int64
	}
	startArgs struct {
		creator int64
		name    string
		members []int64
	}
	conv    *models.Conversation
	convErr error

	session *services.SessionContext
	openErr error
}

func (f *fakeConversations) ResolveDirect(ctx context.Context, a, b int64) (*models.Conversation, error) {
	f.directArgs = [2]int64{a, b}
	return f.conv, f.convErr
}
func (f *fakeConversations) ResolveGroupAs(ctx context.Context, actor int64, ids []int64, group int64) (*models.Conversation, error) {
	f.groupArgs.actor, f.groupArgs.ids, f.groupArgs.group = actor, ids, group
	return f.conv, f.convErr
}
func (f *fakeConversations) StartGroup(ctx context.Context, creator int64, name string, members []int64) (*models.Conversation, error) {
	f.startArgs.creator, f.startArgs.name, f.startArgs.members = creator, name, members
	return f.conv, f.convErr
}
func (f *fakeConversations) Open(ctx context.Context, self, conv int64) (*services.SessionContext, error) {
	return f.session, f.openErr
}

type fakeMessages struct {
	appendTo   *int64
	sentWith   *services.SessionContext
	msg        *models.Message
	msgErr     error
	history    []*models.HistoryEntry
	historyErr error
}

func (f *fakeMessages) Append(ctx context.Context, conv, from int64, to *int64, contents string) (*models.Message, error) {
	f.appendTo = to
	return f.msg, f.msgErr
}
func (f *fakeMessages) Send(ctx context.Context, sc *services.SessionContext, contents string) (*models.Message, error) {
	f.sentWith = sc
	return f.msg, f.msgErr
}
func (f *fakeMessages) History(ctx context.Context, conv int64) ([]*models.HistoryEntry, error) {
	return f.history, f.historyErr
}

type fakeIndex struct {
	list []models.ConversationSummary
	err  error
}

func (f *fakeIndex) ListFor(ctx context.Context, userID int64) ([]models.ConversationSummary, error) {
	return f.list, f.err
}

type fixture struct {
	users    *fakeUser
	profiles *fakeProfiles
	convs    *fakeConversations
	msgs     *fakeMessages
	index    *fakeIndex
	server   *GRPCServer
}

var alice = &models.Profile{ID: 1, AuthIdentity: "u-alice", Username: "alice"}

func newFixture() *fixture {
	f := &fixture{
		users:    &fakeUser{},
		profiles: &fakeProfiles{byIdentity: map[string]*models.Profile{"u-alice": alice}},
		convs:    &fakeConversations{},
		msgs:     &fakeMessages{},
		index:    &fakeIndex{},
	}
	f.server = NewGRPCServer(":0", logging.NopLogger{}, Services{
		Users:         f.users,
		Profiles:      f.profiles,
		Conversations: f.convs,
		Messages:      f.msgs,
		Index:         f.index,
	}, "secret", 0)
	return f
}

// authed returns a context as the access token interceptor leaves it.
func authed() context.Context {
	return context.WithValue(context.Background(), UserIDKey, "u-alice")
}
