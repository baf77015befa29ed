package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/config"
	"github.com/dmitrijs2005/gophchat/internal/server/events"
	"github.com/dmitrijs2005/gophchat/internal/server/lock"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/conversations"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/groups"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/messages"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// newTxDB returns a database that only serves as a transaction source for
// dbx.WithTx; the fake repositories below ignore the handle they are given.
func newTxDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// fakeStore is an in-memory stand-in for the whole schema. It enforces the
// same uniqueness rules as the SQL constraints.
type fakeStore struct {
	mu sync.Mutex

	users    map[string]*models.User
	tokens   map[string]*models.RefreshToken
	profiles map[int64]*models.Profile
	groups   map[int64]*models.Group
	convs    map[int64]*models.Conversation
	members  map[int64]map[int64]bool
	messages []*models.Message

	seq   int64
	clock time.Time
	// tick is added to clock on every write; zero makes timestamps collide.
	tick time.Duration

	// fail maps a method name to the error it should return.
	fail map[string]error
	// beforeCreateDirect runs before CreateDirect checks uniqueness.
	beforeCreateDirect func()
	calls              map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    map[string]*models.User{},
		tokens:   map[string]*models.RefreshToken{},
		profiles: map[int64]*models.Profile{},
		groups:   map[int64]*models.Group{},
		convs:    map[int64]*models.Conversation{},
		members:  map[int64]map[int64]bool{},
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		tick:     time.Second,
		fail:     map[string]error{},
		calls:    map[string]int{},
	}
}

func (f *fakeStore) next() (int64, time.Time) {
	f.seq++
	f.clock = f.clock.Add(f.tick)
	return f.seq, f.clock
}

// enter locks the store, counts the call and returns an injected error.
func (f *fakeStore) enter(method string) error {
	f.mu.Lock()
	f.calls[method]++
	return f.fail[method]
}

func (f *fakeStore) setFail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = err
}

func (f *fakeStore) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeStore) addProfile(username string) *models.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ts := f.next()
	p := &models.Profile{ID: id, AuthIdentity: fmt.Sprintf("auth-%d", id), Username: username, CreatedAt: ts}
	f.profiles[id] = p
	return p
}

func newUser(login string) *models.User {
	return &models.User{UserName: login, Salt: []byte("salt"), Verifier: []byte("verifier")}
}

func (f *fakeStore) addGroup(name string) *models.Group {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ts := f.next()
	g := &models.Group{ID: id, GroupName: name, CreatedAt: ts}
	f.groups[id] = g
	return g
}

func (f *fakeStore) conversationCount(kind models.ConversationKind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.convs {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

func (f *fakeStore) memberIDs(convID int64) []int64 {
	var ids []int64
	for id := range f.members[convID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// --- users ---

type fakeUsers struct{ *fakeStore }

func (r fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if err := r.enter("Users.Create"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.UserName == u.UserName {
			return nil, fmt.Errorf("db error: %w", common.ErrConflictRetry)
		}
	}
	id, ts := r.next()
	u.ID = fmt.Sprintf("user-%d", id)
	u.CreatedAt = ts
	cp := *u
	r.users[u.ID] = &cp
	return u, nil
}

func (r fakeUsers) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if err := r.enter("Users.GetUserByLogin"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserName == login {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := r.enter("Users.GetByID"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

// --- refresh tokens ---

type fakeTokens struct{ *fakeStore }

func (r fakeTokens) Create(ctx context.Context, userID, token string, validity time.Duration) error {
	if err := r.enter("RefreshTokens.Create"); err != nil {
		r.mu.Unlock()
		return err
	}
	defer r.mu.Unlock()
	r.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r fakeTokens) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if err := r.enter("RefreshTokens.Find"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *t
	return &cp, nil
}

func (r fakeTokens) Delete(ctx context.Context, token string) error {
	if err := r.enter("RefreshTokens.Delete"); err != nil {
		r.mu.Unlock()
		return err
	}
	defer r.mu.Unlock()
	delete(r.tokens, token)
	return nil
}

// --- profiles ---

type fakeProfiles struct{ *fakeStore }

func (r fakeProfiles) CreateIfAbsent(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	if err := r.enter("Profiles.CreateIfAbsent"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	for _, existing := range r.profiles {
		if existing.AuthIdentity == p.AuthIdentity {
			cp := *existing
			return &cp, nil
		}
	}
	id, ts := r.next()
	cp := *p
	cp.ID, cp.CreatedAt = id, ts
	r.profiles[id] = &cp
	out := cp
	return &out, nil
}

func (r fakeProfiles) GetByAuthIdentity(ctx context.Context, identity string) (*models.Profile, error) {
	if err := r.enter("Profiles.GetByAuthIdentity"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.AuthIdentity == identity {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r fakeProfiles) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	if err := r.enter("Profiles.GetByID"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakeProfiles) Search(ctx context.Context, term string, limit int) ([]*models.Profile, error) {
	if err := r.enter("Profiles.Search"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	var out []*models.Profile
	for _, p := range r.profiles {
		if strings.Contains(strings.ToLower(p.Username), strings.ToLower(term)) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- groups ---

type fakeGroups struct{ *fakeStore }

func (r fakeGroups) Create(ctx context.Context, name string) (*models.Group, error) {
	if err := r.enter("Groups.Create"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	id, ts := r.next()
	g := &models.Group{ID: id, GroupName: name, CreatedAt: ts}
	r.groups[id] = g
	cp := *g
	return &cp, nil
}

func (r fakeGroups) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	if err := r.enter("Groups.GetByID"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	g, ok := r.groups[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *g
	return &cp, nil
}

// --- conversations ---

type fakeConversations struct{ *fakeStore }

func (r fakeConversations) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	if err := r.enter("Conversations.GetByID"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeConversations) GetForUpdate(ctx context.Context, id int64) (*models.Conversation, error) {
	if err := r.enter("Conversations.GetForUpdate"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	c, ok := r.convs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeConversations) FindDirect(ctx context.Context, a, b int64) (*models.Conversation, error) {
	if err := r.enter("Conversations.FindDirect"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	var found *models.Conversation
	for id, c := range r.convs {
		m := r.members[id]
		if c.Kind != models.KindDirect || len(m) != 2 || !m[a] || !m[b] {
			continue
		}
		if found == nil || c.ID < found.ID {
			found = c
		}
	}
	if found == nil {
		return nil, common.ErrorNotFound
	}
	cp := *found
	return &cp, nil
}

func (r fakeConversations) CreateDirect(ctx context.Context, a, b int64, name string) (*models.Conversation, error) {
	r.mu.Lock()
	hook := r.beforeCreateDirect
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	if err := r.enter("Conversations.CreateDirect"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	key := models.DirectKey(a, b)
	for _, c := range r.convs {
		if c.DirectKey == key {
			return nil, fmt.Errorf("db error: %w", common.ErrConflictRetry)
		}
	}
	id, ts := r.next()
	c := &models.Conversation{ID: id, Kind: models.KindDirect, Name: name, DirectKey: key, CreatedAt: ts}
	r.convs[id] = c
	r.members[id] = map[int64]bool{}
	cp := *c
	return &cp, nil
}

func (r fakeConversations) FindByGroupRef(ctx context.Context, groupID int64) (*models.Conversation, error) {
	if err := r.enter("Conversations.FindByGroupRef"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.GroupRef != nil && *c.GroupRef == groupID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r fakeConversations) CreateForGroup(ctx context.Context, groupID int64, name string) (*models.Conversation, error) {
	if err := r.enter("Conversations.CreateForGroup"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	for _, c := range r.convs {
		if c.GroupRef != nil && *c.GroupRef == groupID {
			return nil, common.ErrConflictRetry
		}
	}
	id, ts := r.next()
	ref := groupID
	c := &models.Conversation{ID: id, Kind: models.KindGroup, Name: name, GroupRef: &ref, CreatedAt: ts}
	r.convs[id] = c
	r.members[id] = map[int64]bool{}
	cp := *c
	return &cp, nil
}

func (r fakeConversations) AddParticipant(ctx context.Context, convID, participantID int64) (bool, error) {
	if err := r.enter("Conversations.AddParticipant"); err != nil {
		r.mu.Unlock()
		return false, err
	}
	defer r.mu.Unlock()
	m, ok := r.members[convID]
	if !ok {
		return false, fmt.Errorf("db error: fk violation")
	}
	if m[participantID] {
		return false, nil
	}
	m[participantID] = true
	return true, nil
}

func (r fakeConversations) Participants(ctx context.Context, convID int64) ([]int64, error) {
	if err := r.enter("Conversations.Participants"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	return r.memberIDs(convID), nil
}

func (r fakeConversations) IsParticipant(ctx context.Context, convID, participantID int64) (bool, error) {
	if err := r.enter("Conversations.IsParticipant"); err != nil {
		r.mu.Unlock()
		return false, err
	}
	defer r.mu.Unlock()
	return r.members[convID][participantID], nil
}

func (r fakeConversations) ListForParticipant(ctx context.Context, participantID int64) ([]*models.Conversation, error) {
	if err := r.enter("Conversations.ListForParticipant"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	var out []*models.Conversation
	for id, c := range r.convs {
		if r.members[id][participantID] {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// --- messages ---

type fakeMessages struct{ *fakeStore }

func (r fakeMessages) Append(ctx context.Context, m *models.Message) (*models.Message, error) {
	if err := r.enter("Messages.Append"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	m.ID, m.CreatedAt = r.next()
	cp := *m
	r.messages = append(r.messages, &cp)
	return m, nil
}

func (r fakeMessages) History(ctx context.Context, convID int64) ([]*models.HistoryEntry, error) {
	if err := r.enter("Messages.History"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	var out []*models.HistoryEntry
	for _, m := range r.messages {
		if m.ConversationID != convID {
			continue
		}
		e := &models.HistoryEntry{Message: *m}
		if p, ok := r.profiles[m.FromID]; ok {
			e.SenderName = p.Username
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r fakeMessages) LastMessageAt(ctx context.Context, convID int64) (*time.Time, error) {
	if err := r.enter("Messages.LastMessageAt"); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	defer r.mu.Unlock()
	var last *time.Time
	for _, m := range r.messages {
		if m.ConversationID == convID && (last == nil || m.CreatedAt.After(*last)) {
			ts := m.CreatedAt
			last = &ts
		}
	}
	return last, nil
}

// --- manager ---

type fakeRepoManager struct{ store *fakeStore }

func (m fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m fakeRepoManager) Users(dbx.DBTX) users.Repository           { return fakeUsers{m.store} }
func (m fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return fakeTokens{m.store}
}
func (m fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository { return fakeProfiles{m.store} }
func (m fakeRepoManager) Groups(dbx.DBTX) groups.Repository     { return fakeGroups{m.store} }
func (m fakeRepoManager) Conversations(dbx.DBTX) conversations.Repository {
	return fakeConversations{m.store}
}
func (m fakeRepoManager) Messages(dbx.DBTX) messages.Repository { return fakeMessages{m.store} }

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) Publish(ctx context.Context, e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []events.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.Kind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

// engine wires every service over one fake store.
type engine struct {
	store    *fakeStore
	db       *sql.DB
	rec      *recorder
	users    *UserService
	profiles *ProfileService
	convs    *ConversationService
	msgs     *MessageService
	index    *IndexService
}

func newEngine(t *testing.T) *engine {
	t.Helper()
	store := newFakeStore()
	db := newTxDB(t)
	rm := fakeRepoManager{store: store}
	rec := &recorder{}
	log := logging.NopLogger{}
	cfg := &config.Config{
		SecretKey:                    "k",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
	}
	return &engine{
		store:    store,
		db:       db,
		rec:      rec,
		users:    NewUserService(db, rm, cfg),
		profiles: NewProfileService(db, rm, log),
		convs:    NewConversationService(db, rm, lock.NewLocalLocker(), rec, log),
		msgs:     NewMessageService(db, rm, rec, log),
		index:    NewIndexService(db, rm, nil, time.Minute, log),
	}
}
