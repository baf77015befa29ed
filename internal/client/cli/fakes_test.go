package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

func stubInputs(t *testing.T, username string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return username, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return append([]byte(nil), password...), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

type fakeAuth struct {
	regUser string
	regPass []byte
	regErr  error

	loginUser string
	loginPass []byte
	loginErr  error

	loggedOut bool
	pingErr   error
}

func (f *fakeAuth) Register(_ context.Context, user string, pass []byte) error {
	f.regUser, f.regPass = user, append([]byte(nil), pass...)
	return f.regErr
}
func (f *fakeAuth) Login(_ context.Context, user string, pass []byte) error {
	f.loginUser, f.loginPass = user, append([]byte(nil), pass...)
	return f.loginErr
}
func (f *fakeAuth) Logout(context.Context)          { f.loggedOut = true }
func (f *fakeAuth) Close(ctx context.Context) error { return nil }
func (f *fakeAuth) Ping(ctx context.Context) error  { return f.pingErr }

type fakeChat struct {
	err error

	me      *models.Profile
	search  models.Page[models.Profile]
	list    models.Page[models.Summary]
	history models.Page[models.Message]
	session *models.Session
	current *models.Session

	lastTerm    string
	lastProfile int64
	lastGroup   string
	lastIDs     []int64
	lastOpen    int64
	lastText    string
	resets      int
}

func (f *fakeChat) Me(context.Context) (*models.Profile, error) { return f.me, f.err }
func (f *fakeChat) Search(_ context.Context, term string) (models.Page[models.Profile], error) {
	f.lastTerm = term
	return f.search, f.err
}
func (f *fakeChat) Chat(_ context.Context, profileID int64) (*models.Session, error) {
	f.lastProfile = profileID
	return f.open()
}
func (f *fakeChat) StartGroup(_ context.Context, name string, ids []int64) (*models.Session, error) {
	f.lastGroup, f.lastIDs = name, ids
	return f.open()
}
func (f *fakeChat) Open(_ context.Context, id int64) (*models.Session, error) {
	f.lastOpen = id
	return f.open()
}
func (f *fakeChat) open() (*models.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.current = f.session
	return f.session, nil
}
func (f *fakeChat) List(context.Context) (models.Page[models.Summary], error) { return f.list, f.err }
func (f *fakeChat) History(context.Context) (models.Page[models.Message], error) {
	return f.history, f.err
}
func (f *fakeChat) Send(_ context.Context, text string) (*models.Message, error) {
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return &models.Message{ID: 42, Contents: text}, nil
}
func (f *fakeChat) Current() *models.Session { return f.current }
func (f *fakeChat) Reset()                   { f.resets++; f.current = nil }

func newTestApp(auth *fakeAuth, chat *fakeChat) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &App{
		authService: auth,
		chatService: chat,
		reader:      bufio.NewReader(strings.NewReader("")),
		out:         out,
	}, out
}
