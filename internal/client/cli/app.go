package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/config"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories"
	"github.com/dmitrijs2005/gophchat/internal/client/services"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	chatService services.ChatService
	store       *repositories.Store
	userName    string
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	var (
		store *repositories.Store
		cache services.Cache
	)
	if c.CacheDSN != "" {
		s, err := repositories.Open(ctx, c.CacheDSN)
		if err != nil {
			log.Printf("error initializing local cache: %s", err.Error())
			return nil, err
		}
		store, cache = s, s
	}

	apiClient, err := client.NewGophChatClient(c.ServerEndpointAddr)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, err
	}

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient, cache),
		chatService: services.NewChatService(apiClient, cache),
		store:       store,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mode != mode {
		a.mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)
	if a.store != nil {
		defer a.store.Close()
	}
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

// withTimeout bounds a single server call by the configured request timeout.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) getStatus() string {
	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if session := a.chatService.Current(); session != nil {
		s += fmt.Sprintf("#%d ", session.ConversationID)
	}
	if mode := a.Mode(); mode != "" {
		s += string(mode)
	}
	if s = strings.TrimSpace(s); s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root greets the user, offers a login and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to GophChat CLI (type 'help' for commands)")

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}
