// Package server wires the chat engine together: storage, locks, the chat
// list cache, the event bus and the gRPC endpoint. It also handles graceful
// shutdown on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/dmitrijs2005/gophchat/internal/server/cache"
	"github.com/dmitrijs2005/gophchat/internal/server/config"
	"github.com/dmitrijs2005/gophchat/internal/server/events"
	"github.com/dmitrijs2005/gophchat/internal/server/lock"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophchat/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/gophchat/internal/server/grpc"
)

const lockTTL = 5 * time.Second

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	services gs.Services
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	var (
		locker lock.Locker = lock.NewLocalLocker()
		chats  cache.Cache = cache.NewMemoryCache()
	)
	if c.RedisURL != "" {
		client, err := cache.NewRedisClient(ctx, c.RedisURL)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		app.redis = client
		locker = lock.NewRedisLocker(client, lockTTL)
		chats = cache.NewRedisCache(client, "gophchat:")
		logger.Info(ctx, "using redis for locks and chat list cache")
	}

	app.services, _ = buildServices(db, rm, c, locker, chats, logger)
	return app, nil
}

// buildServices creates the engine services and subscribes the chat list
// to engine events.
func buildServices(db *sql.DB, rm repomanager.RepositoryManager, c *config.Config, locker lock.Locker, chats cache.Cache, logger logging.Logger) (gs.Services, *events.Bus) {
	bus := events.NewBus()
	index := services.NewIndexService(db, rm, chats, c.IndexCacheTTL, logger)
	bus.Subscribe(index.HandleEvent)

	return gs.Services{
		Users:         services.NewUserService(db, rm, c),
		Profiles:      services.NewProfileService(db, rm, logger),
		Conversations: services.NewConversationService(db, rm, locker, bus, logger),
		Messages:      services.NewMessageService(db, rm, bus, logger),
		Index:         index,
	}, bus
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.services, app.config.SecretKey, app.config.RequestTimeout)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(context.Background())
}

func (app *App) close(ctx context.Context) {
	closers := []io.Closer{app.db}
	if app.redis != nil {
		closers = append(closers, app.redis)
	}
	for _, c := range closers {
		if err := c.Close(); err != nil {
			app.logger.Warn(ctx, "close failed", "error", err)
		}
	}
}
