// Package repositories wires the CLI's local SQLite cache: it opens the
// database, applies the embedded goose migrations and exposes a Store that
// services use to keep the last seen conversations and messages.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/migrations"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories/conversations"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories/messages"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// ownerKey names the account whose data is cached.
const ownerKey = "owner"

// Store is the SQLite-backed local cache.
type Store struct {
	db *sql.DB
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the cache database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cache migrations: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Owner returns the account the cache belongs to, or "" when empty.
func (s *Store) Owner(ctx context.Context) (string, error) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, ownerKey)
	return string(v), err
}

// Claim makes owner the cache's account. Data cached for a different
// account is dropped first.
func (s *Store) Claim(ctx context.Context, owner string) error {
	current, err := s.Owner(ctx)
	if err != nil {
		return err
	}
	if current == owner {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := clearAll(ctx, tx); err != nil {
			return err
		}
		return metadata.NewSQLiteRepository(tx).Set(ctx, ownerKey, []byte(owner))
	})
}

func (s *Store) SaveConversations(ctx context.Context, items []models.Summary) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return conversations.NewSQLiteRepository(tx).ReplaceAll(ctx, items)
	})
}

func (s *Store) Conversations(ctx context.Context) ([]models.Summary, error) {
	return conversations.NewSQLiteRepository(s.db).List(ctx)
}

func (s *Store) SaveMessages(ctx context.Context, items []models.Message) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return messages.NewSQLiteRepository(tx).Upsert(ctx, items)
	})
}

func (s *Store) Messages(ctx context.Context, conversationID int64) ([]models.Message, error) {
	return messages.NewSQLiteRepository(s.db).ListByConversation(ctx, conversationID)
}

// Clear wipes every cached row including the owner.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return clearAll(ctx, tx)
	})
}

func clearAll(ctx context.Context, tx dbx.DBTX) error {
	if err := messages.NewSQLiteRepository(tx).Clear(ctx); err != nil {
		return err
	}
	if err := conversations.NewSQLiteRepository(tx).Clear(ctx); err != nil {
		return err
	}
	return metadata.NewSQLiteRepository(tx).Clear(ctx)
}
