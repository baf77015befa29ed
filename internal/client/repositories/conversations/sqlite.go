package conversations

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ReplaceAll should run inside a transaction so readers never see a
// half-written list.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Summary) error {
	if err := r.Clear(ctx); err != nil {
		return err
	}

	query := `INSERT INTO conversations (id, position, kind, name, group_id, display_name, created_at, last_message_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, s := range items {
		var last sql.NullInt64
		if s.LastMessageAt != nil {
			last = sql.NullInt64{Int64: s.LastMessageAt.UnixNano(), Valid: true}
		}
		c := s.Conversation
		if _, err := r.db.ExecContext(ctx, query, c.ID, i, string(c.Kind), c.Name, c.GroupID, s.DisplayName, c.CreatedAt.UnixNano(), last); err != nil {
			return fmt.Errorf("failed to insert conversation %d: %w", c.ID, err)
		}
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, kind, name, group_id, display_name, created_at, last_message_at
		FROM conversations ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select conversations: %w", err)
	}
	defer rows.Close()

	var result []models.Summary
	for rows.Next() {
		var (
			s       models.Summary
			kind    string
			created int64
			last    sql.NullInt64
		)
		if err := rows.Scan(&s.Conversation.ID, &kind, &s.Conversation.Name, &s.Conversation.GroupID, &s.DisplayName, &created, &last); err != nil {
			return nil, err
		}
		s.Conversation.Kind = models.ConversationKind(kind)
		s.Conversation.CreatedAt = time.Unix(0, created).UTC()
		if last.Valid {
			t := time.Unix(0, last.Int64).UTC()
			s.LastMessageAt = &t
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM conversations`); err != nil {
		return fmt.Errorf("failed to clear conversations: %w", err)
	}
	return nil
}
