package messages

import (
	"context"
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

func (r *SQLiteRepository) Upsert(ctx context.Context, items []models.Message) error {
	query := `
		INSERT INTO messages (id, conversation_id, from_id, to_id, sender_name, contents, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sender_name = excluded.sender_name,
			contents = excluded.contents`
	for _, m := range items {
		if _, err := r.db.ExecContext(ctx, query, m.ID, m.ConversationID, m.FromID, m.ToID, m.SenderName, m.Contents, m.CreatedAt.UnixNano()); err != nil {
			return fmt.Errorf("failed to upsert message %d: %w", m.ID, err)
		}
	}
	return nil
}

// ListByConversation returns cached messages oldest first, ties broken by id.
func (r *SQLiteRepository) ListByConversation(ctx context.Context, conversationID int64) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, from_id, to_id, sender_name, contents, created_at
		FROM messages WHERE conversation_id = ?
		ORDER BY created_at, id`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to select messages: %w", err)
	}
	defer rows.Close()

	var result []models.Message
	for rows.Next() {
		var (
			m       models.Message
			created int64
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.FromID, &m.ToID, &m.SenderName, &m.Contents, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = time.Unix(0, created).UTC()
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}
	return nil
}
