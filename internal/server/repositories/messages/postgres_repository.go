package messages

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, m *models.Message) (*models.Message, error) {
	query :=
		`INSERT INTO messages (conversation_id, from_id, to_id, contents)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`

	var to sql.NullInt64
	if m.ToID != nil {
		to = sql.NullInt64{Int64: *m.ToID, Valid: true}
	}

	if err := r.db.QueryRowContext(ctx, query, m.ConversationID, m.FromID, to, m.Contents).Scan(&m.ID, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return m, nil
}

func (r *PostgresRepository) History(ctx context.Context, conversationID int64) ([]*models.HistoryEntry, error) {
	query :=
		`SELECT m.id, m.conversation_id, m.from_id, m.to_id, m.contents, m.created_at, p.username
		 FROM messages m
		 LEFT JOIN profiles p ON p.id = m.from_id
		 WHERE m.conversation_id = $1
		 ORDER BY m.created_at, m.id`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.HistoryEntry
	for rows.Next() {
		var (
			e      models.HistoryEntry
			to     sql.NullInt64
			sender sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.ConversationID, &e.FromID, &to, &e.Contents, &e.CreatedAt, &sender); err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
		}
		if to.Valid {
			v := to.Int64
			e.ToID = &v
		}
		e.SenderName = sender.String
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return result, nil
}

func (r *PostgresRepository) LastMessageAt(ctx context.Context, conversationID int64) (*time.Time, error) {
	query := `SELECT max(created_at) FROM messages WHERE conversation_id = $1`

	var last sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, conversationID).Scan(&last); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	if !last.Valid {
		return nil, nil
	}
	return &last.Time, nil
}
