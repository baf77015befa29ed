package conversations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

const conversationColumns = `c.id, c.kind, c.conversation_name, c.group_ref, c.direct_key, c.created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConversation(row scanner) (*models.Conversation, error) {
	var (
		c         models.Conversation
		kind      string
		name      sql.NullString
		groupRef  sql.NullInt64
		directKey sql.NullString
	)
	if err := row.Scan(&c.ID, &kind, &name, &groupRef, &directKey, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.Kind = models.ConversationKind(kind)
	c.Name = name.String
	c.DirectKey = directKey.String
	if groupRef.Valid {
		g := groupRef.Int64
		c.GroupRef = &g
	}
	return &c, nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*models.Conversation, error) {
	c, err := scanConversation(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return c, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations c WHERE c.id = $1`
	return r.one(ctx, query, id)
}

func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations c WHERE c.id = $1 FOR NO KEY UPDATE`
	return r.one(ctx, query, id)
}

func (r *PostgresRepository) FindDirect(ctx context.Context, a, b int64) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + `
		FROM conversations c
		JOIN conversation_participants pa ON pa.conversation_id = c.id AND pa.participant_id = $1
		JOIN conversation_participants pb ON pb.conversation_id = c.id AND pb.participant_id = $2
		WHERE c.kind = 'direct'
		  AND (SELECT count(*) FROM conversation_participants p WHERE p.conversation_id = c.id) = 2
		ORDER BY c.id
		LIMIT 1`
	return r.one(ctx, query, a, b)
}

func (r *PostgresRepository) CreateDirect(ctx context.Context, a, b int64, name string) (*models.Conversation, error) {
	query :=
		`INSERT INTO conversations (kind, conversation_name, direct_key)
		 VALUES ('direct', $1, $2)
		 RETURNING id, created_at`

	c := &models.Conversation{Kind: models.KindDirect, Name: name, DirectKey: models.DirectKey(a, b)}
	if err := r.db.QueryRowContext(ctx, query, name, c.DirectKey).Scan(&c.ID, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return c, nil
}

func (r *PostgresRepository) FindByGroupRef(ctx context.Context, groupID int64) (*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations c WHERE c.group_ref = $1`
	return r.one(ctx, query, groupID)
}

func (r *PostgresRepository) CreateForGroup(ctx context.Context, groupID int64, name string) (*models.Conversation, error) {
	query :=
		`INSERT INTO conversations (kind, conversation_name, group_ref)
		 VALUES ('group', $1, $2)
		 ON CONFLICT (group_ref) DO NOTHING
		 RETURNING id, created_at`

	ref := groupID
	c := &models.Conversation{Kind: models.KindGroup, Name: name, GroupRef: &ref}
	if err := r.db.QueryRowContext(ctx, query, name, groupID).Scan(&c.ID, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrConflictRetry
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return c, nil
}

func (r *PostgresRepository) AddParticipant(ctx context.Context, conversationID, participantID int64) (bool, error) {
	query :=
		`INSERT INTO conversation_participants (conversation_id, participant_id)
		 VALUES ($1, $2)
		 ON CONFLICT (conversation_id, participant_id) DO NOTHING`

	res, err := r.db.ExecContext(ctx, query, conversationID, participantID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) Participants(ctx context.Context, conversationID int64) ([]int64, error) {
	query :=
		`SELECT participant_id FROM conversation_participants
		 WHERE conversation_id = $1
		 ORDER BY participant_id`

	rows, err := r.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return ids, nil
}

func (r *PostgresRepository) IsParticipant(ctx context.Context, conversationID, participantID int64) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM conversation_participants
		   WHERE conversation_id = $1 AND participant_id = $2
		 )`

	var ok bool
	if err := r.db.QueryRowContext(ctx, query, conversationID, participantID).Scan(&ok); err != nil {
		return false, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return ok, nil
}

func (r *PostgresRepository) ListForParticipant(ctx context.Context, participantID int64) ([]*models.Conversation, error) {
	query := `SELECT ` + conversationColumns + `
		FROM conversations c
		JOIN conversation_participants p ON p.conversation_id = c.id
		WHERE p.participant_id = $1
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := r.db.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return result, nil
}
