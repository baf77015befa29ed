package groups

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, name string) (*models.Group, error) {
	query :=
		`INSERT INTO groups (group_name) VALUES ($1)
		 RETURNING id, created_at`

	g := &models.Group{GroupName: name}
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&g.ID, &g.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return g, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	query := `SELECT id, group_name, created_at FROM groups WHERE id = $1`

	g := &models.Group{}
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.GroupName, &g.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return g, nil
}
