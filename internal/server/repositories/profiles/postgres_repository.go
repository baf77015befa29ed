package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/dbx"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

const profileColumns = `id, auth_identity, username, bio, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	query :=
		`INSERT INTO profiles (auth_identity, username, bio)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (auth_identity) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, p.AuthIdentity, p.Username, p.Bio); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}

	return r.GetByAuthIdentity(ctx, p.AuthIdentity)
}

func (r *PostgresRepository) GetByAuthIdentity(ctx context.Context, identity string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE auth_identity = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, identity))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) Search(ctx context.Context, term string, limit int) ([]*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles
		 WHERE username ILIKE $1 ESCAPE '\'
		 ORDER BY username, id
		 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	defer rows.Close()

	var result []*models.Profile
	for rows.Next() {
		p := &models.Profile{}
		if err := rows.Scan(&p.ID, &p.AuthIdentity, &p.Username, &p.Bio, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return result, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Profile, error) {
	p := &models.Profile{}
	if err := row.Scan(&p.ID, &p.AuthIdentity, &p.Username, &p.Bio, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", dbx.Classify(err))
	}
	return p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
