package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avoronov/meetpoint/internal/dbx"
)

// uniqueViolation is the PostgreSQL class 23 code for unique_violation.
const uniqueViolation = "23505"

// PostgresRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (external_id, display_name, created_at)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		nullableString(user.ExternalID), user.DisplayName, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, classifyUnique(ctx, r, user)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, external_id, display_name, created_at FROM users
	          WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByExternalID(ctx context.Context, externalID string) (*User, error) {
	query := `SELECT id, external_id, display_name, created_at FROM users
	          WHERE external_id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, externalID))
}

func (r *PostgresRepository) GetEarliestByDisplayName(ctx context.Context, displayName string) (*User, error) {
	query := `SELECT id, external_id, display_name, created_at FROM users
	          WHERE display_name = $1
	          ORDER BY id
	          LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, query, displayName))
}

func (r *PostgresRepository) GetAllDisplayNames(ctx context.Context) ([]string, error) {
	query := `SELECT display_name FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
