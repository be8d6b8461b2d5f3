package handshakes

import (
	"context"
	"fmt"

	"github.com/avoronov/meetpoint/internal/dbx"
)

// PostgresRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, handshake *Handshake) (*Handshake, error) {
	query := `INSERT INTO handshakes (user_id, location, created_at)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		handshake.UserID, nullableString(handshake.Location), handshake.CreatedAt).Scan(&handshake.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return handshake, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM handshakes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *PostgresRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM handshakes WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}
