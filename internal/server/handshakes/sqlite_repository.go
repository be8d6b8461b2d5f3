package handshakes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/avoronov/meetpoint/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, handshake *Handshake) (*Handshake, error) {
	query := `INSERT INTO handshakes (user_id, location, created_at)
	          VALUES (?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		handshake.UserID, nullableString(handshake.Location), handshake.CreatedAt).Scan(&handshake.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return handshake, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM handshakes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepository) CountForUser(ctx context.Context, userID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM handshakes WHERE user_id = ?`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
