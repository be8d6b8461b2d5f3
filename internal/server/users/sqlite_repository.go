package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/avoronov/meetpoint/internal/common"
	"github.com/avoronov/meetpoint/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

var _ Repository = (*SQLiteRepository)(nil)

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (*User, error) {
	query := `INSERT INTO users (external_id, display_name, created_at)
	          VALUES (?, ?, ?)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		nullableString(user.ExternalID), user.DisplayName, user.CreatedAt).Scan(&user.ID)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, classifyUnique(ctx, r, user)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `SELECT id, external_id, display_name, created_at FROM users
	          WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) GetByExternalID(ctx context.Context, externalID string) (*User, error) {
	// NULL external ids never compare equal, so absent identities are
	// unreachable through this lookup.
	query := `SELECT id, external_id, display_name, created_at FROM users
	          WHERE external_id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, externalID))
}

func (r *SQLiteRepository) GetEarliestByDisplayName(ctx context.Context, displayName string) (*User, error) {
	query := `SELECT id, external_id, display_name, created_at FROM users
	          WHERE display_name = ?
	          ORDER BY id
	          LIMIT 1`
	return scanUser(r.db.QueryRowContext(ctx, query, displayName))
}

func (r *SQLiteRepository) GetAllDisplayNames(ctx context.Context) ([]string, error) {
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

func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// scanUser reads a full user row, translating sql.ErrNoRows into
// common.ErrNotFound and a NULL external_id into a nil pointer.
func scanUser(row *sql.Row) (*User, error) {
	user := &User{}
	var externalID sql.NullString

	err := row.Scan(&user.ID, &externalID, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if externalID.Valid {
		user.ExternalID = &externalID.String
	}
	return user, nil
}

func nullableString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	switch serr.Code() {
	case sqlite3.SQLITE_CONSTRAINT,
		sqlite3.SQLITE_CONSTRAINT_UNIQUE,
		sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return false
}
