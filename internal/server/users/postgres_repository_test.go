package users

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/meetpoint/internal/common"
)

func setupMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgresRepository(db), mock
}

func TestPostgresRepositoryCreate(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sql.NullString{String: "ext-1", Valid: true}, "Alice", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	user, err := repo.Create(context.Background(), newUser(strPtr("ext-1"), "Alice"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCreateNullExternalID(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sql.NullString{}, "Alice", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	_, err := repo.Create(context.Background(), newUser(nil, "Alice"))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCreateUniqueViolation(t *testing.T) {

	tests := []struct {
		name    string
		lookup  func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "external id taken",
			lookup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "external_id", "display_name", "created_at"}).
					AddRow(int64(1), "ext-1", "Alice", time.Now())
				mock.ExpectQuery(`SELECT id, external_id, display_name, created_at FROM users`).
					WithArgs("ext-1").
					WillReturnRows(rows)
			},
			wantErr: common.ErrDuplicateExternalID,
		},
		{
			name: "pair taken",
			lookup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, external_id, display_name, created_at FROM users`).
					WithArgs("ext-1").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: common.ErrDuplicateIdentityPair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := setupMock(t)

			mock.ExpectQuery(`INSERT INTO users`).
				WithArgs(sql.NullString{String: "ext-1", Valid: true}, "Alice", sqlmock.AnyArg()).
				WillReturnError(&pgconn.PgError{Code: uniqueViolation})

			tt.lookup(mock)

			_, err := repo.Create(context.Background(), newUser(strPtr("ext-1"), "Alice"))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresRepositoryGetByID(t *testing.T) {
	repo, mock := setupMock(t)

	created := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "external_id", "display_name", "created_at"}).
		AddRow(int64(3), nil, "Alice", created)

	mock.ExpectQuery(`SELECT id, external_id, display_name, created_at FROM users`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	user, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Nil(t, user.ExternalID)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(`SELECT id, external_id, display_name, created_at FROM users`).
		WithArgs(int64(404)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryCount(t *testing.T) {
	repo, mock := setupMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepositoryGetAllDisplayNames(t *testing.T) {
	repo, mock := setupMock(t)

	rows := sqlmock.NewRows([]string{"display_name"}).AddRow("Alice").AddRow("Bob")
	mock.ExpectQuery(`SELECT display_name FROM users`).WillReturnRows(rows)

	names, err := repo.GetAllDisplayNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}
