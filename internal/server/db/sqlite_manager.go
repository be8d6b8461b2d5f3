package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/avoronov/meetpoint/internal/server/handshakes"
	"github.com/avoronov/meetpoint/internal/server/migrations"
	"github.com/avoronov/meetpoint/internal/server/users"
)

type SQLiteRepositoryManager struct {
	db         *sql.DB
	users      users.Repository
	handshakes handshakes.Repository
}

func (m *SQLiteRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLiteRepositoryManager) Handshakes() handshakes.Repository {
	return m.handshakes
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	dir, err := fs.Sub(migrations.Migrations, "sqlite")
	if err != nil {
		return err
	}
	goose.SetBaseFS(dir)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

// NewSQLiteRepositoryManager opens (creating if necessary) the SQLite
// database, applies pending migrations and builds the repositories.
func NewSQLiteRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// SQLite allows a single writer at a time; one pooled connection
	// serializes inserts so racing registrations resolve inside the engine.
	db.SetMaxOpenConns(1)

	m := &SQLiteRepositoryManager{
		db:         db,
		users:      users.NewSQLiteRepository(db),
		handshakes: handshakes.NewSQLiteRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
