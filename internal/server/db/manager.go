// Package db wires database connections, migrations and repositories for
// the supported storage backends.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/avoronov/meetpoint/internal/server/handshakes"
	"github.com/avoronov/meetpoint/internal/server/users"
)

// RepositoryManager owns a database connection pool and the repositories
// built on top of it. Migrations run before the manager is handed out, so
// the schema exists before any repository executes.
type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Handshakes() handshakes.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}

// NewRepositoryManager selects the backend by DSN scheme: postgres:// (or
// postgresql://) for PostgreSQL, anything else is treated as a SQLite DSN.
func NewRepositoryManager(dsn string) (RepositoryManager, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresRepositoryManager(dsn)
	}
	return NewSQLiteRepositoryManager(dsn)
}

// SQLiteFilePath extracts the database file path from a SQLite DSN of the
// form "file:path?options" or a bare path. It fails for in-memory databases
// and non-SQLite DSNs, which have no file to work with.
func SQLiteFilePath(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "", fmt.Errorf("dsn %q is not a SQLite database", dsn)
	}

	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return "", fmt.Errorf("dsn %q is not file-backed", dsn)
	}
	return path, nil
}
