package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/avoronov/meetpoint/internal/server/handshakes"
	"github.com/avoronov/meetpoint/internal/server/migrations"
	"github.com/avoronov/meetpoint/internal/server/users"
)

type PostgresRepositoryManager struct {
	db         *sql.DB
	users      users.Repository
	handshakes handshakes.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Handshakes() handshakes.Repository {
	return m.handshakes
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	dir, err := fs.Sub(migrations.Migrations, "postgres")
	if err != nil {
		return err
	}
	goose.SetBaseFS(dir)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.UpContext(ctx, m.db, ".")
}

// NewPostgresRepositoryManager connects to PostgreSQL through the pgx stdlib
// driver, applies pending migrations and builds the repositories.
func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:         db,
		users:      users.NewPostgresRepository(db),
		handshakes: handshakes.NewPostgresRepository(db),
	}

	if err := m.RunMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
