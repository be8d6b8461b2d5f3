package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/meetpoint/internal/server/users"
)

func TestNewRepositoryManagerSQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "meetpoint.db")

	m, err := NewRepositoryManager(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	// Migrations ran in the constructor; both tables answer queries.
	ctx := context.Background()

	count, err := m.Users().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = m.Handshakes().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSQLiteManagerRoundTrip(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "meetpoint.db")

	m, err := NewRepositoryManager(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	ctx := context.Background()
	externalID := "ext-1"

	created, err := m.Users().Create(ctx, &users.User{
		ExternalID:  &externalID,
		DisplayName: "Alice",
		CreatedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	found, err := m.Users().GetByExternalID(ctx, externalID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestSQLiteManagerMigrationsIdempotent(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "meetpoint.db")

	m, err := NewRepositoryManager(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })

	// Applying again is a no-op.
	require.NoError(t, m.RunMigrations(context.Background()))
}

func TestSQLiteFilePath(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "file prefix with options", dsn: "file:meetpoint.db?_pragma=busy_timeout(5000)", want: "meetpoint.db"},
		{name: "bare path", dsn: "meetpoint.db", want: "meetpoint.db"},
		{name: "in-memory", dsn: "file::memory:?cache=shared", wantErr: true},
		{name: "postgres", dsn: "postgres://localhost/db", wantErr: true},
		{name: "postgresql", dsn: "postgresql://localhost/db", wantErr: true},
		{name: "empty", dsn: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SQLiteFilePath(tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
