package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronov/meetpoint/internal/common"
)

type fakeRepository struct {
	createErr   error
	lookupErr   error
	created     *User
	createCalls int
}

func (f *fakeRepository) Create(ctx context.Context, user *User) (*User, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = 1
	f.created = user
	return user, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return &User{ID: id, DisplayName: "Alice"}, nil
}

func (f *fakeRepository) GetByExternalID(ctx context.Context, externalID string) (*User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return &User{ID: 1, ExternalID: &externalID, DisplayName: "Alice"}, nil
}

func (f *fakeRepository) GetEarliestByDisplayName(ctx context.Context, displayName string) (*User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return &User{ID: 1, DisplayName: displayName}, nil
}

func (f *fakeRepository) GetAllDisplayNames(ctx context.Context) ([]string, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return []string{"Alice", "Bob"}, nil
}

func (f *fakeRepository) Count(ctx context.Context) (int64, error) {
	if f.lookupErr != nil {
		return 0, f.lookupErr
	}
	return 2, nil
}

func TestServiceRegisterEmptyDisplayName(t *testing.T) {
	repo := &fakeRepository{}
	s := NewService(repo)

	_, err := s.Register(context.Background(), nil, "")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Zero(t, repo.createCalls)
}

func TestServiceRegisterStampsCreatedAt(t *testing.T) {
	repo := &fakeRepository{}
	s := NewService(repo)

	stamp := time.Date(2026, 8, 30, 12, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	s.now = func() time.Time { return stamp }

	user, err := s.Register(context.Background(), strPtr("ext-1"), "Alice")
	require.NoError(t, err)
	assert.Equal(t, stamp.UTC(), user.CreatedAt)
	assert.Equal(t, time.UTC, user.CreatedAt.Location())
}

func TestServiceRegisterDuplicatePassthrough(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "duplicate external id", err: common.ErrDuplicateExternalID},
		{name: "duplicate identity pair", err: common.ErrDuplicateIdentityPair},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewService(&fakeRepository{createErr: tt.err})

			_, err := s.Register(context.Background(), strPtr("ext-1"), "Alice")
			// Duplicate errors come back unwrapped so callers can compare.
			assert.Equal(t, tt.err, err)
		})
	}
}

func TestServiceRegisterStorageError(t *testing.T) {
	s := NewService(&fakeRepository{createErr: errors.New("disk on fire")})

	_, err := s.Register(context.Background(), nil, "Alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrDuplicateExternalID)
	assert.NotErrorIs(t, err, common.ErrDuplicateIdentityPair)
}

func TestServiceFindNotFound(t *testing.T) {
	s := NewService(&fakeRepository{lookupErr: common.ErrNotFound})
	ctx := context.Background()

	_, err := s.FindByExternalID(ctx, "ext-1")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.FindByID(ctx, 42)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.FindEarliestByDisplayName(ctx, "Alice")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestServiceFindByExternalID(t *testing.T) {
	s := NewService(&fakeRepository{})

	user, err := s.FindByExternalID(context.Background(), "ext-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
}

func TestServiceCountAndDisplayNames(t *testing.T) {
	s := NewService(&fakeRepository{})
	ctx := context.Background()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	names, err := s.DisplayNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, names)
}
