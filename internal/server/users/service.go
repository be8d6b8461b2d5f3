// Package users implements the user identity registry: durable storage of
// identity records with registry-assigned surrogate ids and uniqueness
// enforcement over the external platform identity.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avoronov/meetpoint/internal/common"
)

// Service exposes the registry operations. Records are created once and
// never mutated; no update or delete operation exists.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Register validates the display name, stamps the creation time with the
// registry clock and persists a new record. The uniqueness checks happen
// atomically with the insert: concurrent calls racing on the same external
// id produce exactly one success.
func (s *Service) Register(ctx context.Context, externalID *string, displayName string) (*User, error) {
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name must not be empty", common.ErrInvalidInput)
	}

	user := &User{
		ExternalID:  externalID,
		DisplayName: displayName,
		CreatedAt:   s.now().UTC(),
	}

	user, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateExternalID) || errors.Is(err, common.ErrDuplicateIdentityPair) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// FindByExternalID performs an exact-match lookup. Records without an
// external id are never matched.
func (s *Service) FindByExternalID(ctx context.Context, externalID string) (*User, error) {
	user, err := s.repo.GetByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// FindByID performs an exact-match lookup by surrogate key.
func (s *Service) FindByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// FindEarliestByDisplayName returns the oldest record carrying the given
// display name. Used by handshake resolution for identities imported without
// an external id.
func (s *Service) FindEarliestByDisplayName(ctx context.Context, displayName string) (*User, error) {
	user, err := s.repo.GetEarliestByDisplayName(ctx, displayName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return user, nil
}

// Count returns the number of registered records.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting users: %w", err)
	}
	return count, nil
}

// DisplayNames lists the display names of all records in registration order.
func (s *Service) DisplayNames(ctx context.Context) ([]string, error) {
	names, err := s.repo.GetAllDisplayNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing display names: %w", err)
	}
	return names, nil
}
