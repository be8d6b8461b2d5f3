// Package handshakes records handshakes between registered users and answers
// count queries about them.
package handshakes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avoronov/meetpoint/internal/common"
	"github.com/avoronov/meetpoint/internal/server/users"
)

// Registry is the subset of the user identity registry the handshake service
// needs. The interface is owned by the consumer; *users.Service satisfies it.
type Registry interface {
	Register(ctx context.Context, externalID *string, displayName string) (*users.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*users.User, error)
	FindEarliestByDisplayName(ctx context.Context, displayName string) (*users.User, error)
}

type Service struct {
	repo     Repository
	registry Registry
	now      func() time.Time
}

func NewService(repo Repository, registry Registry) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		now:      time.Now,
	}
}

// Record resolves the identity behind a handshake and stores the handshake.
// Resolution never mutates an existing identity record: a known external id
// wins, then the earliest display-name match (covers identities imported
// without an external id), and only when both miss is a fresh record
// registered.
func (s *Service) Record(ctx context.Context, externalID *string, displayName string, location *string) (*Handshake, error) {
	if displayName == "" {
		return nil, fmt.Errorf("%w: display name must not be empty", common.ErrInvalidInput)
	}

	user, err := s.resolveOrRegister(ctx, externalID, displayName)
	if err != nil {
		return nil, err
	}

	handshake := &Handshake{
		UserID:    user.ID,
		Location:  location,
		CreatedAt: s.now().UTC(),
	}

	handshake, err = s.repo.Create(ctx, handshake)
	if err != nil {
		return nil, fmt.Errorf("error creating handshake: %w", err)
	}

	return handshake, nil
}

// LookupUser resolves an identity by external id, falling back to the
// earliest display-name match. It never registers.
func (s *Service) LookupUser(ctx context.Context, externalID *string, displayName string) (*users.User, error) {
	if externalID != nil {
		user, err := s.registry.FindByExternalID(ctx, *externalID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	if displayName != "" {
		user, err := s.registry.FindEarliestByDisplayName(ctx, displayName)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
	}

	return nil, common.ErrNotFound
}

func (s *Service) resolveOrRegister(ctx context.Context, externalID *string, displayName string) (*users.User, error) {
	user, err := s.LookupUser(ctx, externalID, displayName)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	user, err = s.registry.Register(ctx, externalID, displayName)
	if err == nil {
		return user, nil
	}

	// Lost a race with a concurrent registration; the record exists now.
	if errors.Is(err, common.ErrDuplicateExternalID) || errors.Is(err, common.ErrDuplicateIdentityPair) {
		return s.LookupUser(ctx, externalID, displayName)
	}

	return nil, err
}

// Count returns the total number of recorded handshakes.
func (s *Service) Count(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("error counting handshakes: %w", err)
	}
	return count, nil
}

// CountForUser returns the number of handshakes recorded for one user.
func (s *Service) CountForUser(ctx context.Context, userID int64) (int64, error) {
	count, err := s.repo.CountForUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error counting handshakes: %w", err)
	}
	return count, nil
}
