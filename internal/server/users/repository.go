package users

import (
	"context"

	"github.com/avoronov/meetpoint/internal/common"
)

// Repository abstracts durable storage for identity records. Uniqueness is
// enforced by the storage engine itself so that the check and the insert are
// a single atomic unit; Create reports violations as
// common.ErrDuplicateExternalID or common.ErrDuplicateIdentityPair.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByExternalID(ctx context.Context, externalID string) (*User, error)

	// GetEarliestByDisplayName returns the record with the lowest id among
	// those sharing the given display name.
	GetEarliestByDisplayName(ctx context.Context, displayName string) (*User, error)

	GetAllDisplayNames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

// classifyUnique decides which uniqueness rule a constraint violation
// corresponds to. A present external id that is already stored wins over the
// identity-pair rule, regardless of which index the engine happened to
// report first.
func classifyUnique(ctx context.Context, r Repository, user *User) error {
	if user.ExternalID != nil {
		if _, err := r.GetByExternalID(ctx, *user.ExternalID); err == nil {
			return common.ErrDuplicateExternalID
		}
	}
	return common.ErrDuplicateIdentityPair
}
