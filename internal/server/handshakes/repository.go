package handshakes

import "context"

// Repository abstracts durable storage for handshake records.
type Repository interface {
	Create(ctx context.Context, handshake *Handshake) (*Handshake, error)
	Count(ctx context.Context) (int64, error)
	CountForUser(ctx context.Context, userID int64) (int64, error)
}
