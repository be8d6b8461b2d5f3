package handshakes

import "time"

// Handshake is a single recorded handshake. Location is the place the
// handshake happened in, when the platform reported one.
type Handshake struct {
	ID        int64
	UserID    int64
	Location  *string
	CreatedAt time.Time
}
