package httpapi

import (
	"time"

	"github.com/avoronov/meetpoint/internal/server/handshakes"
	"github.com/avoronov/meetpoint/internal/server/users"
)

// RegisterUserRequest registers a new identity record. ExternalID may be
// omitted or null; an empty string is a present (and colliding) value.
type RegisterUserRequest struct {
	ExternalID  *string `json:"external_id"`
	DisplayName string  `json:"display_name" binding:"required"`
}

type UserResponse struct {
	ID          int64     `json:"id"`
	ExternalID  *string   `json:"external_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

func newUserResponse(u *users.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		ExternalID:  u.ExternalID,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// HandshakeRequest is form-encoded, matching what the platform posts. An
// empty id means the platform did not report an external identity.
type HandshakeRequest struct {
	ExternalID  string `form:"id"`
	DisplayName string `form:"name" binding:"required"`
	Location    string `form:"location"`
}

type HandshakeResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Location  *string   `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

func newHandshakeResponse(h *handshakes.Handshake) HandshakeResponse {
	return HandshakeResponse{
		ID:        h.ID,
		UserID:    h.UserID,
		Location:  h.Location,
		CreatedAt: h.CreatedAt,
	}
}

type BackupResponse struct {
	Key string `json:"key"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
