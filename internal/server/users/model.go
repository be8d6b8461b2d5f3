package users

import "time"

// User is a single identity record owned by the registry.
//
// ExternalID is the platform-assigned identity. It is modeled as a pointer so
// that "absent" stays distinct from an empty string: absent values never
// collide with each other, while two empty-string values do.
type User struct {
	ID          int64
	ExternalID  *string
	DisplayName string
	CreatedAt   time.Time
}
