package domain

import "github.com/google/uuid"

// User roles. Identity is established by the authentication layer in
// front of this service; handlers only consume it.
const (
	RoleAdvertiser = "advertiser"
	RoleBlogger    = "blogger"
	RoleAdmin      = "admin"
)

// UserContext identifies the already-authenticated caller of a request.
// The HTTP layer constructs this from request metadata and passes it
// into the usecases.
type UserContext struct {
	ID   uuid.UUID
	Role string
}

// IsAdmin reports whether the caller has the admin role.
func (u UserContext) IsAdmin() bool {
	return u.Role == RoleAdmin
}
