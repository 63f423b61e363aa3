package domain

// Role is the authorization level attached to a user account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User statuses as reported by the backend.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusBanned    = "banned"
)

// User is an account as the backend serializes it. Field names on the wire
// are French; telephone and status are optional and may be absent entirely.
type User struct {
	ID        string `json:"_id"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Phone     string `json:"telephone,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Normalize fills the documented defaults for optional fields. Responses are
// coerced once, at the boundary, so nothing downstream re-checks them.
func (u *User) Normalize() {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = UserStatusActive
	}
}

// IsAdmin reports whether the account carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName returns "Prenom Nom" for rendering.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}
