package model

// Role grants access to administrative operations.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Identity is the authenticated caller.
type Identity struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the caller may act on other buyers' data.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
