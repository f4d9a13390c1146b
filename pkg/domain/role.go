package domain

// Role is the closed set of staff roles the backend can assign.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleDoctor    Role = "doctor"
	RoleReception Role = "reception"
)

// ParseRole maps a backend role string onto the closed set.
// Anything unrecognized (including empty) falls back to reception,
// matching how the backend provisions new accounts.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RoleReception:
		return Role(s)
	default:
		return RoleReception
	}
}

// Known reports whether r is one of the three valid roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RoleReception:
		return true
	}
	return false
}

// HomeRoute returns the landing route for a role. This mapping is the
// single source of truth consumed by the route guard; an unknown role
// has no home and returns "".
func (r Role) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleDoctor:
		return "/doctor"
	case RoleReception:
		return "/reception"
	}
	return ""
}
