package domain

import "strings"

// User is the client-side canonical shape of an authenticated user.
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        Role   `json:"role"`
}

// RawUser is the user object as the backend returns it from /auth/login.
// Deployments disagree on field names, so every spelling the backend has
// ever used is decoded and Normalize picks the first one present.
type RawUser struct {
	ID            int64  `json:"id"`
	FullName      string `json:"full_name"`
	FullNameCamel string `json:"fullName"`
	Name          string `json:"name"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Role          string `json:"role"`
	UserRole      string `json:"user_role"`
}

// Normalize derives the canonical User from a raw backend record.
// Display name precedence: full_name, fullName, name, "first last", "User".
// Role precedence: role, user_role, reception.
func (r RawUser) Normalize() User {
	name := r.FullName
	if name == "" {
		name = r.FullNameCamel
	}
	if name == "" {
		name = r.Name
	}
	if name == "" {
		name = strings.TrimSpace(r.FirstName + " " + r.LastName)
	}
	if name == "" {
		name = "User"
	}

	role := r.Role
	if role == "" {
		role = r.UserRole
	}

	return User{
		ID:          r.ID,
		DisplayName: name,
		Role:        ParseRole(role),
	}
}
