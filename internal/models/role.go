package models

import "strings"

type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole normalizes a role string from an auth token. Unknown roles are
// kept as-is (lowercased) so they round-trip into audit records, but they
// never gain privileges.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// IsPrivileged reports whether the role may approve/reject bookings and
// manage maintenance tickets.
func (r Role) IsPrivileged() bool {
	return r == RoleAdmin || r == RoleStaff
}

func (r Role) String() string {
	return string(r)
}
