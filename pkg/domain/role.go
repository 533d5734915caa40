// Package domain holds small value types shared across the service.
package domain

// Role is the access-level claim attached to an authenticated session.
// Invariant: the value must be one of the three supported roles.
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// validRoles is the single source of truth for supported roles.
var validRoles = map[Role]bool{
	RolePatient: true,
	RoleDoctor:  true,
	RoleAdmin:   true,
}

// IsValid checks whether the role is one of the supported enum values.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// RoleStrings lists the supported role values for rule-set membership checks.
func RoleStrings() []string {
	return []string{string(RolePatient), string(RoleDoctor), string(RoleAdmin)}
}
