package models

import (
	"time"

	"medibook/pkg/domain"
)

// User is the primary identity tracked by the portal. The password is stored
// only as a bcrypt hash and never serialized.
type User struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Role         domain.Role `json:"role"`
	Phone        string      `json:"phone,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// RegisterRequest is the wire payload for account creation. Validation lives
// in the "register" rule set.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
}

// LoginRequest is the wire payload for login. Password only needs presence
// here; the length floor applies at registration.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial profile update. Pointer fields
// distinguish "absent" (leave unchanged) from "present but blank" (rejected).
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

// AuthResult is returned from register and login: the user plus the session
// token the client presents on gated requests.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
