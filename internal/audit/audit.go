// Package audit captures structured records of security-relevant actions:
// registrations, failed logins, bookings, gate denials. Events are
// transport-agnostic so stores and sinks can fan out.
package audit

import (
	"context"
	"time"
)

// Action names the audited operation.
type Action string

const (
	ActionUserRegistered     Action = "user_registered"
	ActionLoginFailed        Action = "login_failed"
	ActionSessionRevoked     Action = "session_revoked"
	ActionAppointmentCreated Action = "appointment_created"
	ActionAppointmentRated   Action = "appointment_rated"
	ActionAccessDenied       Action = "access_denied"
)

// Event is emitted from domain logic to capture key actions.
type Event struct {
	Timestamp time.Time
	UserID    string
	Action    Action
	Subject   string
	Detail    string
}

// Store is the append-only sink behind the publisher.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID string) ([]Event, error)
}
