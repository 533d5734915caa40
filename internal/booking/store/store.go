// Package store persists appointments. Memory backs tests and development,
// postgres backs production; both answer role-scoped, paginated listings.
package store

import (
	"context"
	"errors"

	"medibook/internal/booking/models"
)

// ErrNotFound keeps storage-specific misses consistent across
// implementations.
var ErrNotFound = errors.New("appointment not found")

// Filter scopes a listing to one side of the booking. Exactly one of the two
// is normally set; both empty lists everything (admin).
type Filter struct {
	PatientID string
	DoctorID  string
}

type Store interface {
	Save(ctx context.Context, appt models.Appointment) error
	Update(ctx context.Context, appt models.Appointment) error
	FindByID(ctx context.Context, id string) (models.Appointment, error)
	// List returns one page of matching appointments, newest first, along
	// with the total match count for pagination.
	List(ctx context.Context, filter Filter, page, limit int) ([]models.Appointment, int, error)
}
