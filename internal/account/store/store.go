// Package store persists user accounts. Implementations are interchangeable
// behind the Store interface; memory backs tests and development, postgres
// backs production.
package store

import (
	"context"
	"errors"

	"medibook/internal/account/models"
)

var (
	// ErrNotFound keeps storage-specific misses consistent across
	// implementations.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail signals a unique-constraint hit on registration.
	ErrDuplicateEmail = errors.New("email already registered")
)

type Store interface {
	Save(ctx context.Context, user models.User) error
	Update(ctx context.Context, user models.User) error
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}
