//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"medibook/internal/account/models"
	"medibook/internal/account/store"
	"medibook/pkg/domain"
	"medibook/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.DB)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "users"))
}

func newUser(email string) models.User {
	return models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hashed",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         domain.RolePatient,
		Phone:        "+44 20 7946 0958",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	user := newUser("ada@example.com")
	s.Require().NoError(s.store.Save(ctx, user))

	byID, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(user.Email, byID.Email)
	s.Equal(domain.RolePatient, byID.Role)

	byEmail, err := s.store.FindByEmail(ctx, "ada@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, byEmail.ID)
}

func (s *PostgresStoreSuite) TestDuplicateEmailViolatesUniqueConstraint() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, newUser("ada@example.com")))

	err := s.store.Save(ctx, newUser("ada@example.com"))
	s.ErrorIs(err, store.ErrDuplicateEmail)
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	user := newUser("ada@example.com")
	s.Require().NoError(s.store.Save(ctx, user))

	user.FirstName = "Augusta"
	user.Phone = "+1 555 0100"
	s.Require().NoError(s.store.Update(ctx, user))

	got, err := s.store.FindByID(ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("Augusta", got.FirstName)
	s.Equal("+1 555 0100", got.Phone)
}

func (s *PostgresStoreSuite) TestMissesSurfaceErrNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, uuid.NewString())
	s.ErrorIs(err, store.ErrNotFound)

	_, err = s.store.FindByEmail(ctx, "ghost@example.com")
	s.ErrorIs(err, store.ErrNotFound)

	s.ErrorIs(s.store.Update(ctx, newUser("ghost@example.com")), store.ErrNotFound)
}
