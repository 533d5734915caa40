//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"medibook/internal/booking/models"
	"medibook/internal/booking/store"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "appointments"))
}

func (s *PostgresStoreSuite) seed(patientID, doctorID string, createdAt time.Time) models.Appointment {
	appt := models.Appointment{
		ID:             uuid.NewString(),
		PatientID:      patientID,
		DoctorID:       doctorID,
		Date:           "2026-09-14",
		StartTime:      "9:00 AM",
		EndTime:        "9:30 AM",
		Type:           models.TypeConsultation,
		Mode:           models.ModeInPerson,
		Priority:       models.PriorityMedium,
		ChiefComplaint: "Persistent headache",
		Status:         models.StatusScheduled,
		CreatedAt:      createdAt.UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(s.store.Save(context.Background(), appt))
	return appt
}

func (s *PostgresStoreSuite) TestSaveAndFind() {
	appt := s.seed("p1", "d1", time.Now())

	got, err := s.store.FindByID(context.Background(), appt.ID)
	s.Require().NoError(err)
	s.Equal(appt.ChiefComplaint, got.ChiefComplaint)
	s.Equal(models.StatusScheduled, got.Status)
	s.Nil(got.Rating)
}

func (s *PostgresStoreSuite) TestUpdateStatusAndRating() {
	ctx := context.Background()
	appt := s.seed("p1", "d1", time.Now())

	rating := 5
	appt.Status = models.StatusCompleted
	appt.Rating = &rating
	appt.Feedback = "very thorough"
	s.Require().NoError(s.store.Update(ctx, appt))

	got, err := s.store.FindByID(ctx, appt.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, got.Status)
	s.Require().NotNil(got.Rating)
	s.Equal(5, *got.Rating)
	s.Equal("very thorough", got.Feedback)
}

func (s *PostgresStoreSuite) TestListFiltersAndPaginates() {
	ctx := context.Background()
	base := time.Now()
	for i := 0; i < 3; i++ {
		s.seed("p1", "d1", base.Add(time.Duration(i)*time.Minute))
	}
	s.seed("p2", "d1", base.Add(time.Hour))

	page, total, err := s.store.List(ctx, store.Filter{PatientID: "p1"}, 1, 2)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Len(page, 2)
	s.True(page[0].CreatedAt.After(page[1].CreatedAt), "newest first")

	_, total, err = s.store.List(ctx, store.Filter{DoctorID: "d1"}, 1, 10)
	s.Require().NoError(err)
	s.Equal(4, total)

	empty, total, err := s.store.List(ctx, store.Filter{PatientID: "p1"}, 9, 10)
	s.Require().NoError(err)
	s.Equal(3, total)
	s.Empty(empty)
}

func (s *PostgresStoreSuite) TestMissesSurfaceErrNotFound() {
	ctx := context.Background()

	_, err := s.store.FindByID(ctx, uuid.NewString())
	s.ErrorIs(err, store.ErrNotFound)

	s.ErrorIs(s.store.Update(ctx, models.Appointment{ID: uuid.NewString()}), store.ErrNotFound)
}
