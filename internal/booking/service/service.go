// Package service owns the booking lifecycle. Verdicts are settled before a
// draft reaches the store: Create re-runs the full rule set plus the
// cross-field invariants so no caller can slip an unvalidated payload
// through.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"medibook/internal/audit"
	"medibook/internal/booking/models"
	"medibook/internal/booking/store"
	"medibook/internal/platform/metrics"
	"medibook/internal/rules"
	"medibook/internal/session"
	"medibook/pkg/apperrors"
	"medibook/pkg/domain"
	"medibook/pkg/httpx"
	"medibook/pkg/validation"
)

type Service struct {
	appointments store.Store
	auditor      *audit.Publisher
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

func New(appointments store.Store, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{appointments: appointments, auditor: auditor, metrics: m, logger: logger}
}

// Create accepts a booking draft for the session's patient. The draft is
// either accepted whole and stored, or discarded; it is never mutated after
// validation.
func (s *Service) Create(ctx context.Context, sess session.Session, req models.CreateAppointmentRequest) (models.Appointment, error) {
	verdict := rules.CreateAppointment.Validate(req)
	if verdict.OK {
		verdict = verdict.Merge(models.CheckInvariants(req))
	}
	if !verdict.OK {
		return models.Appointment{}, apperrors.Validation(verdict)
	}

	appt := models.Appointment{
		ID:             uuid.NewString(),
		PatientID:      sess.UserID,
		DoctorID:       req.Doctor,
		Date:           req.AppointmentDate,
		StartTime:      req.AppointmentTime.Start,
		EndTime:        req.AppointmentTime.End,
		Type:           models.AppointmentType(req.Type),
		Mode:           models.AppointmentMode(req.Mode),
		Priority:       models.AppointmentPriority(req.Priority),
		ChiefComplaint: strings.TrimSpace(req.ChiefComplaint),
		Status:         models.StatusScheduled,
		CreatedAt:      time.Now(),
	}

	if err := s.appointments.Save(ctx, appt); err != nil {
		return models.Appointment{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	s.metrics.AppointmentsCreated.Inc()
	s.auditor.Emit(audit.Event{UserID: sess.UserID, Action: audit.ActionAppointmentCreated, Subject: appt.ID})
	s.logger.InfoContext(ctx, "appointment created",
		"appointment_id", appt.ID,
		"doctor_id", appt.DoctorID,
		"type", string(appt.Type),
	)
	return appt, nil
}

// List returns one page of appointments scoped to the caller: patients see
// their own bookings, doctors their own schedule, admins everything.
func (s *Service) List(ctx context.Context, sess session.Session, query models.ListQuery) ([]models.Appointment, httpx.Pagination, error) {
	page, limit := query.Resolve()

	filter := store.Filter{}
	switch sess.Role {
	case domain.RolePatient:
		filter.PatientID = sess.UserID
	case domain.RoleDoctor:
		filter.DoctorID = sess.UserID
	}

	appointments, total, err := s.appointments.List(ctx, filter, page, limit)
	if err != nil {
		return nil, httpx.Pagination{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return appointments, httpx.Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// Get returns one appointment if the caller is a party to it (or an admin).
func (s *Service) Get(ctx context.Context, sess session.Session, id string) (models.Appointment, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return models.Appointment{}, err
	}
	if !s.mayView(sess, appt) {
		return models.Appointment{}, apperrors.New(apperrors.CodeUnauthorized, "Forbidden")
	}
	return appt, nil
}

// allowedTransitions is the booking lifecycle. Cancellation is reachable
// from any live state; completed and cancelled are terminal.
var allowedTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusScheduled: {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

// UpdateStatus moves an appointment through its lifecycle. Doctors drive
// confirmation and completion; either party may cancel.
func (s *Service) UpdateStatus(ctx context.Context, sess session.Session, id string, next models.AppointmentStatus) (models.Appointment, error) {
	if !validation.InSet(string(next), models.StatusStrings()...) {
		return models.Appointment{}, apperrors.Validation(
			validation.Fail("status", "Invalid appointment status"))
	}

	appt, err := s.find(ctx, id)
	if err != nil {
		return models.Appointment{}, err
	}

	actorIsDoctor := sess.Role == domain.RoleDoctor && appt.DoctorID == sess.UserID
	actorIsPatient := sess.Role == domain.RolePatient && appt.PatientID == sess.UserID
	switch {
	case next == models.StatusCancelled && (actorIsDoctor || actorIsPatient):
	case actorIsDoctor, sess.Role == domain.RoleAdmin:
	default:
		return models.Appointment{}, apperrors.New(apperrors.CodeUnauthorized, "Forbidden")
	}

	if !transitionAllowed(appt.Status, next) {
		return models.Appointment{}, apperrors.Validation(validation.Fail("status",
			"Cannot move appointment from "+string(appt.Status)+" to "+string(next)))
	}

	appt.Status = next
	if err := s.appointments.Update(ctx, appt); err != nil {
		return models.Appointment{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}
	return appt, nil
}

// Rate records a patient's rating for their own completed appointment.
func (s *Service) Rate(ctx context.Context, sess session.Session, id string, req models.RateAppointmentRequest) (models.Appointment, error) {
	appt, err := s.find(ctx, id)
	if err != nil {
		return models.Appointment{}, err
	}
	if appt.PatientID != sess.UserID {
		return models.Appointment{}, apperrors.New(apperrors.CodeUnauthorized, "Forbidden")
	}
	if appt.Status != models.StatusCompleted {
		return models.Appointment{}, apperrors.Validation(
			validation.Fail("status", "Only completed appointments can be rated"))
	}
	if appt.Rating != nil {
		return models.Appointment{}, apperrors.Validation(
			validation.Fail("rating", "Appointment has already been rated"))
	}

	rating := req.Rating
	appt.Rating = &rating
	appt.Feedback = strings.TrimSpace(req.Feedback)
	if err := s.appointments.Update(ctx, appt); err != nil {
		return models.Appointment{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	s.auditor.Emit(audit.Event{UserID: sess.UserID, Action: audit.ActionAppointmentRated, Subject: appt.ID})
	return appt, nil
}

func (s *Service) find(ctx context.Context, id string) (models.Appointment, error) {
	appt, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Appointment{}, apperrors.NotFound("Appointment")
		}
		return models.Appointment{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}
	return appt, nil
}

func (s *Service) mayView(sess session.Session, appt models.Appointment) bool {
	switch sess.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleDoctor:
		return appt.DoctorID == sess.UserID
	default:
		return appt.PatientID == sess.UserID
	}
}

func transitionAllowed(from, to models.AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
