// Package handler is the thin HTTP layer for bookings: parse, validate with
// the named rule sets, delegate, wrap in the envelope.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"medibook/internal/accessgate"
	"medibook/internal/booking/models"
	"medibook/internal/booking/service"
	"medibook/internal/platform/metrics"
	"medibook/internal/rules"
	"medibook/pkg/domain"
	"medibook/pkg/httpx"
	"medibook/pkg/validation"
)

type Handler struct {
	bookings *service.Service
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(bookings *service.Service, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{bookings: bookings, metrics: m, logger: logger}
}

// Register wires the appointment routes. Creation and rating are
// patient-gated. Status updates only need a session at the gate: the service
// decides per appointment who may drive which transition (doctors confirm and
// complete, either party cancels, admins override).
func (h *Handler) Register(r chi.Router, gate *accessgate.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(domain.RolePatient))
		r.Post("/appointments", h.handleCreate)
		r.Post("/appointments/{id}/rating", h.handleRate)
	})
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(""))
		r.Get("/appointments", h.handleList)
		r.Get("/appointments/{id}", h.handleGet)
		r.Patch("/appointments/{id}/status", h.handleUpdateStatus)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ValidationFailed(w, validation.Fail("body", "Invalid request body"))
		return
	}

	// Field-level checks and cross-field invariants run in one pass so the
	// caller gets every violation at once.
	verdict := rules.CreateAppointment.Validate(req)
	if verdict.OK {
		verdict = verdict.Merge(models.CheckInvariants(req))
	}
	if !verdict.OK {
		h.metrics.ValidationFailure(rules.SetCreateAppointment)
		httpx.ValidationFailed(w, verdict)
		return
	}

	sess := accessgate.SessionFrom(r.Context())
	appt, err := h.bookings.Create(r.Context(), sess, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.Created(w, "Appointment booked", appt)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	query, verdict := parseListQuery(r)
	if !verdict.OK {
		h.metrics.ValidationFailure(rules.SetPagination)
		httpx.ValidationFailed(w, verdict)
		return
	}

	sess := accessgate.SessionFrom(r.Context())
	appointments, pagination, err := h.bookings.List(r.Context(), sess, query)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.Page(w, "Appointments retrieved", appointments, pagination)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	sess := accessgate.SessionFrom(r.Context())
	appt, err := h.bookings.Get(r.Context(), sess, chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.OK(w, "Appointment retrieved", appt)
}

func (h *Handler) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ValidationFailed(w, validation.Fail("body", "Invalid request body"))
		return
	}

	sess := accessgate.SessionFrom(r.Context())
	appt, err := h.bookings.UpdateStatus(r.Context(), sess, chi.URLParam(r, "id"),
		models.AppointmentStatus(req.Status))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.OK(w, "Appointment updated", appt)
}

func (h *Handler) handleRate(w http.ResponseWriter, r *http.Request) {
	var req models.RateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ValidationFailed(w, validation.Fail("body", "Invalid request body"))
		return
	}

	if verdict := rules.RateAppointment.Validate(req); !verdict.OK {
		h.metrics.ValidationFailure(rules.SetRateAppointment)
		httpx.ValidationFailed(w, verdict)
		return
	}

	sess := accessgate.SessionFrom(r.Context())
	appt, err := h.bookings.Rate(r.Context(), sess, chi.URLParam(r, "id"), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.OK(w, "Appointment rated", appt)
}

// parseListQuery reads page and limit from the query string. Absent values
// stay nil (defaults apply); non-integers fail the same way out-of-range
// values do.
func parseListQuery(r *http.Request) (models.ListQuery, validation.Verdict) {
	var query models.ListQuery
	var parseFailures validation.Verdict
	parseFailures.OK = true

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.Page = &v
		} else {
			parseFailures = parseFailures.Merge(
				validation.Fail("page", "Page must be a positive integer"))
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			query.Limit = &v
		} else {
			parseFailures = parseFailures.Merge(
				validation.Fail("limit", "Limit must be between 1 and 100"))
		}
	}

	return query, parseFailures.Merge(rules.Pagination.Validate(query))
}
