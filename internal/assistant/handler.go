package assistant

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"medibook/internal/accessgate"
	"medibook/pkg/domain"
	"medibook/pkg/httpx"
	"medibook/pkg/validation"
)

// BookRequest is the wire payload for assistant bookings.
type BookRequest struct {
	Message string `json:"message"`
}

type Handler struct {
	assistant *Service
	logger    *slog.Logger
}

func NewHandler(assistant *Service, logger *slog.Logger) *Handler {
	return &Handler{assistant: assistant, logger: logger}
}

// Register wires the assistant route, patient-gated like manual booking.
func (h *Handler) Register(r chi.Router, gate *accessgate.Middleware) {
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(domain.RolePatient))
		r.Post("/assistant/book", h.handleBook)
	})
}

func (h *Handler) handleBook(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ValidationFailed(w, validation.Fail("body", "Invalid request body"))
		return
	}
	if !validation.NonBlank(req.Message) {
		httpx.ValidationFailed(w, validation.Fail("message", "Message is required"))
		return
	}

	sess := accessgate.SessionFrom(r.Context())
	appt, err := h.assistant.Book(r.Context(), sess, req.Message)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.Created(w, "Appointment booked", appt)
}
