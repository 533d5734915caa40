package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	bookingModel "medibook/internal/booking/models"
	"medibook/internal/booking/service"
	"medibook/internal/session"
	"medibook/pkg/apperrors"
)

const draftPrompt = `You turn a patient's free-text booking request into JSON.
Respond with ONLY a JSON object with these keys:
  doctor (24-hex id), appointmentDate (YYYY-MM-DD),
  appointmentTime: {start, end} as 12-hour clock strings like "09:00 AM",
  type: one of consultation, follow-up, emergency, routine-checkup, specialist-referral,
  mode (optional): in-person, telemedicine, or phone,
  priority (optional): low, medium, high, or urgent,
  chiefComplaint: short description in the patient's words.
Leave out anything the patient did not say.`

// Service extracts an appointment draft from a chat message and submits it
// through the normal booking path. The validator decides whether the model's
// draft is acceptable; the assistant gets no shortcut around it.
type Service struct {
	llm      Client
	bookings *service.Service
	logger   *slog.Logger
}

func New(llm Client, bookings *service.Service, logger *slog.Logger) *Service {
	return &Service{llm: llm, bookings: bookings, logger: logger}
}

// Book asks the model for a draft and submits it as the session's patient.
func (s *Service) Book(ctx context.Context, sess session.Session, message string) (bookingModel.Appointment, error) {
	reply, err := s.llm.Complete(ctx, draftPrompt, message)
	if err != nil {
		return bookingModel.Appointment{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	var draft bookingModel.CreateAppointmentRequest
	if err := json.Unmarshal([]byte(extractJSON(reply)), &draft); err != nil {
		s.logger.WarnContext(ctx, "assistant produced unparseable draft", "error", err)
		return bookingModel.Appointment{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	// Same contract as a manual booking: Create re-runs the rule set and
	// the cross-field invariants and rejects a bad draft with a 400-class
	// error the client can show the user.
	return s.bookings.Create(ctx, sess, draft)
}

// extractJSON strips markdown fences some models wrap around JSON replies.
func extractJSON(reply string) string {
	reply = strings.TrimSpace(reply)
	if after, ok := strings.CutPrefix(reply, "```json"); ok {
		reply = after
	} else if after, ok := strings.CutPrefix(reply, "```"); ok {
		reply = after
	}
	reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
	return strings.TrimSpace(reply)
}
