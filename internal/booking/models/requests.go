package models

// AppointmentTime is the two-part 12-hour clock window submitted on booking.
// Keeping it a record rather than dotted-string lookup preserves type safety;
// failure messages still report the nested path (appointmentTime.start).
type AppointmentTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CreateAppointmentRequest is the wire payload for booking. Field-level
// checks live in the "create-appointment" rule set; the cross-field window
// check lives in CheckInvariants.
type CreateAppointmentRequest struct {
	Doctor          string          `json:"doctor"`
	AppointmentDate string          `json:"appointmentDate"`
	AppointmentTime AppointmentTime `json:"appointmentTime"`
	Type            string          `json:"type"`
	Mode            string          `json:"mode,omitempty"`
	Priority        string          `json:"priority,omitempty"`
	ChiefComplaint  string          `json:"chiefComplaint"`
}

// RateAppointmentRequest carries a patient rating for a completed visit.
type RateAppointmentRequest struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

// UpdateStatusRequest moves an appointment through its lifecycle.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListQuery is the pagination query for appointment listings. Pointers keep
// "absent" distinct from zero: absent means the caller-side defaults apply.
type ListQuery struct {
	Page  *int `json:"page,omitempty"`
	Limit *int `json:"limit,omitempty"`
}

// Defaults for appointment listings when the query omits them.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Resolve returns the effective page and limit after applying defaults.
// Validation has already rejected out-of-range values.
func (q ListQuery) Resolve() (page, limit int) {
	page, limit = DefaultPage, DefaultLimit
	if q.Page != nil {
		page = *q.Page
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	return page, limit
}
