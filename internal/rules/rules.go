// Package rules binds the validation catalog to the portal's operations. One
// named rule set per mutating endpoint; every rule in a set is evaluated so
// a single round trip reports every violation.
package rules

import (
	"fmt"

	accountModel "medibook/internal/account/models"
	bookingModel "medibook/internal/booking/models"
	"medibook/pkg/domain"
	"medibook/pkg/validation"
)

// Rule set names. Handlers reference the typed sets directly; the names exist
// for Apply and for metrics labels.
const (
	SetRegister          = "register"
	SetLogin             = "login"
	SetCreateAppointment = "create-appointment"
	SetUpdateProfile     = "update-profile"
	SetRateAppointment   = "rate-appointment"
	SetPagination        = "pagination"
)

// Register validates account creation.
var Register = validation.RuleSet[accountModel.RegisterRequest]{
	Name: SetRegister,
	Rules: []validation.Rule[accountModel.RegisterRequest]{
		{Field: "email", Message: "Please provide a valid email", OK: func(r accountModel.RegisterRequest) bool {
			return validation.IsEmail(r.Email)
		}},
		{Field: "password", Message: "Password must be at least 6 characters", OK: func(r accountModel.RegisterRequest) bool {
			return validation.MinLen(r.Password, 6)
		}},
		{Field: "firstName", Message: "First name is required", OK: func(r accountModel.RegisterRequest) bool {
			return validation.NonBlank(r.FirstName)
		}},
		{Field: "lastName", Message: "Last name is required", OK: func(r accountModel.RegisterRequest) bool {
			return validation.NonBlank(r.LastName)
		}},
		// Absent role defaults to patient at the service layer, so only a
		// present-but-unknown value fails here.
		{Field: "role", Message: "Role must be patient, doctor, or admin", OK: func(r accountModel.RegisterRequest) bool {
			return validation.InSetOptional(r.Role, domain.RoleStrings()...)
		}},
		{Field: "phone", Message: "Please provide a valid phone number", OK: func(r accountModel.RegisterRequest) bool {
			return validation.IsPhoneOptional(r.Phone)
		}},
	},
}

// Login validates sign-in. Password only needs presence here.
var Login = validation.RuleSet[accountModel.LoginRequest]{
	Name: SetLogin,
	Rules: []validation.Rule[accountModel.LoginRequest]{
		{Field: "email", Message: "Please provide a valid email", OK: func(r accountModel.LoginRequest) bool {
			return validation.IsEmail(r.Email)
		}},
		{Field: "password", Message: "Password is required", OK: func(r accountModel.LoginRequest) bool {
			return r.Password != ""
		}},
	},
}

// CreateAppointment validates the booking payload field by field. The
// cross-field window invariant is layered on by models.CheckInvariants.
var CreateAppointment = validation.RuleSet[bookingModel.CreateAppointmentRequest]{
	Name: SetCreateAppointment,
	Rules: []validation.Rule[bookingModel.CreateAppointmentRequest]{
		{Field: "doctor", Message: "Valid doctor ID is required", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.IsObjectID(r.Doctor)
		}},
		{Field: "appointmentDate", Message: "Please provide a valid appointment date", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.IsISODate(r.AppointmentDate)
		}},
		{Field: "appointmentTime.start", Message: "Start time must be in HH:MM AM/PM format", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.IsClockTime(r.AppointmentTime.Start)
		}},
		{Field: "appointmentTime.end", Message: "End time must be in HH:MM AM/PM format", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.IsClockTime(r.AppointmentTime.End)
		}},
		{Field: "type", Message: "Invalid appointment type", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.InSet(r.Type, bookingModel.TypeStrings()...)
		}},
		{Field: "mode", Message: "Invalid appointment mode", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.InSetOptional(r.Mode, bookingModel.ModeStrings()...)
		}},
		{Field: "priority", Message: "Invalid priority level", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.InSetOptional(r.Priority, bookingModel.PriorityStrings()...)
		}},
		{Field: "chiefComplaint", Message: "Chief complaint is required", OK: func(r bookingModel.CreateAppointmentRequest) bool {
			return validation.NonBlank(r.ChiefComplaint)
		}},
	},
}

// UpdateProfile validates a partial profile update. Absent fields are left
// unchanged and pass; present fields must hold content.
var UpdateProfile = validation.RuleSet[accountModel.UpdateProfileRequest]{
	Name: SetUpdateProfile,
	Rules: []validation.Rule[accountModel.UpdateProfileRequest]{
		{Field: "firstName", Message: "First name is required", OK: func(r accountModel.UpdateProfileRequest) bool {
			return r.FirstName == nil || validation.NonBlank(*r.FirstName)
		}},
		{Field: "lastName", Message: "Last name is required", OK: func(r accountModel.UpdateProfileRequest) bool {
			return r.LastName == nil || validation.NonBlank(*r.LastName)
		}},
		{Field: "phone", Message: "Please provide a valid phone number", OK: func(r accountModel.UpdateProfileRequest) bool {
			return r.Phone == nil || *r.Phone == "" || validation.IsPhone(*r.Phone)
		}},
	},
}

// RateAppointment validates a rating submission. Feedback is free text with
// no floor; it is trimmed by the service, so no rule can fail on it.
var RateAppointment = validation.RuleSet[bookingModel.RateAppointmentRequest]{
	Name: SetRateAppointment,
	Rules: []validation.Rule[bookingModel.RateAppointmentRequest]{
		{Field: "rating", Message: "Rating must be between 1 and 5", OK: func(r bookingModel.RateAppointmentRequest) bool {
			return validation.RatingInRange(r.Rating)
		}},
	},
}

// Pagination validates listing queries. Absent values mean "use defaults"
// and pass; only out-of-range values are rejected.
var Pagination = validation.RuleSet[bookingModel.ListQuery]{
	Name: SetPagination,
	Rules: []validation.Rule[bookingModel.ListQuery]{
		{Field: "page", Message: "Page must be a positive integer", OK: func(q bookingModel.ListQuery) bool {
			return q.Page == nil || *q.Page >= 1
		}},
		{Field: "limit", Message: "Limit must be between 1 and 100", OK: func(q bookingModel.ListQuery) bool {
			return validation.IntInRange(q.Limit, 1, bookingModel.MaxLimit)
		}},
	},
}

// Apply dispatches by rule-set name. An unknown name or a payload of the
// wrong type is a programming error, not a user-facing validation failure,
// so it panics.
func Apply(name string, payload any) validation.Verdict {
	switch name {
	case SetRegister:
		return Register.Validate(payload.(accountModel.RegisterRequest))
	case SetLogin:
		return Login.Validate(payload.(accountModel.LoginRequest))
	case SetCreateAppointment:
		return CreateAppointment.Validate(payload.(bookingModel.CreateAppointmentRequest))
	case SetUpdateProfile:
		return UpdateProfile.Validate(payload.(accountModel.UpdateProfileRequest))
	case SetRateAppointment:
		return RateAppointment.Validate(payload.(bookingModel.RateAppointmentRequest))
	case SetPagination:
		return Pagination.Validate(payload.(bookingModel.ListQuery))
	default:
		panic(fmt.Sprintf("rules: unknown rule set %q", name))
	}
}
