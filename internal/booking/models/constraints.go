package models

import "medibook/pkg/validation"

// CheckInvariants runs the cross-field appointment checks that single-field
// predicates cannot express. It is invoked after the "create-appointment"
// rule set accepts the raw payload; callers combining both passes merge the
// verdicts so earlier field failures are kept.
//
// The window check parses both clock strings on the given date. Equal times
// are invalid, and there is no cross-midnight reasoning: end at or before
// start is always a failure.
func CheckInvariants(req CreateAppointmentRequest) validation.Verdict {
	start, errStart := validation.ParseClockTime(req.AppointmentTime.Start)
	end, errEnd := validation.ParseClockTime(req.AppointmentTime.End)
	if errStart != nil || errEnd != nil {
		// Field-level checks report format problems; an unparseable time
		// here still fails rather than panicking.
		return validation.Fail("appointmentTime", "Appointment time is not a valid 12-hour clock window")
	}
	if !end.After(start) {
		return validation.Fail("appointmentTime.end", "End time must be after start time")
	}
	return validation.Pass()
}
