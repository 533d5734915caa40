package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
)

// Catalog predicates. Each is a pure function of a candidate value; optional
// fields are handled by the caller skipping the check when the value is
// absent, or by the *Optional variants accepting the zero value.

var (
	phonePattern     = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
	clockTimePattern = regexp.MustCompile(`^(0?[1-9]|1[0-2]):[0-5][0-9] (AM|PM)$`)
)

// IsEmail reports whether s is a well-formed address after trimming.
func IsEmail(s string) bool {
	return govalidator.IsEmail(strings.TrimSpace(s))
}

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MinLen reports whether s has at least n bytes. No trimming: whitespace in a
// password is the user's business.
func MinLen(s string, n int) bool {
	return len(s) >= n
}

// NonBlank reports whether s has content after trimming surrounding
// whitespace.
func NonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsPhone matches digits with the usual separators and an optional leading +.
// Absence is valid; use IsPhoneOptional for optional fields.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsPhoneOptional accepts the empty string.
func IsPhoneOptional(s string) bool {
	return s == "" || IsPhone(s)
}

// IsObjectID matches the canonical 24-hex-character object id grammar used
// for doctor and appointment identifiers.
func IsObjectID(s string) bool {
	return govalidator.IsMongoID(s)
}

// IsISODate reports whether s parses as an ISO-8601 date or date/time.
func IsISODate(s string) bool {
	if _, err := time.Parse(time.RFC3339, s); err == nil {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ClockTimeLayout is the reference layout for 12-hour clock strings such as
// "9:30 AM".
const ClockTimeLayout = "3:04 PM"

// IsClockTime matches a 12-hour clock string: optional leading zero on the
// hour, two-digit minute, uppercase AM/PM.
func IsClockTime(s string) bool {
	return clockTimePattern.MatchString(s)
}

// ParseClockTime parses a 12-hour clock string. Callers must have checked
// IsClockTime first or handle the error.
func ParseClockTime(s string) (time.Time, error) {
	return time.Parse(ClockTimeLayout, s)
}

// InSet reports membership of s in allowed. Optional enum fields pass the
// empty string through InSetOptional instead.
func InSet(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// InSetOptional treats absence as valid.
func InSetOptional(s string, allowed ...string) bool {
	return s == "" || InSet(s, allowed...)
}

// IntInRange checks an optional integer field. A nil pointer is valid
// (absent means "use defaults"); a present value must fall in [min, max].
func IntInRange(v *int, min, max int) bool {
	return v == nil || (*v >= min && *v <= max)
}

// RatingInRange checks the required rating field: an integer in [1, 5].
func RatingInRange(v int) bool {
	return v >= 1 && v <= 5
}
