// Package validation holds the field-level rule machinery shared by every
// mutating endpoint: a catalog of reusable predicates, a generic rule-set
// runner, and the verdict shape the HTTP layer translates into envelopes.
package validation

// FieldError pairs a violated field with its fixed human-readable message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Verdict is the outcome of running a rule set. It is produced fresh per
// request and never retained.
type Verdict struct {
	OK     bool
	Errors []FieldError
}

// Pass returns the verdict for a payload with zero failures.
func Pass() Verdict {
	return Verdict{OK: true}
}

// Fail builds a single-failure verdict. Useful for cross-field checks that
// sit outside a rule set.
func Fail(field, message string) Verdict {
	return Verdict{Errors: []FieldError{{Field: field, Message: message}}}
}

// Merge appends another verdict's failures onto this one. The combined
// verdict is OK only when both inputs were.
func (v Verdict) Merge(other Verdict) Verdict {
	return Verdict{
		OK:     v.OK && other.OK,
		Errors: append(append([]FieldError{}, v.Errors...), other.Errors...),
	}
}
