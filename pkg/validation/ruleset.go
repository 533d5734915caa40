package validation

// Rule is one field-level predicate over a typed payload. OK must be pure and
// total: malformed input is a failed check, never a panic.
type Rule[T any] struct {
	Field   string
	Message string
	OK      func(T) bool
}

// RuleSet is a named ordered sequence of rules for one operation's payload.
// Order only affects the order failures are reported in.
type RuleSet[T any] struct {
	Name  string
	Rules []Rule[T]
}

// Validate runs every rule against the payload. There is no short-circuit: a
// later rule is evaluated even when an earlier one failed, so the caller gets
// the full list of violations in one pass.
func (rs RuleSet[T]) Validate(payload T) Verdict {
	var errs []FieldError
	for _, rule := range rs.Rules {
		if !rule.OK(payload) {
			errs = append(errs, FieldError{Field: rule.Field, Message: rule.Message})
		}
	}
	return Verdict{OK: len(errs) == 0, Errors: errs}
}
