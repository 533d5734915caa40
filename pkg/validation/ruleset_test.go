package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	A string
	B string
}

func testSet() RuleSet[testPayload] {
	return RuleSet[testPayload]{
		Name: "test",
		Rules: []Rule[testPayload]{
			{Field: "a", Message: "a is required", OK: func(p testPayload) bool { return p.A != "" }},
			{Field: "b", Message: "b is required", OK: func(p testPayload) bool { return p.B != "" }},
		},
	}
}

func TestRuleSetValidate(t *testing.T) {
	t.Run("all rules passing yields ok with no errors", func(t *testing.T) {
		verdict := testSet().Validate(testPayload{A: "x", B: "y"})
		assert.True(t, verdict.OK)
		assert.Empty(t, verdict.Errors)
	})

	t.Run("no short-circuit: two violations report two errors", func(t *testing.T) {
		verdict := testSet().Validate(testPayload{})
		assert.False(t, verdict.OK)
		require.Len(t, verdict.Errors, 2)
		assert.Equal(t, "a", verdict.Errors[0].Field)
		assert.Equal(t, "b", verdict.Errors[1].Field)
	})

	t.Run("failures reported in declaration order", func(t *testing.T) {
		verdict := testSet().Validate(testPayload{A: "x"})
		require.Len(t, verdict.Errors, 1)
		assert.Equal(t, FieldError{Field: "b", Message: "b is required"}, verdict.Errors[0])
	})

	t.Run("idempotent: same payload yields identical verdicts", func(t *testing.T) {
		payload := testPayload{B: "y"}
		first := testSet().Validate(payload)
		second := testSet().Validate(payload)
		assert.Equal(t, first, second)
	})
}

func TestVerdictMerge(t *testing.T) {
	t.Run("ok merged with failure is a failure carrying both error sets", func(t *testing.T) {
		merged := Pass().Merge(Fail("x", "x is broken"))
		assert.False(t, merged.OK)
		require.Len(t, merged.Errors, 1)
	})

	t.Run("field failures precede merged cross-field failures", func(t *testing.T) {
		merged := Fail("a", "first").Merge(Fail("b", "second"))
		require.Len(t, merged.Errors, 2)
		assert.Equal(t, "a", merged.Errors[0].Field)
		assert.Equal(t, "b", merged.Errors[1].Field)
	})

	t.Run("merge does not mutate its receiver", func(t *testing.T) {
		base := Fail("a", "first")
		_ = base.Merge(Fail("b", "second"))
		assert.Len(t, base.Errors, 1)
	})
}
