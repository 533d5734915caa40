package accessgate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"medibook/internal/session"
	"medibook/pkg/domain"
)

func TestDecide(t *testing.T) {
	patientSession := session.Session{Token: "tok", UserID: "u1", Role: domain.RolePatient}
	doctorSession := session.Session{Token: "tok", UserID: "u2", Role: domain.RoleDoctor}

	t.Run("absent token redirects to login regardless of role", func(t *testing.T) {
		decision := Decide(session.Session{Role: domain.RoleAdmin}, domain.RoleAdmin, "/admin/dashboard")
		assert.Equal(t, StateRedirectLogin, decision.State)
		assert.Equal(t, "/login?next=%2Fadmin%2Fdashboard", decision.Target)
	})

	t.Run("token without role claim redirects to login", func(t *testing.T) {
		decision := Decide(session.Session{Token: "tok"}, "", "/me")
		assert.Equal(t, StateRedirectLogin, decision.State)
	})

	t.Run("doctor on a patient view is sent to the doctor home", func(t *testing.T) {
		decision := Decide(doctorSession, domain.RolePatient, "/patient/dashboard")
		assert.Equal(t, StateRedirectRole, decision.State)
		assert.Equal(t, "/doctor/dashboard", decision.Target)
	})

	t.Run("matching role is allowed", func(t *testing.T) {
		decision := Decide(patientSession, domain.RolePatient, "/patient/dashboard")
		assert.Equal(t, StateAllowed, decision.State)
		assert.Empty(t, decision.Target)
	})

	t.Run("empty required role only needs authentication", func(t *testing.T) {
		assert.Equal(t, StateAllowed, Decide(doctorSession, "", "/appointments").State)
	})

	t.Run("login path itself gets no next parameter", func(t *testing.T) {
		decision := Decide(session.Session{}, "", LoginPath)
		assert.Equal(t, LoginPath, decision.Target)
	})

	t.Run("decision is computed fresh per call", func(t *testing.T) {
		first := Decide(patientSession, domain.RoleDoctor, "/doctor/dashboard")
		second := Decide(patientSession, domain.RoleDoctor, "/doctor/dashboard")
		assert.Equal(t, first, second)
	})
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/patient/dashboard", HomeFor(domain.RolePatient))
	assert.Equal(t, "/doctor/dashboard", HomeFor(domain.RoleDoctor))
	assert.Equal(t, "/admin/dashboard", HomeFor(domain.RoleAdmin))
	assert.Equal(t, LoginPath, HomeFor(domain.Role("receptionist")))
}
