// Package accessgate decides whether a session may reach a protected view or
// route. The decision is a pure function of (session, required role, current
// path) — no shared mutable auth state, re-evaluated fresh on every request.
package accessgate

import (
	"net/url"

	"medibook/internal/session"
	"medibook/pkg/domain"
)

// State is the gate's terminal outcome. Loading is the in-flight state while
// the session read is still pending; callers render a neutral waiting
// indicator and fetch nothing until a terminal state is reached.
type State string

const (
	StateLoading       State = "loading"
	StateAllowed       State = "allowed"
	StateRedirectLogin State = "redirect-login"
	StateRedirectRole  State = "redirect-role"
)

// Decision is computed fresh per navigation check and never persisted.
type Decision struct {
	State  State
	Target string
}

// LoginPath is the unauthenticated entry point.
const LoginPath = "/login"

// roleHomes is the fixed role → dashboard mapping for mis-scoped sessions.
var roleHomes = map[domain.Role]string{
	domain.RolePatient: "/patient/dashboard",
	domain.RoleDoctor:  "/doctor/dashboard",
	domain.RoleAdmin:   "/admin/dashboard",
}

// HomeFor returns the dashboard for a role; anything unrecognized falls back
// to the login entry point.
func HomeFor(role domain.Role) string {
	if home, ok := roleHomes[role]; ok {
		return home
	}
	return LoginPath
}

// Decide runs the gate's transition rule:
//
//  1. no token or no role → RedirectLogin, preserving the current path so the
//     client can restore navigation after sign-in
//  2. a required role that the session does not carry → RedirectRole to the
//     caller's own dashboard
//  3. otherwise → Allowed
//
// requiredRole may be empty for views that only need authentication.
func Decide(sess session.Session, requiredRole domain.Role, currentPath string) Decision {
	if sess.Token == "" || !sess.Role.IsValid() {
		target := LoginPath
		if currentPath != "" && currentPath != LoginPath {
			target += "?next=" + url.QueryEscape(currentPath)
		}
		return Decision{State: StateRedirectLogin, Target: target}
	}
	if requiredRole != "" && sess.Role != requiredRole {
		return Decision{State: StateRedirectRole, Target: HomeFor(sess.Role)}
	}
	return Decision{State: StateAllowed}
}
