package accessgate

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"medibook/internal/audit"
	"medibook/internal/platform/metrics"
	"medibook/internal/session"
	"medibook/pkg/domain"
	"medibook/pkg/httpx"
)

// Context keys for the resolved session, unexported types to avoid
// collisions.
type contextKeySession struct{}

var ContextKeySession = contextKeySession{}

// SessionFrom retrieves the gated session from the request context.
func SessionFrom(ctx context.Context) session.Session {
	sess, ok := ctx.Value(ContextKeySession).(session.Session)
	if !ok {
		return session.Session{}
	}
	return sess
}

// Middleware runs the gate against inbound HTTP requests. Each request is a
// fresh evaluation; nothing is cached across navigations.
type Middleware struct {
	reader  session.Reader
	auditor *audit.Publisher
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewMiddleware(reader session.Reader, auditor *audit.Publisher, logger *slog.Logger, m *metrics.Metrics) *Middleware {
	return &Middleware{reader: reader, auditor: auditor, logger: logger, metrics: m}
}

// Require gates a route on a role. Pass an empty role for routes that only
// need authentication. RedirectLogin maps to 401, RedirectRole to 403; both
// carry the redirect target so navigation clients can follow it.
func (m *Middleware) Require(required domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.readSession(r)
			decision := Decide(sess, required, r.URL.Path)
			m.metrics.GateDecision(string(decision.State))

			switch decision.State {
			case StateAllowed:
				ctx := context.WithValue(r.Context(), ContextKeySession, sess)
				next.ServeHTTP(w, r.WithContext(ctx))
			case StateRedirectRole:
				m.auditor.Emit(audit.Event{
					UserID: sess.UserID,
					Action: audit.ActionAccessDenied,
					Detail: r.URL.Path,
				})
				m.logger.WarnContext(r.Context(), "role mismatch",
					"path", r.URL.Path,
					"required_role", required.String(),
					"session_role", sess.Role.String(),
				)
				httpx.Forbidden(w, decision.Target)
			default:
				m.auditor.Emit(audit.Event{Action: audit.ActionAccessDenied, Detail: r.URL.Path})
				m.logger.WarnContext(r.Context(), "unauthenticated request",
					"path", r.URL.Path,
				)
				httpx.Unauthorized(w, decision.Target)
			}
		})
	}
}

// readSession resolves the bearer token to a session. Any failure reads as
// an absent session; the gate turns that into RedirectLogin.
func (m *Middleware) readSession(r *http.Request) session.Session {
	authHeader := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return session.Session{}
	}
	sess, err := m.reader.Read(r.Context(), token)
	if err != nil {
		return session.Session{}
	}
	return sess
}
