package accessgate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"medibook/internal/audit"
	"medibook/internal/platform/metrics"
	"medibook/internal/session"
	"medibook/pkg/domain"
	"medibook/pkg/httpx"
)

// staticReader resolves a fixed token table, standing in for the opaque
// session reader.
type staticReader struct {
	sessions map[string]session.Session
}

func (r *staticReader) Read(_ context.Context, token string) (session.Session, error) {
	if sess, ok := r.sessions[token]; ok {
		return sess, nil
	}
	return session.Session{}, errors.New("unknown token")
}

type MiddlewareSuite struct {
	suite.Suite
	router http.Handler
}

func TestMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}

func (s *MiddlewareSuite) SetupTest() {
	reader := &staticReader{sessions: map[string]session.Session{
		"patient-token": {Token: "patient-token", UserID: "p1", Role: domain.RolePatient},
		"doctor-token":  {Token: "doctor-token", UserID: "d1", Role: domain.RoleDoctor},
	}}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	gate := NewMiddleware(reader, audit.NewPublisher(16), logger, metrics.NewWith(prometheus.NewRegistry()))

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(gate.Require(domain.RolePatient))
		r.Get("/patient/dashboard", func(w http.ResponseWriter, req *http.Request) {
			sess := SessionFrom(req.Context())
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(sess.UserID))
		})
	})
	s.router = r
}

func (s *MiddlewareSuite) do(token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/patient/dashboard", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *MiddlewareSuite) TestMissingTokenIs401() {
	rec := s.do("")
	s.Equal(http.StatusUnauthorized, rec.Code)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.Equal(false, body["success"])
	s.Equal("Access denied", body["message"])
	s.NotContains(body, "data", "error envelope carries no data")
	s.Contains(rec.Header().Get(httpx.RedirectHeader), "/login")
}

func (s *MiddlewareSuite) TestUnknownTokenIs401() {
	rec := s.do("forged-token")
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *MiddlewareSuite) TestWrongRoleIs403WithOwnDashboard() {
	rec := s.do("doctor-token")
	s.Equal(http.StatusForbidden, rec.Code)

	var body map[string]any
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	s.Equal("Forbidden", body["message"])
	s.NotContains(body, "data", "error envelope carries no data")
	s.Equal("/doctor/dashboard", rec.Header().Get(httpx.RedirectHeader))
}

func (s *MiddlewareSuite) TestMatchingRolePassesSessionThrough() {
	rec := s.do("patient-token")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("p1", rec.Body.String())
}
