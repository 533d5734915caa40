package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"medibook/internal/accessgate"
	"medibook/internal/account/handler"
	"medibook/internal/account/service"
	"medibook/internal/account/store"
	"medibook/internal/audit"
	"medibook/internal/platform/metrics"
	"medibook/internal/session"
)

// AccountFlowSuite drives the auth and profile routes through a real router
// with in-memory stores, the way a browser client would.
type AccountFlowSuite struct {
	suite.Suite
	router chi.Router
}

func TestAccountFlowSuite(t *testing.T) {
	suite.Run(t, new(AccountFlowSuite))
}

func (s *AccountFlowSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.NewWith(prometheus.NewRegistry())

	sessions := session.NewManager("test-signing-key", time.Hour, session.NewInMemoryStore())
	auditor := audit.NewPublisher(16)
	accounts := service.New(store.NewInMemoryStore(), sessions, auditor, m, logger)

	gate := accessgate.NewMiddleware(sessions, auditor, logger, m)
	h := handler.New(accounts, m, logger)

	s.router = chi.NewRouter()
	h.Register(s.router, gate)
}

func (s *AccountFlowSuite) do(method, path, token string, payload any) *httptest.ResponseRecorder {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body).WithContext(context.Background())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *AccountFlowSuite) body(rec *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func (s *AccountFlowSuite) register(email string) string {
	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":     email,
		"password":  "hunter22",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"role":      "patient",
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return s.body(rec)["data"].(map[string]any)["token"].(string)
}

func (s *AccountFlowSuite) TestRegisterReturnsTokenAndUser() {
	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":     "Ada@Example.com",
		"password":  "hunter22",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"role":      "patient",
	})

	s.Require().Equal(http.StatusCreated, rec.Code)
	body := s.body(rec)
	s.Equal(true, body["success"])
	s.Equal("Registration successful", body["message"])

	data := body["data"].(map[string]any)
	s.NotEmpty(data["token"])
	user := data["user"].(map[string]any)
	s.Equal("ada@example.com", user["email"], "email is normalized before storage")
	s.NotContains(user, "passwordHash")
}

func (s *AccountFlowSuite) TestRegisterRejectsInvalidPayloadWithAllFieldErrors() {
	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "bad",
		"password": "123",
	})

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	body := s.body(rec)
	s.Equal("Validation failed", body["message"])
	s.Len(body["errors"].([]any), 4)
}

func (s *AccountFlowSuite) TestRegisterDuplicateEmailIsFieldError() {
	s.register("ada@example.com")

	rec := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email":     "ADA@example.com",
		"password":  "different8",
		"firstName": "Second",
		"lastName":  "Account",
	})

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	body := s.body(rec)
	errs := body["errors"].([]any)
	s.Require().Len(errs, 1)
	first := errs[0].(map[string]any)
	s.Equal("email", first["field"])
	s.Equal("Email is already registered", first["message"])
}

func (s *AccountFlowSuite) TestLoginSucceedsWithRegisteredCredentials() {
	s.register("ada@example.com")

	rec := s.do(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "ada@example.com",
		"password": "hunter22",
	})

	s.Require().Equal(http.StatusOK, rec.Code)
	data := s.body(rec)["data"].(map[string]any)
	s.NotEmpty(data["token"])
}

func (s *AccountFlowSuite) TestLoginFailureDoesNotRevealWhichFieldWasWrong() {
	s.register("ada@example.com")

	for name, creds := range map[string]map[string]string{
		"wrong password": {"email": "ada@example.com", "password": "not-the-one"},
		"unknown email":  {"email": "nobody@example.com", "password": "hunter22"},
	} {
		rec := s.do(http.MethodPost, "/auth/login", "", creds)
		s.Require().Equal(http.StatusUnauthorized, rec.Code, name)
		s.Equal("Invalid email or password", s.body(rec)["message"], name)
	}
}

func (s *AccountFlowSuite) TestMalformedBodyIsValidationFailure() {
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Equal("Validation failed", s.body(rec)["message"])
}

func (s *AccountFlowSuite) TestProfileRequiresSession() {
	rec := s.do(http.MethodGet, "/me", "", nil)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Access denied", s.body(rec)["message"])
}

func (s *AccountFlowSuite) TestProfileRoundTrip() {
	token := s.register("ada@example.com")

	rec := s.do(http.MethodGet, "/me", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	user := s.body(rec)["data"].(map[string]any)
	s.Equal("ada@example.com", user["email"])
	s.Equal("Ada", user["firstName"])
}

func (s *AccountFlowSuite) TestUpdateProfileAppliesOnlyPresentFields() {
	token := s.register("ada@example.com")

	rec := s.do(http.MethodPatch, "/me", token, map[string]string{
		"phone": "+44 20 7946 0958",
	})

	s.Require().Equal(http.StatusOK, rec.Code)
	user := s.body(rec)["data"].(map[string]any)
	s.Equal("+44 20 7946 0958", user["phone"])
	s.Equal("Ada", user["firstName"], "absent fields stay untouched")
}

func (s *AccountFlowSuite) TestUpdateProfileRejectsBadPhone() {
	token := s.register("ada@example.com")

	rec := s.do(http.MethodPatch, "/me", token, map[string]string{
		"phone": "not a phone!",
	})

	s.Require().Equal(http.StatusBadRequest, rec.Code)
	errs := s.body(rec)["errors"].([]any)
	s.Require().Len(errs, 1)
	s.Equal("phone", errs[0].(map[string]any)["field"])
}

func (s *AccountFlowSuite) TestLogoutRevokesTheSession() {
	token := s.register("ada@example.com")

	rec := s.do(http.MethodPost, "/auth/logout", token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/me", token, nil)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Equal("Access denied", s.body(rec)["message"])
}
