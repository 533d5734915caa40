// Package handler is the thin HTTP layer for accounts. It parses, runs the
// named rule set, and delegates to the service; business logic stays out.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"medibook/internal/accessgate"
	"medibook/internal/account/models"
	"medibook/internal/account/service"
	"medibook/internal/platform/metrics"
	"medibook/internal/rules"
	"medibook/pkg/httpx"
	"medibook/pkg/validation"
)

type Handler struct {
	accounts *service.Service
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(accounts *service.Service, m *metrics.Metrics, logger *slog.Logger) *Handler {
	return &Handler{accounts: accounts, metrics: m, logger: logger}
}

// Register wires the public auth routes and the gated profile routes.
func (h *Handler) Register(r chi.Router, gate *accessgate.Middleware) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(gate.Require(""))
		r.Post("/auth/logout", h.handleLogout)
		r.Get("/me", h.handleProfile)
		r.Patch("/me", h.handleUpdateProfile)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ValidationFailed(w, validation.Fail("body", "Invalid request body"))
		return
	}

	if verdict := rules.Register.Validate(req); !verdict.OK {
		h.metrics.ValidationFailure(rules.SetRegister)
		httpx.ValidationFailed(w, verdict)
		return
	}

	result, err := h.accounts.Register(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.Created(w, "Registration successful", result)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ValidationFailed(w, validation.Fail("body", "Invalid request body"))
		return
	}

	if verdict := rules.Login.Validate(req); !verdict.OK {
		h.metrics.ValidationFailure(rules.SetLogin)
		httpx.ValidationFailed(w, verdict)
		return
	}

	result, err := h.accounts.Login(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.OK(w, "Login successful", result)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if err := h.accounts.Logout(r.Context(), token); err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.OK(w, "Logged out", nil)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess := accessgate.SessionFrom(r.Context())
	user, err := h.accounts.Profile(r.Context(), sess.UserID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.OK(w, "Profile retrieved", user)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.ValidationFailed(w, validation.Fail("body", "Invalid request body"))
		return
	}

	if verdict := rules.UpdateProfile.Validate(req); !verdict.OK {
		h.metrics.ValidationFailure(rules.SetUpdateProfile)
		httpx.ValidationFailed(w, verdict)
		return
	}

	sess := accessgate.SessionFrom(r.Context())
	user, err := h.accounts.UpdateProfile(r.Context(), sess.UserID, req)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.OK(w, "Profile updated", user)
}
