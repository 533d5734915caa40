// Package service owns account business logic: registration, login, and
// profile updates. Validation verdicts are settled before anything here
// runs; a failed verdict never reaches a store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"medibook/internal/account/models"
	"medibook/internal/account/store"
	"medibook/internal/audit"
	"medibook/internal/platform/metrics"
	"medibook/internal/session"
	"medibook/pkg/apperrors"
	"medibook/pkg/domain"
	"medibook/pkg/validation"
)

type Service struct {
	users    store.Store
	sessions *session.Manager
	auditor  *audit.Publisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func New(users store.Store, sessions *session.Manager, auditor *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{users: users, sessions: sessions, auditor: auditor, metrics: m, logger: logger}
}

// Register creates an account and opens a session. The email is normalized
// before storage so lookups are case-insensitive; a duplicate reads as a
// field-level failure, not a server error.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResult{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RolePatient
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        validation.NormalizeEmail(req.Email),
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Role:         role,
		Phone:        strings.TrimSpace(req.Phone),
		CreatedAt:    time.Now(),
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return models.AuthResult{}, apperrors.Validation(
				validation.Fail("email", "Email is already registered"))
		}
		return models.AuthResult{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	sess, err := s.sessions.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return models.AuthResult{}, err
	}

	s.metrics.UsersRegistered.Inc()
	s.auditor.Emit(audit.Event{UserID: user.ID, Action: audit.ActionUserRegistered})
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "role", user.Role.String())

	return models.AuthResult{User: user, Token: sess.Token}, nil
}

// Login verifies credentials and opens a session. The failure message does
// not distinguish a missing account from a wrong password.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.AuthResult{}, s.failLogin(ctx, req.Email)
		}
		return models.AuthResult{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return models.AuthResult{}, s.failLogin(ctx, req.Email)
	}

	sess, err := s.sessions.Issue(ctx, user.ID, user.Role)
	if err != nil {
		return models.AuthResult{}, err
	}
	return models.AuthResult{User: user, Token: sess.Token}, nil
}

func (s *Service) failLogin(ctx context.Context, email string) error {
	s.auditor.Emit(audit.Event{Action: audit.ActionLoginFailed, Subject: validation.NormalizeEmail(email)})
	s.logger.WarnContext(ctx, "login failed")
	return apperrors.New(apperrors.CodeUnauthenticated, "Invalid email or password")
}

// Logout revokes the presented session token.
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return err
	}
	s.auditor.Emit(audit.Event{Action: audit.ActionSessionRevoked})
	return nil
}

// Profile returns the account for an authenticated user.
func (s *Service) Profile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, apperrors.NotFound("User")
		}
		return models.User{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}
	return user, nil
}

// UpdateProfile applies the present fields of a partial update.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req models.UpdateProfileRequest) (models.User, error) {
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if req.FirstName != nil {
		user.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		user.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.User{}, apperrors.NotFound("User")
		}
		return models.User{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}
	return user, nil
}
