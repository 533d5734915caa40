// Package session issues and reads the portal's session tokens. The access
// gate only consumes the Reader: is there a valid token, and what role does
// it carry. Token issuance is JWT over HS256 with the session recorded in a
// store so logout actually revokes.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"medibook/pkg/apperrors"
	"medibook/pkg/domain"
)

// Session is the ephemeral state the gate reads: an opaque token plus the
// role claim the token carries.
type Session struct {
	Token     string
	UserID    string
	Role      domain.Role
	ExpiresAt time.Time
}

// Reader is the opaque session reader consumed by the access gate.
type Reader interface {
	Read(ctx context.Context, token string) (Session, error)
}

// Store persists active sessions keyed by token ID so revocation works even
// while the JWT itself still verifies.
type Store interface {
	Save(ctx context.Context, s Session) error
	Find(ctx context.Context, tokenID string) (Session, error)
	Delete(ctx context.Context, tokenID string) error
}

// ErrNotFound keeps storage-specific misses consistent across session store
// implementations.
var ErrNotFound = errors.New("session not found")

// Claims are the JWT claims carried by a session token.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and reads session tokens.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
	store      Store
}

func NewManager(signingKey string, ttl time.Duration, store Store) *Manager {
	return &Manager{signingKey: []byte(signingKey), ttl: ttl, store: store}
}

// Issue signs a token carrying the user's role claim and records the session.
func (m *Manager) Issue(ctx context.Context, userID string, role domain.Role) (Session, error) {
	expiresAt := time.Now().Add(m.ttl)
	tokenID := uuid.NewString()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ID:        tokenID,
		},
	})

	signed, err := token.SignedString(m.signingKey)
	if err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	sess := Session{Token: tokenID, UserID: userID, Role: role, ExpiresAt: expiresAt}
	if err := m.store.Save(ctx, sess); err != nil {
		return Session{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}
	sess.Token = signed
	return sess, nil
}

// Read verifies the JWT and confirms the session is still stored. A verified
// token whose session was revoked reads as unauthenticated.
func (m *Manager) Read(ctx context.Context, tokenString string) (Session, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return Session{}, err
	}

	stored, err := m.store.Find(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, apperrors.New(apperrors.CodeUnauthenticated, "Access denied")
		}
		return Session{}, apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}

	role := domain.Role(claims.Role)
	if !role.IsValid() {
		return Session{}, apperrors.New(apperrors.CodeUnauthenticated, "Access denied")
	}
	return Session{
		Token:     tokenString,
		UserID:    claims.UserID,
		Role:      role,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Revoke deletes the stored session for a still-valid token (logout).
func (m *Manager) Revoke(ctx context.Context, tokenString string) error {
	claims, err := m.parse(tokenString)
	if err != nil {
		return err
	}
	if err := m.store.Delete(ctx, claims.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return apperrors.Wrap(apperrors.CodeInternal, "Server Error", err)
	}
	return nil
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return m.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "Access denied")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, apperrors.New(apperrors.CodeUnauthenticated, "Access denied")
	}
	return claims, nil
}
