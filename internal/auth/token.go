package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/yukikurage/trip-planner-api/internal/constants"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/logging"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrTokenPurpose = errors.New("token issued for a different purpose")
	ErrNoSubject    = errors.New("token carries no subject")
)

// Claims is the payload of every token this service signs. Purpose is empty
// for session tokens.
type Claims struct {
	LegacyID string `json:"id,omitempty"`
	Purpose  string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject, falling back to the legacy "id" claim.
func (c *Claims) UserID() string {
	if c.Subject != "" {
		return c.Subject
	}
	return c.LegacyID
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
	denylist   Denylist
	now        func() time.Time
}

// NewTokenManager fails with a Configuration error when secret is empty.
// A nil denylist disables revocation checks.
func NewTokenManager(secret string, denylist Denylist) (*TokenManager, error) {
	if secret == "" {
		return nil, apierrors.Configuration("token signing secret is not set")
	}
	return &TokenManager{
		secret:     []byte(secret),
		sessionTTL: constants.SessionTokenTTL,
		resetTTL:   constants.ResetTokenTTL,
		denylist:   denylist,
		now:        time.Now,
	}, nil
}

// SessionTTL is the lifetime of session tokens.
func (m *TokenManager) SessionTTL() time.Duration {
	return m.sessionTTL
}

// IssueSession signs a session token for userID.
func (m *TokenManager) IssueSession(userID string) (string, error) {
	return m.sign(userID, "", m.sessionTTL)
}

// IssueReset signs a password-reset token and returns its expiry.
func (m *TokenManager) IssueReset(userID string) (string, time.Time, error) {
	expiresAt := m.now().Add(m.resetTTL)
	token, err := m.sign(userID, constants.ResetTokenPurpose, m.resetTTL)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (m *TokenManager) sign(userID, purpose string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := Claims{
		LegacyID: userID,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (m *TokenManager) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	token, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID() == "" {
		return nil, ErrNoSubject
	}
	return claims, nil
}

// VerifySession returns the claims of a valid, unrevoked session token and
// nil for anything else. It never fails loudly; callers decide what nil means.
func (m *TokenManager) VerifySession(ctx context.Context, raw string) *Claims {
	if raw == "" {
		return nil
	}
	claims, err := m.parse(raw)
	if err != nil || claims.Purpose != "" {
		return nil
	}
	if m.denylist != nil && claims.ID != "" {
		revoked, err := m.denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			logging.Warn().Err(err).Msg("token denylist lookup failed")
			return nil
		}
		if revoked {
			return nil
		}
	}
	return claims
}

// VerifyReset validates a password-reset token.
func (m *TokenManager) VerifyReset(raw string) (*Claims, error) {
	claims, err := m.parse(raw)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != constants.ResetTokenPurpose {
		return nil, ErrTokenPurpose
	}
	return claims, nil
}

// Revoke denylists a session token until it would have expired anyway.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if m.denylist == nil || claims == nil || claims.ID == "" {
		return nil
	}
	until := m.now().Add(m.sessionTTL)
	if claims.ExpiresAt != nil {
		until = claims.ExpiresAt.Time
	}
	return m.denylist.Revoke(ctx, claims.ID, until)
}
