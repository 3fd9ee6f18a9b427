package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/stockhaus/stockhaus-backend/internal/apperr"
	"github.com/stockhaus/stockhaus-backend/internal/auth/domain"
	"github.com/stockhaus/stockhaus-backend/internal/auth/token"
	"github.com/stockhaus/stockhaus-backend/internal/metrics"
	"github.com/stockhaus/stockhaus-backend/internal/users"
)

type CredentialVerifier interface {
	Verify(username, password string) bool
}

type IdentityStore interface {
	EnsureUser(ctx context.Context, username string) (string, error)
	Exists(ctx context.Context, userID string) (bool, error)
}

// LoginThrottle limits repeated failed logins. A nil throttle disables it.
type LoginThrottle interface {
	Allowed(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type AuthService struct {
	creds    CredentialVerifier
	users    IdentityStore
	tokens   *token.Manager
	throttle LoginThrottle
	log      logrus.FieldLogger
}

func NewAuthService(creds CredentialVerifier, users IdentityStore, tokens *token.Manager, throttle LoginThrottle, log logrus.FieldLogger) *AuthService {
	return &AuthService{
		creds:    creds,
		users:    users,
		tokens:   tokens,
		throttle: throttle,
		log:      log,
	}
}

// Login verifies credentials, resolves the caller's identity and issues a
// session token. Failed attempts are throttled per identity and client
// address.
func (s *AuthService) Login(ctx context.Context, username, password, clientIP string) (*domain.Session, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}
	key := throttleKey(users.IdentityKey(username), clientIP)

	if s.throttle != nil {
		ok, err := s.throttle.Allowed(ctx, key)
		if err != nil {
			s.log.WithError(err).Warn("login throttle unavailable")
		}
		if !ok {
			metrics.RecordLogin("throttled")
			return nil, domain.ErrTooManyAttempts
		}
	}

	if !s.creds.Verify(username, password) {
		metrics.RecordLogin("failure")
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, key); err != nil {
				s.log.WithError(err).Warn("failed to record login failure")
			}
		}
		return nil, domain.ErrInvalidCredentials
	}

	userID, err := s.users.EnsureUser(ctx, username)
	if err != nil {
		return nil, apperr.Unexpected("Unable to create session", err)
	}

	tok, exp, err := s.tokens.Issue(username, userID)
	if err != nil {
		return nil, apperr.Unexpected("Unable to create session", err)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, key); err != nil {
			s.log.WithError(err).Warn("failed to reset login throttle")
		}
	}
	metrics.RecordLogin("success")
	s.log.WithFields(logrus.Fields{"user_id": userID, "username": username}).Info("login succeeded")

	return &domain.Session{Token: tok, Username: username, UserID: userID, ExpiresAt: exp}, nil
}

func throttleKey(identityKey, clientIP string) string {
	if clientIP == "" {
		return identityKey
	}
	return identityKey + "@" + clientIP
}

// Authenticate resolves a session token to the identity it was issued for.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (domain.Identity, error) {
	claims, err := s.tokens.Parse(tokenString)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	ok, err := s.users.Exists(ctx, claims.UserID)
	if err != nil {
		return domain.Identity{}, apperr.Unexpected("Unable to verify session", err)
	}
	if !ok {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	return domain.Identity{UserID: claims.UserID, Username: claims.Subject}, nil
}
