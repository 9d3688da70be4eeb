package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/entity"

	"gorm.io/gorm"
)

// sessionTTL is the fixed lifetime of a login session.
const sessionTTL = 7 * 24 * time.Hour

// SessionStore is the subset of the repository the authenticator needs.
type SessionStore interface {
	GetUserByIdentifier(ctx context.Context, identifier string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	CreateSession(ctx context.Context, session *entity.DbSession) error
	GetSessionByToken(ctx context.Context, token string) (*entity.DbSession, error)
	DeleteSessionByID(ctx context.Context, id uint) error
	DeleteSessionByToken(ctx context.Context, token string) (bool, error)
	DeleteSessionsByUser(ctx context.Context, userID uint) (int64, error)
}

// LoginResult carries the outcome of a successful login.
type LoginResult struct {
	User      *entity.DbUser
	Token     string
	ExpiresAt time.Time
}

// SessionService issues, validates, and revokes login sessions backed by
// opaque tokens stored in the database. Expected failures (bad credentials,
// unknown or expired tokens) are nil results, never errors; only
// infrastructure failures surface as errors.
type SessionService struct {
	store SessionStore
}

// NewSessionService creates a session authenticator over the given store.
func NewSessionService(store SessionStore) *SessionService {
	return &SessionService{store: store}
}

// Login verifies the credentials and, on success, persists a new session and
// returns the user together with its opaque token. A nil result means the
// identifier is unknown, the password does not match, or the account is
// disabled.
func (s *SessionService) Login(ctx context.Context, identifier, password string) (*LoginResult, error) {
	user, err := s.store.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, nil
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(sessionTTL)
	session := &entity.DbSession{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
	}
	if err := s.store.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ValidateSession resolves a token to its user. An unknown token yields nil.
// An expired session is deleted on read (lazy expiry) and also yields nil.
func (s *SessionService) ValidateSession(ctx context.Context, token string) (*entity.DbUser, error) {
	session, err := s.store.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := s.store.DeleteSessionByID(ctx, session.ID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	user, err := s.store.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// The owning account is gone; the session is worthless.
			if err := s.store.DeleteSessionByID(ctx, session.ID); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}

// Logout revokes the session matching the token. It reports whether a row was
// actually removed, so a second call returns false without error.
func (s *SessionService) Logout(ctx context.Context, token string) (bool, error) {
	return s.store.DeleteSessionByToken(ctx, token)
}

// RevokeAll deletes every session of the user and returns the count removed.
func (s *SessionService) RevokeAll(ctx context.Context, userID uint) (int64, error) {
	return s.store.DeleteSessionsByUser(ctx, userID)
}

// TTL exposes the fixed session lifetime for the cookie contract.
func (s *SessionService) TTL() time.Duration {
	return sessionTTL
}
