package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/common"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/models"
	"github.com/dmitrijs2005/pokedex/internal/repositories/metadata"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed snapshot stored under common.KeyCurrentUser.
// The user id travels in the subject claim.
type SessionClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Name     string `json:"name"`
}

// SessionHolder persists who is logged in across restarts.
type SessionHolder interface {
	Login(ctx context.Context, user *models.User) (*models.Session, error)
	// Current returns (nil, nil) when nobody is logged in or the stored
	// session cannot be trusted.
	Current(ctx context.Context) (*models.Session, error)
	Logout(ctx context.Context) error
}

type sessionService struct {
	store  metadata.Repository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	logger logging.Logger
}

// NewSessionService signs sessions with secret. A zero ttl issues sessions
// that never expire.
func NewSessionService(store metadata.Repository, secret []byte, ttl time.Duration, logger logging.Logger) SessionHolder {
	return &sessionService{
		store:  store,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With("component", "session"),
	}
}

func (s *sessionService) Login(ctx context.Context, user *models.User) (*models.Session, error) {
	now := s.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Email:    user.Email,
		Nickname: user.Nickname,
		Name:     user.Name,
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}
	if err := s.store.Set(ctx, common.KeyCurrentUser, []byte(token)); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return claims.session(), nil
}

func (s *sessionService) Current(ctx context.Context) (*models.Session, error) {
	raw, err := s.store.Get(ctx, common.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if raw == nil {
		return nil, nil
	}

	claims := &SessionClaims{}
	_, err = jwt.ParseWithClaims(string(raw), claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err == nil && claims.Subject == "" {
		err = errors.New("session has no subject")
	}
	if err != nil {
		s.logger.Warn(ctx, "discarding stored session", "error", err)
		if derr := s.store.Delete(ctx, common.KeyCurrentUser); derr != nil {
			return nil, fmt.Errorf("failed to discard session: %w", derr)
		}
		return nil, nil
	}

	return claims.session(), nil
}

func (s *sessionService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, common.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (c *SessionClaims) session() *models.Session {
	sess := &models.Session{
		UserID:   c.Subject,
		Email:    c.Email,
		Nickname: c.Nickname,
		Name:     c.Name,
	}
	if c.IssuedAt != nil {
		sess.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		t := c.ExpiresAt.Time
		sess.ExpiresAt = &t
	}
	return sess
}
