package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"quillhub/internal/common"
	"quillhub/internal/config"
	"quillhub/internal/models"
	"quillhub/internal/repository"
)

// SessionService issues and checks opaque bearer tokens. Only HashToken(token)
// is ever stored.
type SessionService interface {
	GenerateToken() (string, error)
	Create(ctx context.Context, token string, userID int64) (*models.Session, error)
	// Validate returns nil, nil, nil for unknown or expired tokens. Sessions
	// inside the renewal window are extended before returning.
	Validate(ctx context.Context, token string) (*models.Session, *models.User, error)
	Invalidate(ctx context.Context, token string) error
	InvalidateAllForUser(ctx context.Context, userID int64) error
}

const tokenBytes = 20

var tokenEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type sessionService struct {
	repo repository.SessionRepository
	cfg  config.Session
	now  func() time.Time
}

type SessionOption func(*sessionService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) SessionOption {
	return func(s *sessionService) {
		s.now = now
	}
}

func NewSessionService(repo repository.SessionRepository, cfg config.Session, opts ...SessionOption) SessionService {
	s := &sessionService{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *sessionService) GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("error generating session token: %w", err)
	}
	return strings.ToLower(tokenEncoding.EncodeToString(b)), nil
}

// HashToken derives the storage key for a token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *sessionService) Create(ctx context.Context, token string, userID int64) (*models.Session, error) {
	session := &models.Session{
		ID:        HashToken(token),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.cfg.Duration),
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *sessionService) Validate(ctx context.Context, token string) (*models.Session, *models.User, error) {
	if token == "" {
		return nil, nil, nil
	}

	id := HashToken(token)

	session, user, err := s.repo.FindWithUser(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	now := s.now()
	if !now.Before(session.ExpiresAt) {
		if err := s.repo.Delete(ctx, id); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}

	if session.ExpiresAt.Sub(now) < s.cfg.RenewWindow {
		expiresAt := now.Add(s.cfg.Duration)
		if err := s.repo.UpdateExpiry(ctx, id, expiresAt); err != nil {
			return nil, nil, err
		}
		session.ExpiresAt = expiresAt
	}

	return session, user, nil
}

func (s *sessionService) Invalidate(ctx context.Context, token string) error {
	return s.repo.Delete(ctx, HashToken(token))
}

func (s *sessionService) InvalidateAllForUser(ctx context.Context, userID int64) error {
	return s.repo.DeleteByUserID(ctx, userID)
}
