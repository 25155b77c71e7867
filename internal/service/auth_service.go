package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"quillhub/internal/common"
	"quillhub/internal/models"
	"quillhub/internal/repository"
)

const minPasswordLength = 8

type AuthService interface {
	Signup(ctx context.Context, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	// LogoutAll ends every session of the user, on every device.
	LogoutAll(ctx context.Context, userID int64) error
}

// AuthResult carries the raw token for the cookie. It is never persisted.
type AuthResult struct {
	User    *models.User
	Session *models.Session
	Token   string
}

type authService struct {
	userRepo repository.UserRepository
	sessions SessionService
	hasher   PasswordHasher
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionService, hasher PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Signup(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, common.Invalid("email", "must be a valid email address")
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, common.Invalid("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if len(password) > MaxPasswordBytes {
		return nil, common.Invalid("password", fmt.Sprintf("must be at most %d bytes", MaxPasswordBytes))
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Memberships:  []models.CompanyMembership{},
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	user.Memberships, err = s.userRepo.GetMemberships(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	return s.startSession(ctx, user)
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Invalidate(ctx, token)
}

func (s *authService) LogoutAll(ctx context.Context, userID int64) error {
	return s.sessions.InvalidateAllForUser(ctx, userID)
}

func (s *authService) startSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.sessions.GenerateToken()
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create(ctx, token, user.UserID)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Session: session, Token: token}, nil
}
