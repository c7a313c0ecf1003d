package services

import (
	"context"
	"errors"
	"fmt"

	"wonderfinance/internal/auth"
	"wonderfinance/internal/core"
	"wonderfinance/internal/storage"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService handles registration, login and profile management.
type UserService struct {
	repo   *storage.Repository
	tokens *auth.TokenManager
}

func NewUserService(repo *storage.Repository, tokens *auth.TokenManager) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Register creates an account and returns a fresh token for it.
func (s *UserService) Register(ctx context.Context, email, password string) (string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := core.User{
		Email:         email,
		PasswordHash:  hash,
		RiskTolerance: 5,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return "", err
	}

	return s.tokens.Issue(email)
}

// Login checks the credentials and returns a token. Unknown accounts and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUser(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(email)
}

// Profile returns the account's profile fields.
func (s *UserService) Profile(ctx context.Context, email string) (core.User, error) {
	return s.repo.GetUser(ctx, email)
}

// UpdateProfile patches the given profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, email string, upd storage.ProfileUpdate) error {
	if upd.RiskTolerance != nil && (*upd.RiskTolerance < 1 || *upd.RiskTolerance > 10) {
		return core.ErrInvalidRisk
	}
	return s.repo.UpdateProfile(ctx, email, upd)
}
