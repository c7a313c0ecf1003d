package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wonderfinance/internal/auth"
	"wonderfinance/internal/storage"
)

func userService(t *testing.T) (*UserService, *storage.Repository) {
	t.Helper()
	repo, err := storage.New(t.TempDir() + "/users.db")
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(repo, tokens), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := userService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, "jane@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("register should return a token")
	}

	if _, err := svc.Login(ctx, "jane@example.com", "s3cret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := userService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, "jane@example.com", "other"); !errors.Is(err, storage.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := userService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Login(ctx, "jane@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := userService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "pw")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown users must look like bad credentials, got %v", err)
	}
}

func TestUpdateProfileRejectsBadRisk(t *testing.T) {
	svc, _ := userService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "jane@example.com", "s3cret"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	risk := 11
	err := svc.UpdateProfile(ctx, "jane@example.com", storage.ProfileUpdate{RiskTolerance: &risk})
	if err == nil {
		t.Fatal("expected risk tolerance validation error")
	}
}
