package application_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/hirewire/hirewire-api/internal/application"
	"github.com/hirewire/hirewire-api/internal/domain/entity"
	"github.com/hirewire/hirewire-api/pkg/helpers"
)

func newAuthFixture(t *testing.T) (*app.AuthService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	jwt := helpers.NewJWTManager("test-access", "test-refresh", time.Hour, 24*time.Hour)
	svc := app.NewAuthService(users, jwt, nil, nil, nil, "http://localhost/reset", time.Hour)
	return svc, users
}

func register(t *testing.T, svc *app.AuthService, email string) *entity.User {
	t.Helper()
	u, _, err := svc.Register(context.Background(), app.RegisterInput{
		Name:     "Test User",
		Email:    email,
		Password: "secret123",
		Role:     entity.RoleJobSeeker,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return u
}

func TestRegister(t *testing.T) {
	svc, _ := newAuthFixture(t)

	u, pair, err := svc.Register(context.Background(), app.RegisterInput{
		Name:     "Test User",
		Email:    "new@example.com",
		Password: "secret123",
		Role:     entity.RoleRecruiter,
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == "" {
		t.Error("no id assigned")
	}
	if u.Password == "secret123" {
		t.Error("password stored in plaintext")
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("token pair not issued")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc, "taken@example.com")

	_, _, err := svc.Register(context.Background(), app.RegisterInput{
		Name:     "Second",
		Email:    "taken@example.com",
		Password: "secret123",
		Role:     entity.RoleJobSeeker,
	})
	if !errors.Is(err, app.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc, "user@example.com")

	u, pair, err := svc.Login(context.Background(), "user@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if u.Email != "user@example.com" {
		t.Errorf("email = %q", u.Email)
	}
	if pair.AccessToken == "" {
		t.Error("no access token")
	}
}

func TestLogin_Failures(t *testing.T) {
	svc, users := newAuthFixture(t)
	seeded := register(t, svc, "user@example.com")

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "secret123"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "user@example.com", "wrongpass"); !errors.Is(err, app.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}

	users.users[seeded.ID].IsActive = false
	if _, _, err := svc.Login(context.Background(), "user@example.com", "secret123"); !errors.Is(err, app.ErrAccountDeactivated) {
		t.Errorf("deactivated: err = %v, want ErrAccountDeactivated", err)
	}
}

func TestRefresh_RotatesPair(t *testing.T) {
	svc, _ := newAuthFixture(t)
	u := register(t, svc, "user@example.com")

	_, pair, err := svc.Login(context.Background(), "user@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.AccessToken == "" || next.RefreshToken == "" {
		t.Error("refresh did not return a full pair")
	}

	// Deactivated accounts cannot refresh.
	svc.Users.(*memUserRepo).users[u.ID].IsActive = false
	if _, err := svc.Refresh(context.Background(), pair.RefreshToken); err == nil {
		t.Error("deactivated account should not refresh")
	}
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)
	register(t, svc, "user@example.com")

	_, pair, err := svc.Login(context.Background(), "user@example.com", "secret123")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Refresh(context.Background(), pair.AccessToken); err == nil {
		t.Error("access token must not be accepted as refresh token")
	}
}

// Unknown emails are a silent no-op so the endpoint cannot probe accounts.
func TestForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	svc, _ := newAuthFixture(t)
	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
