package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bankcore/customer-service/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubAuthRepo struct {
	byUsername map[string]*domain.User
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{byUsername: make(map[string]*domain.User)}
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = "user_" + user.Username
	r.byUsername[user.Username] = &clone
	result := clone
	return &result, nil
}

const testSecret = "test-secret"

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAuthService_Register_Success(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "ops1", "s3cret", "ops1@bank.test", domain.RoleOperator)
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected a stored id")
	}
	if user.Role != domain.RoleOperator {
		t.Errorf("expected role %q, got %q", domain.RoleOperator, user.Role)
	}
	if user.PasswordHash == "s3cret" {
		t.Error("password must be hashed, not stored verbatim")
	}
}

func TestAuthService_Register_RejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	_, err := svc.Register(context.Background(), "u", "p", "", "superuser")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown role, got %v", err)
	}
}

func TestAuthService_Register_RejectsMissingFields(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	cases := []struct{ username, password, role string }{
		{"", "p", domain.RoleAdmin},
		{"u", "", domain.RoleAdmin},
		{"u", "p", ""},
	}
	for _, tc := range cases {
		if _, err := svc.Register(context.Background(), tc.username, tc.password, "", tc.role); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("register(%q,%q,%q): expected ErrInvalidCredentials, got %v", tc.username, tc.password, tc.role, err)
		}
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "ops1", "p1", "", domain.RoleOperator); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "ops1", "p2", "", domain.RoleOperator)
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAuthService_Login_IssuesValidToken(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "admin1", "s3cret", "", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "admin1", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "admin1" {
		t.Errorf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims["username"] != "admin1" || claims["role"] != domain.RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token must expire")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "admin1", "right", "", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	_, _, err := svc.Login(context.Background(), "admin1", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost", "p")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), testSecret, time.Hour)

	if _, _, err := svc.Login(context.Background(), "", "p"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty username: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "u", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}
