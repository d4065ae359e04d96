package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/countryexplorer/countryexplorer/internal/auth"
	"github.com/countryexplorer/countryexplorer/internal/metrics"
	"github.com/countryexplorer/countryexplorer/internal/testutil"
)

func newAuthService(t *testing.T) (*AuthService, *testutil.MemStore, *auth.TokenCodec) {
	t.Helper()
	store := testutil.NewMemStore()
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	return NewAuthService(store, codec, metrics.NewNoop()), store, codec
}

func TestAuthService_Register(t *testing.T) {
	svc, store, _ := newAuthService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty user ID")
	}

	user, err := store.GetUserByID(ctx, id)
	if err != nil {
		t.Fatalf("stored user not found: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected username alice, got %q", user.Username)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Error("password must be stored hashed, never plain")
	}
	if len(user.Favorites) != 0 {
		t.Errorf("new user should start with empty favorites, got %v", user.Favorites)
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	firstID, err := svc.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err = svc.Register(ctx, "alice", "other")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}

	// The first registration must be unaffected
	token, err := svc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Login after duplicate attempt failed: %v", err)
	}
	if token == "" || firstID == "" {
		t.Error("first user should remain fully usable")
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "", "secret"); !errors.Is(err, ErrUsernameRequired) {
		t.Errorf("expected ErrUsernameRequired, got %v", err)
	}
	if _, err := svc.Register(ctx, "alice", ""); !errors.Is(err, ErrPasswordRequired) {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	svc, _, codec := newAuthService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	token, err := svc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	userID, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if userID != id {
		t.Errorf("token user mismatch: got %q, want %q", userID, id)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, "alice", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.Login(context.Background(), "nobody", "secret")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestAuthService_Metrics(t *testing.T) {
	store := testutil.NewMemStore()
	codec := auth.NewTokenCodec([]byte("test-secret"), time.Hour)
	recorder := metrics.NewInMemory()
	svc := NewAuthService(store, codec, recorder)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Login(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	_, _ = svc.Login(ctx, "alice", "wrong")

	snap := recorder.Snapshot()
	if snap.UsersRegistered != 1 {
		t.Errorf("expected 1 registration, got %d", snap.UsersRegistered)
	}
	if snap.LoginSuccesses != 1 || snap.LoginFailures != 1 {
		t.Errorf("expected 1 success and 1 failure, got %d/%d", snap.LoginSuccesses, snap.LoginFailures)
	}
}
