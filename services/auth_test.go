package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mathew-2006/school-website/models"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore is an in-memory UserStore for tests
type fakeUserStore struct {
	users           map[string]*models.User // by id
	tokens          map[string]*models.RefreshToken
	passwordUpdates []string
	failUpdate      error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:  make(map[string]*models.User),
		tokens: make(map[string]*models.RefreshToken),
	}
}

func (f *fakeUserStore) addUser(id, email, password string) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{ID: id, Email: email, Password: string(hash), Role: "student"}
	f.users[id] = user
	return user
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return f.users[id], nil
}

func (f *fakeUserStore) UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error {
	if f.failUpdate != nil {
		return f.failUpdate
	}
	f.passwordUpdates = append(f.passwordUpdates, userID)
	return nil
}

func (f *fakeUserStore) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	f.tokens[token.Token] = token
	return nil
}

func (f *fakeUserStore) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := f.tokens[token]
	if !ok || t.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return t, nil
}

func (f *fakeUserStore) DeleteAllUserTokens(ctx context.Context, userID string) error {
	for k, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, k)
		}
	}
	return nil
}

func newTestAuthService(store UserStore) *AuthService {
	return NewAuthService(store, AuthConfig{
		JWTSecret:      "test-secret",
		PasswordPolicy: "basic",
		LoginPath:      "/login",
	})
}

func TestUpdatePassword(t *testing.T) {
	tests := []struct {
		name        string
		user        *models.User
		password    string
		expectErr   string
		expectWrite bool
	}{
		{
			name:      "No session fails regardless of password validity",
			user:      nil,
			password:  "Perfectly1Valid",
			expectErr: "No user is currently signed in",
		},
		{
			name:      "Too short",
			user:      &models.User{ID: "u1"},
			password:  "abc",
			expectErr: "Password must be at least 6 characters long",
		},
		{
			name:        "Six characters proceeds to the store",
			user:        &models.User{ID: "u1"},
			password:    "abcdef",
			expectWrite: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeUserStore()
			svc := newTestAuthService(store)
			defer svc.Cleanup()

			err := svc.UpdatePassword(context.Background(), tt.user, tt.password)

			if tt.expectErr != "" {
				if err == nil {
					t.Fatal("expected an error")
				}
				if err.Error() != tt.expectErr {
					t.Errorf("error = %q, expected %q", err.Error(), tt.expectErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			wrote := len(store.passwordUpdates) > 0
			if wrote != tt.expectWrite {
				t.Errorf("store write = %v, expected %v", wrote, tt.expectWrite)
			}
		})
	}
}

func TestUpdatePasswordErrorKinds(t *testing.T) {
	store := newFakeUserStore()
	svc := newTestAuthService(store)
	defer svc.Cleanup()

	if err := svc.UpdatePassword(context.Background(), nil, "abcdef"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	err := svc.UpdatePassword(context.Background(), &models.User{ID: "u1"}, "abc")
	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("expected a ValidationError, got %v", err)
	}
}

func TestLoginAndVerify(t *testing.T) {
	store := newFakeUserStore()
	store.addUser("u1", "jane@example.com", "password")
	svc := newTestAuthService(store)
	defer svc.Cleanup()

	resp, err := svc.Login(context.Background(), "jane@example.com", "password")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}

	user, err := svc.VerifyAccessToken(context.Background(), resp.AccessToken)
	if err != nil {
		t.Fatalf("VerifyAccessToken failed: %v", err)
	}
	if user.ID != "u1" {
		t.Errorf("verified user id = %q, expected u1", user.ID)
	}

	// Refresh token round-trips through its hashed storage
	refreshed, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken failed: %v", err)
	}
	if refreshed.User.ID != "u1" {
		t.Errorf("refreshed user id = %q, expected u1", refreshed.User.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	store := newFakeUserStore()
	store.addUser("u1", "jane@example.com", "password")
	svc := newTestAuthService(store)
	defer svc.Cleanup()

	if _, err := svc.Login(context.Background(), "jane@example.com", "wrong"); err == nil {
		t.Error("expected wrong password to fail")
	}
	if _, err := svc.Login(context.Background(), "nobody@example.com", "password"); err == nil {
		t.Error("expected unknown email to fail")
	}
}

func TestSignOutDeletesTokensAndPublishes(t *testing.T) {
	store := newFakeUserStore()
	store.addUser("u1", "jane@example.com", "password")
	svc := newTestAuthService(store)
	defer svc.Cleanup()

	events, cancel := svc.Events().Subscribe()
	defer cancel()

	if _, err := svc.Login(context.Background(), "jane@example.com", "password"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := svc.SignOut(context.Background(), "u1"); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}
	if len(store.tokens) != 0 {
		t.Errorf("expected all tokens deleted, %d remain", len(store.tokens))
	}

	kinds := []AuthEventKind{}
	for i := 0; i < 2; i++ {
		select {
		case ev := <-events:
			kinds = append(kinds, ev.Kind)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for auth events")
		}
	}
	if kinds[0] != AuthSignedIn || kinds[1] != AuthSignedOut {
		t.Errorf("event kinds = %v, expected [signed_in signed_out]", kinds)
	}
}

func TestAuthEventsCleanup(t *testing.T) {
	events := NewAuthEvents()

	// Safe with no subscribers, and safe twice
	events.Cleanup()
	events.Cleanup()

	events = NewAuthEvents()
	ch, cancel := events.Subscribe()
	defer cancel()

	events.Publish(AuthEvent{Kind: AuthPasswordChanged, UserID: "u1"})
	select {
	case ev := <-ch:
		if ev.Kind != AuthPasswordChanged {
			t.Errorf("event kind = %q, expected password_changed", ev.Kind)
		}
		if ev.At.IsZero() {
			t.Error("publish should stamp the event time")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	events.Cleanup()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after Cleanup")
	}

	// Publishing after cleanup is a no-op
	events.Publish(AuthEvent{Kind: AuthSignedIn, UserID: "u1"})
}
