package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Mathew-2006/school-website/models"
	"github.com/Mathew-2006/school-website/ui"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrNoSession is returned by identity-requiring operations when no user is
// signed in.
var ErrNoSession = errors.New("No user is currently signed in")

// ValidationError is a client-input failure whose message is safe to show to
// the user verbatim.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// UserStore is the subset of the repository the auth service needs
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID, hashedPassword string) error
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)
	DeleteAllUserTokens(ctx context.Context, userID string) error
}

type AuthService struct {
	store         UserStore
	jwtSecret     []byte
	policy        ui.PasswordPolicy
	loginPath     string
	events        *AuthEvents
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

type CookieClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token,omitempty"`
	RefreshToken string       `json:"refresh_token,omitempty"`
}

func NewAuthService(store UserStore, cfg AuthConfig) *AuthService {
	return &AuthService{
		store:         store,
		jwtSecret:     []byte(cfg.JWTSecret),
		policy:        ui.PasswordPolicyByName(cfg.PasswordPolicy),
		loginPath:     cfg.LoginPath,
		events:        NewAuthEvents(),
		accessExpiry:  5 * time.Minute,    // 5 minutes
		refreshExpiry: 7 * 24 * time.Hour, // 7 days
	}
}

// Events exposes the identity-change broadcaster
func (s *AuthService) Events() *AuthEvents {
	return s.events
}

// Cleanup tears down the identity-change broadcaster. Safe when nothing is
// subscribed.
func (s *AuthService) Cleanup() {
	s.events.Cleanup()
}

// generateSecureToken generates a cryptographically secure random token
func (s *AuthService) generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// hashToken creates a SHA256 hash of the token for secure storage
func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Login authenticates a student and creates session tokens
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	// Get user by email
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	// Generate tokens
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Store refresh token in database
	tokenRecord := &models.RefreshToken{
		UserID:    user.ID,
		Token:     s.hashToken(refreshToken),
		ExpiresAt: time.Now().Add(s.refreshExpiry),
	}
	if err := s.store.CreateRefreshToken(ctx, tokenRecord); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.events.Publish(AuthEvent{Kind: AuthSignedIn, UserID: user.ID, Email: user.Email})

	slog.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// SignOut invalidates the remote session and publishes the sign-out event.
// Local per-request state is torn down explicitly by the handlers (cookies
// cleared, broadcaster notified); nothing depends on a page reload.
func (s *AuthService) SignOut(ctx context.Context, userID string) error {
	if err := s.store.DeleteAllUserTokens(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user tokens: %w", err)
	}

	s.events.Publish(AuthEvent{Kind: AuthSignedOut, UserID: userID})

	slog.Info("User logged out", "user_id", userID)
	return nil
}

// UpdatePassword changes the signed-in user's password. It fails with
// ErrNoSession when user is nil and with a ValidationError when the
// configured password policy rejects the new password.
func (s *AuthService) UpdatePassword(ctx context.Context, user *models.User, newPassword string) error {
	if user == nil {
		return ErrNoSession
	}

	check := ui.ValidatePassword(newPassword, s.policy)
	if !check.IsValid {
		if len(newPassword) < s.policy.MinLength {
			return ValidationError(fmt.Sprintf("Password must be at least %d characters long", s.policy.MinLength))
		}
		return ValidationError(strings.Join(check.Errors, ", "))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.store.UpdateUserPassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.events.Publish(AuthEvent{Kind: AuthPasswordChanged, UserID: user.ID, Email: user.Email})

	slog.Info("Password updated", "user_id", user.ID)
	return nil
}

// RefreshToken generates a new access token using a refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	// Get refresh token from database
	tokenRecord, err := s.store.GetRefreshToken(ctx, s.hashToken(refreshToken))
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if tokenRecord == nil {
		return nil, fmt.Errorf("invalid refresh token")
	}

	// Get user
	user, err := s.store.GetUserByID(ctx, tokenRecord.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	// Generate new access token
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("Access token refreshed", "user_id", user.ID)
	return &AuthResponse{
		User:        user,
		AccessToken: accessToken,
	}, nil
}

// VerifyAccessToken verifies and extracts the user from an access token
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*models.User, error) {
	claims := &CookieClaims{}

	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !parsedToken.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	// Get user from database to ensure they still exist
	user, err := s.store.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	return user, nil
}

// generateAccessToken creates a short-lived access token
func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := &CookieClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// SetAuthCookies sets HTTP-only session cookies
func (s *AuthService) SetAuthCookies(w http.ResponseWriter, accessToken, refreshToken string) {
	// Determine if we're in production (HTTPS) or development (HTTP)
	isProduction := os.Getenv("ENVIRONMENT") == "production"

	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.accessExpiry.Seconds()),
	})

	if refreshToken != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     "refresh_token",
			Value:    refreshToken,
			Path:     "/",
			HttpOnly: true,
			Secure:   isProduction,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(s.refreshExpiry.Seconds()),
		})
	}
}

// ClearAuthCookies clears all authentication cookies
func (s *AuthService) ClearAuthCookies(w http.ResponseWriter) {
	isProduction := os.Getenv("ENVIRONMENT") == "production"
	cookies := []string{"access_token", "refresh_token"}

	for _, cookieName := range cookies {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   isProduction,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
}

// GetTokenFromCookie extracts a token from request cookies
func (s *AuthService) GetTokenFromCookie(r *http.Request, cookieName string) string {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// UserFromContext returns the identity the auth middleware attached to the
// request context, or nil when unauthenticated. This is a synchronous read;
// no network call happens here.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value("user").(*models.User)
	return user
}

// Middleware authenticates requests from cookies, refreshing the access
// token when possible. Browser requests without a session are redirected to
// the login page; API requests get a plain 401.
func (s *AuthService) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Try to get access token from cookie
		accessToken := s.GetTokenFromCookie(r, "access_token")

		if accessToken != "" {
			user, err := s.VerifyAccessToken(r.Context(), accessToken)
			if err == nil {
				ctx := context.WithValue(r.Context(), "user", user)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		// Try to refresh using refresh token
		refreshToken := s.GetTokenFromCookie(r, "refresh_token")
		if refreshToken != "" {
			authResponse, err := s.RefreshToken(r.Context(), refreshToken)
			if err == nil {
				// Set new access token cookie
				s.SetAuthCookies(w, authResponse.AccessToken, "")

				ctx := context.WithValue(r.Context(), "user", authResponse.User)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		// Unauthenticated: browsers go back to the login page
		if strings.Contains(r.Header.Get("Accept"), "text/html") {
			http.Redirect(w, r, s.loginPath, http.StatusSeeOther)
			return
		}
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	})
}
