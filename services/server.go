package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Mathew-2006/school-website/models"
	"github.com/Mathew-2006/school-website/repository"
	ws "github.com/Mathew-2006/school-website/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// Server holds all server dependencies
type Server struct {
	config             *Config
	repo               *repository.GORMRepository
	docs               *repository.DocumentStore
	rawDB              *gorm.DB
	authService        *AuthService
	authEndpoints      *AuthEndpoints
	dashboardEndpoints *DashboardEndpoints
	wsHub              *ws.Hub
	upgrader           websocket.Upgrader
	stopEvents         func()
}

// NewServer creates a new server instance
func NewServer(config *Config) *Server {
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return CheckOrigin(r, config.WebSocket.AllowedOrigins)
			},
		},
	}
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(repo *repository.GORMRepository, docs *repository.DocumentStore, rawDB *gorm.DB) {
	s.repo = repo
	s.docs = docs
	s.rawDB = rawDB
}

// InitializeServices initializes all server services
func (s *Server) InitializeServices() error {
	if s.config.Auth.JWTSecret != "" && s.repo != nil {
		s.authService = NewAuthService(s.repo, s.config.Auth)
		s.authEndpoints = NewAuthEndpoints(s.authService)
		s.dashboardEndpoints = NewDashboardEndpoints(s.authService, s.docs, s.config.Auth.LoginPath)
		slog.Info("Authentication service initialized")
	} else {
		slog.Warn("JWT secret or database missing, auth disabled")
	}

	// Initialize WebSocket hub and bridge identity events into it
	s.wsHub = ws.NewHub()
	go s.wsHub.Run()

	if s.authService != nil {
		events, cancel := s.authService.Events().Subscribe()
		s.stopEvents = cancel
		go s.forwardAuthEvents(events)
		slog.Info("Auth event bridge initialized")
	}

	return nil
}

// forwardAuthEvents pushes identity changes to the user's open dashboard
// tabs for as long as the subscription lives
func (s *Server) forwardAuthEvents(events <-chan AuthEvent) {
	for event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			slog.Error("Failed to marshal auth event", "error", err)
			continue
		}
		s.wsHub.SendToUser(event.UserID, payload)
	}
}

// SetupRoutes configures all HTTP routes
func (s *Server) SetupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health endpoint
	r.Get("/health", s.healthHandler)

	// Root redirects to the dashboard; the auth middleware bounces
	// unauthenticated browsers back to the login page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})

	// Login routes (public)
	if s.authEndpoints != nil {
		s.authEndpoints.RegisterRoutes(r)
	}

	// Dashboard routes (protected)
	if s.dashboardEndpoints != nil && s.authService != nil {
		r.Group(func(r chi.Router) {
			r.Use(s.authService.Middleware)
			s.dashboardEndpoints.RegisterRoutes(r)
			r.Get("/ws/events", s.eventsHandler)
		})
	}

	return r
}

// Start starts the HTTP server
func (s *Server) Start() {
	port := s.config.Server.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: s.SetupRoutes(),
	}

	// Graceful shutdown
	go func() {
		slog.Info("Starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	if s.stopEvents != nil {
		s.stopEvents()
	}
	if s.authService != nil {
		s.authService.Cleanup()
	}

	slog.Info("Server exited")
}

// CheckOrigin validates the origin of WebSocket connections to prevent CSRF attacks
func CheckOrigin(r *http.Request, allowedOriginsStr string) bool {
	origin := r.Header.Get("Origin")

	// If no allowed origins are configured, deny all requests for security
	if allowedOriginsStr == "" {
		slog.Warn("WebSocket connection rejected: no allowed origins configured", "origin", origin)
		return false
	}

	// Parse allowed origins (comma-separated list)
	allowedOrigins := strings.Split(allowedOriginsStr, ",")

	// Trim whitespace from origins
	for i := range allowedOrigins {
		allowedOrigins[i] = strings.TrimSpace(allowedOrigins[i])
	}

	// Check if origin is in allowed list
	for _, allowed := range allowedOrigins {
		if allowed == origin {
			slog.Info("WebSocket connection accepted", "origin", origin)
			return true
		}
	}

	slog.Warn("WebSocket connection rejected: origin not allowed", "origin", origin, "allowed_origins", allowedOriginsStr)
	return false
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "not configured"

	if s.rawDB != nil {
		if sqlDB, err := s.rawDB.DB(); err == nil {
			if err := sqlDB.Ping(); err != nil {
				dbStatus = "down"
				status = "degraded"
			} else {
				dbStatus = "up"
			}
		} else {
			dbStatus = "down"
			status = "degraded"
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"` + status + `","database":"` + dbStatus + `"}`))

	slog.Info("Health check", "status", status, "database", dbStatus)
}

// eventsHandler upgrades the connection and streams identity events to the
// signed-in user's dashboard
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	// Get user from context (set by auth middleware)
	user, ok := r.Context().Value("user").(*models.User)
	if !ok {
		slog.Error("WebSocket connection failed - user not found in context")
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	slog.Info("WebSocket connection established", "user_id", user.ID, "email", user.Email)

	client := s.wsHub.RegisterClient(conn, user.ID)
	go client.ReadPump()
	go client.WritePump()
}
