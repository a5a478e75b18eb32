package services

import (
	"log/slog"
	"net/http"

	"github.com/Mathew-2006/school-website/ui"
	"github.com/go-chi/chi/v5"
)

type AuthEndpoints struct {
	authService *AuthService
	alerts      *ui.AlertCenter
}

func NewAuthEndpoints(authService *AuthService) *AuthEndpoints {
	return &AuthEndpoints{
		authService: authService,
		alerts:      ui.NewAlertCenter(),
	}
}

func (e *AuthEndpoints) RegisterRoutes(r chi.Router) {
	r.Get("/login", e.LoginPageHandler)
	r.Post("/login", e.LoginHandler)
}

// LoginPageHandler renders the login form
func (e *AuthEndpoints) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	e.renderLogin(w, "")
}

// LoginHandler authenticates the submitted credentials and opens the session
func (e *AuthEndpoints) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	if !ui.IsValidEmail(email) {
		e.alerts.ShowError("Please enter a valid email address")
		e.renderLogin(w, email)
		return
	}

	authResponse, err := e.authService.Login(r.Context(), email, password)
	if err != nil {
		slog.Error("Login failed", "error", err, "email", email)
		e.alerts.ShowError("Invalid email or password")
		e.renderLogin(w, email)
		return
	}

	e.authService.SetAuthCookies(w, authResponse.AccessToken, authResponse.RefreshToken)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (e *AuthEndpoints) renderLogin(w http.ResponseWriter, email string) {
	emailField, err := ui.FormField{
		Type:        ui.FieldEmail,
		Name:        "email",
		Label:       "Email",
		Required:    true,
		Placeholder: "you@school.ac.ke",
		Value:       email,
	}.Render()
	if err != nil {
		slog.Error("Failed to render email field", "error", err)
	}

	passwordField, err := ui.FormField{
		Type:     ui.FieldPassword,
		Name:     "password",
		Label:    "Password",
		Required: true,
	}.Render()
	if err != nil {
		slog.Error("Failed to render password field", "error", err)
	}

	submit, err := ui.Button{Text: "Sign In", Kind: "primary", ID: "loginBtn"}.Render()
	if err != nil {
		slog.Error("Failed to render login button", "error", err)
	}

	renderPage(w, loginTmpl, loginView{
		Alerts:        e.alerts.Active(),
		EmailField:    emailField,
		PasswordField: passwordField,
		SubmitButton:  submit,
	})
}
