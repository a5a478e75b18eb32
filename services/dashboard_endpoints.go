package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Mathew-2006/school-website/models"
	"github.com/Mathew-2006/school-website/ui"
	"github.com/go-chi/chi/v5"
)

// Modal ids on the dashboard page
const (
	passwordModalID    = "passwordModal"
	editProfileModalID = "editProfileModal"
)

// DocumentStore is the slice of the document gateway the dashboard needs
type DocumentStore interface {
	GetDocument(ctx context.Context, collection, docID string) (map[string]interface{}, error)
	UpdateDocument(ctx context.Context, collection, docID string, partial map[string]interface{}) (string, error)
}

// sessionState is the per-user dashboard state: alert stack, modal
// visibility and section navigation. It is created on first request after
// sign-in and dropped explicitly on sign-out.
type sessionState struct {
	alerts *ui.AlertCenter
	modals *ui.ModalSet
	nav    *ui.DashboardState
}

// DashboardEndpoints orchestrates the dashboard page: it sequences
// auth -> fetch record -> render, and wires the user-triggered transitions
// (navigation, logout, password change, profile edit).
type DashboardEndpoints struct {
	authService *AuthService
	docs        DocumentStore
	loginPath   string

	mu       sync.Mutex
	sessions map[string]*sessionState
}

func NewDashboardEndpoints(authService *AuthService, docs DocumentStore, loginPath string) *DashboardEndpoints {
	return &DashboardEndpoints{
		authService: authService,
		docs:        docs,
		loginPath:   loginPath,
		sessions:    make(map[string]*sessionState),
	}
}

func (e *DashboardEndpoints) RegisterRoutes(r chi.Router) {
	r.Route("/dashboard", func(r chi.Router) {
		r.Get("/", e.DashboardHandler)
		r.Post("/sidebar", e.SidebarToggleHandler)
		r.Post("/password/open", e.PasswordModalOpenHandler)
		r.Post("/password/close", e.PasswordModalCloseHandler)
		r.Post("/password", e.PasswordChangeHandler)
		r.Post("/profile/edit", e.EditProfileOpenHandler)
		r.Post("/profile/close", e.EditProfileCloseHandler)
		r.Post("/profile", e.ProfileUpdateHandler)
	})
	r.Post("/logout", e.LogoutHandler)
}

// session returns (creating if needed) the per-user dashboard state
func (e *DashboardEndpoints) session(userID string) *sessionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[userID]
	if !ok {
		s = &sessionState{
			alerts: ui.NewAlertCenter(),
			modals: ui.NewModalSet(),
			nav:    ui.NewDashboardState(),
		}
		e.sessions[userID] = s
	}
	return s
}

// dropSession tears down a user's dashboard state on sign-out
func (e *DashboardEndpoints) dropSession(userID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[userID]; ok {
		s.alerts.Close()
		delete(e.sessions, userID)
	}
}

// loadStudentRecord fetches the signed-in student's record. (nil, nil) means
// no record exists for this user.
func (e *DashboardEndpoints) loadStudentRecord(ctx context.Context, userID string) (*models.StudentRecord, error) {
	doc, err := e.docs.GetDocument(ctx, models.StudentsCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load student record: %w", err)
	}
	if doc == nil {
		return nil, nil
	}
	rec := models.StudentRecordFromDocument(doc)
	return &rec, nil
}

// DashboardHandler renders the dashboard. An unknown or absent section
// query keeps the current navigation state.
func (e *DashboardEndpoints) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
		return
	}

	s := e.session(user.ID)
	if section := r.URL.Query().Get("section"); section != "" {
		s.nav.NavigateToSection(section)
	}

	e.render(w, r, user, "")
}

// SidebarToggleHandler flips the mobile sidebar
func (e *DashboardEndpoints) SidebarToggleHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
		return
	}

	e.session(user.ID).nav.ToggleSidebar()
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (e *DashboardEndpoints) PasswordModalOpenHandler(w http.ResponseWriter, r *http.Request) {
	e.setModal(w, r, passwordModalID, true)
}

func (e *DashboardEndpoints) PasswordModalCloseHandler(w http.ResponseWriter, r *http.Request) {
	e.setModal(w, r, passwordModalID, false)
}

func (e *DashboardEndpoints) EditProfileCloseHandler(w http.ResponseWriter, r *http.Request) {
	e.setModal(w, r, editProfileModalID, false)
}

func (e *DashboardEndpoints) setModal(w http.ResponseWriter, r *http.Request, modalID string, show bool) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
		return
	}

	s := e.session(user.ID)
	if show {
		s.modals.Show(modalID)
	} else {
		s.modals.Close(modalID)
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// EditProfileOpenHandler opens the edit modal with the form populated from
// the current in-memory record
func (e *DashboardEndpoints) EditProfileOpenHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
		return
	}

	e.session(user.ID).modals.Show(editProfileModalID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// PasswordChangeHandler validates and applies a password change. The input
// is cleared on success only; on failure the modal stays open with the
// submitted value preserved.
func (e *DashboardEndpoints) PasswordChangeHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	newPassword := r.PostFormValue("newPassword")

	s := e.session(user.ID)
	if err := e.authService.UpdatePassword(r.Context(), user, newPassword); err != nil {
		var validationErr ValidationError
		switch {
		case errors.Is(err, ErrNoSession), errors.As(err, &validationErr):
			// Validation and missing-session messages are shown verbatim
			s.alerts.ShowError(err.Error())
		default:
			slog.Error("Password change failed", "error", err, "user_id", user.ID)
			s.alerts.ShowError("Failed to update password")
		}
		s.modals.Show(passwordModalID)
		e.render(w, r, user, newPassword)
		return
	}

	s.alerts.ShowSuccess("Password updated successfully!")
	s.modals.Close(passwordModalID)
	e.render(w, r, user, "")
}

// ProfileUpdateHandler writes the editable field subset (class, gender,
// date of birth) as a partial update, then re-fetches and re-renders.
func (e *DashboardEndpoints) ProfileUpdateHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	partial := map[string]interface{}{
		"class":  r.PostFormValue("editClass"),
		"gender": r.PostFormValue("editGender"),
		"dob":    r.PostFormValue("editDob"),
	}

	s := e.session(user.ID)
	if _, err := e.docs.UpdateDocument(r.Context(), models.StudentsCollection, user.ID, partial); err != nil {
		slog.Error("Profile update failed", "error", err, "user_id", user.ID)
		s.alerts.ShowError("Failed to update profile")
		s.modals.Show(editProfileModalID)
		e.render(w, r, user, "")
		return
	}

	s.alerts.ShowSuccess("Profile updated successfully!")
	s.modals.Close(editProfileModalID)
	e.render(w, r, user, "")
}

// LogoutHandler signs the user out, clears cookies and session state, and
// redirects to the login page
func (e *DashboardEndpoints) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
		return
	}

	if err := e.authService.SignOut(r.Context(), user.ID); err != nil {
		slog.Error("Sign out failed", "error", err, "user_id", user.ID)
		e.session(user.ID).alerts.ShowError("Failed to sign out")
		e.render(w, r, user, "")
		return
	}

	e.dropSession(user.ID)
	e.authService.ClearAuthCookies(w)
	http.Redirect(w, r, e.loginPath, http.StatusSeeOther)
}

// render draws the dashboard page for the current session. A missing record
// degrades the page rather than failing it: an error alert is shown and no
// profile or unit data is rendered.
func (e *DashboardEndpoints) render(w http.ResponseWriter, r *http.Request, user *models.User, passwordValue string) {
	s := e.session(user.ID)

	record, err := e.loadStudentRecord(r.Context(), user.ID)
	if err != nil {
		slog.Error("Failed to load user data", "error", err, "user_id", user.ID)
		s.alerts.ShowError("Failed to load user data")
	} else if record == nil {
		slog.Error("User data not found", "user_id", user.ID)
		s.alerts.ShowError("Failed to load user data")
	}

	view := dashboardView{
		Title:             s.nav.Title,
		State:             s.nav,
		WelcomeName:       "Student",
		UserEmail:         user.Email,
		Record:            record,
		RecordMissing:     record == nil,
		Alerts:            s.alerts.Active(),
		PasswordModalOpen: s.modals.IsOpen(passwordModalID),
		EditModalOpen:     s.modals.IsOpen(editProfileModalID),
		LoginPath:         e.loginPath,
	}

	if record != nil {
		if record.FullName != "" {
			view.WelcomeName = record.FullName
		}
		if record.Email != "" {
			view.UserEmail = record.Email
		}
		view.DOBFormatted = ui.FormatDate(record.DOB)
		view.Units = ui.SummarizeUnits(record.CurrentUnits, record.PreviousUnits)
	}

	view.PasswordField = renderField(ui.FormField{
		Type:        ui.FieldPassword,
		Name:        "newPassword",
		Label:       "New Password",
		Required:    true,
		Placeholder: "At least 6 characters",
		Value:       passwordValue,
	})
	view.PasswordSubmit = renderButton(ui.Button{Text: "Update Password", Kind: "primary", ID: "updatePasswordBtn"})
	view.EditFields = buildEditFields(record)
	view.EditSubmit = renderButton(ui.Button{Text: "Save Changes", Kind: "primary", ID: "saveProfileBtn"})

	renderPage(w, dashboardTmpl, view)
}

// buildEditFields populates the edit-profile form from the current record
func buildEditFields(record *models.StudentRecord) []template.HTML {
	var class, gender, dob string
	if record != nil {
		class = record.Class
		gender = record.Gender
		dob = record.DOB
	}

	genderOptions := []ui.SelectOption{
		{Value: "", Label: "Select gender"},
		{Value: "Male", Label: "Male"},
		{Value: "Female", Label: "Female"},
		{Value: "Other", Label: "Other"},
	}
	for i := range genderOptions {
		genderOptions[i].Selected = genderOptions[i].Value == gender
	}

	return []template.HTML{
		renderField(ui.FormField{Type: ui.FieldText, Name: "editClass", Label: "Class", Value: class}),
		renderField(ui.FormField{Type: ui.FieldSelect, Name: "editGender", Label: "Gender", Options: genderOptions}),
		renderField(ui.FormField{Type: ui.FieldDate, Name: "editDob", Label: "Date of Birth", Value: dob}),
	}
}

func renderField(field ui.FormField) template.HTML {
	html, err := field.Render()
	if err != nil {
		slog.Error("Failed to render form field", "name", field.Name, "error", err)
		return ""
	}
	return html
}

func renderButton(button ui.Button) template.HTML {
	html, err := button.Render()
	if err != nil {
		slog.Error("Failed to render button", "error", err)
		return ""
	}
	return html
}
