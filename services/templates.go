package services

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/Mathew-2006/school-website/models"
	"github.com/Mathew-2006/school-website/ui"
)

const loginPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Student Portal - Login</title>
  <link rel="stylesheet" href="/static/styles.css">
</head>
<body>
  <div class="alert-stack">
{{- range .Alerts}}
    <div id="{{.ID}}" class="alert alert-{{.Kind}}{{if .Fading}} fade-out{{else}} fade-in{{end}}">{{.Message}}</div>
{{- end}}
  </div>
  <main class="login-card">
    <h1>Student Portal</h1>
    <form method="post" action="/login">
      {{.EmailField}}
      {{.PasswordField}}
      {{.SubmitButton}}
    </form>
  </main>
</body>
</html>`

const dashboardPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="/static/styles.css">
</head>
<body>
  <div class="alert-stack">
{{- range .Alerts}}
    <div id="{{.ID}}" class="alert alert-{{.Kind}}{{if .Fading}} fade-out{{else}} fade-in{{end}}">{{.Message}}</div>
{{- end}}
  </div>

  <aside class="sidebar{{if .State.SidebarOpen}} show{{end}}">
    <nav>
{{- range .State.Sections}}
      <a class="sidebar-nav-link{{if .Active}} active{{end}}" href="/dashboard?section={{.Name}}" data-section="{{.Name}}">{{.Name}}</a>
{{- end}}
    </nav>
    <form method="post" action="/logout">
      <button class="btn btn-outline" id="logoutBtn" type="submit">Logout</button>
    </form>
  </aside>

  <header class="main-header">
    <form method="post" action="/dashboard/sidebar">
      <button class="mobile-menu-btn btn btn-outline" type="submit">&#9776;</button>
    </form>
    <h2 id="pageTitle">{{.Title}}</h2>
    <div id="userInfo"><span>Welcome, {{.WelcomeName}}</span></div>
    <span id="userEmail">{{.UserEmail}}</span>
  </header>

  <main class="content">
{{- if .RecordMissing}}
    <p class="text-muted">Your student record could not be loaded.</p>
{{- else}}
{{- range .State.Sections}}
    <section id="{{.Name}}Section" class="content-section"{{if not .Visible}} style="display:none"{{end}}>
{{- if eq .Name "profile"}}
      <dl class="profile-fields">
        <dt>Full Name</dt><dd id="fullName">{{orNotSet $.Record.FullName}}</dd>
        <dt>Registration No</dt><dd id="regNo">{{orNotSet $.Record.RegNo}}</dd>
        <dt>Class</dt><dd id="studentClass">{{orNotSet $.Record.Class}}</dd>
        <dt>Gender</dt><dd id="gender">{{orNotSet $.Record.Gender}}</dd>
        <dt>Date of Birth</dt><dd id="dob">{{orNotSet $.DOBFormatted}}</dd>
        <dt>Email</dt><dd id="email">{{orNotSet $.Record.Email}}</dd>
      </dl>
      <form method="post" action="/dashboard/profile/edit">
        <button class="btn btn-primary" id="editProfileBtn" type="submit">Edit Profile</button>
      </form>
      <form method="post" action="/dashboard/password/open">
        <button class="btn btn-secondary" id="changePasswordBtn" type="submit">Change Password</button>
      </form>
{{- else if eq .Name "units"}}
{{- if $.Units.ShowNoUnits}}
      <p id="noUnitsMessage">You have no registered units.</p>
{{- else}}
      <div id="unitsList">
        <div id="currentUnits"><p class="{{$.Units.CurrentClass}}">{{$.Units.CurrentText}}</p></div>
        <div id="previousUnits"><p class="{{$.Units.PreviousClass}}">{{$.Units.PreviousText}}</p></div>
      </div>
{{- end}}
{{- else if eq .Name "notifications"}}
      <p class="text-muted">No notifications yet.</p>
{{- end}}
    </section>
{{- end}}
{{- end}}
  </main>

  <div id="passwordModal" class="modal{{if .PasswordModalOpen}} show{{end}}">
    <div class="modal-content">
      <div class="modal-header">
        <h3 class="modal-title">Change Password</h3>
        <form method="post" action="/dashboard/password/close"><button class="modal-close" type="submit">&times;</button></form>
      </div>
      <form method="post" action="/dashboard/password">
        <div class="modal-body">
          {{.PasswordField}}
        </div>
        <div class="modal-footer">
          {{.PasswordSubmit}}
        </div>
      </form>
    </div>
  </div>

  <div id="editProfileModal" class="modal{{if .EditModalOpen}} show{{end}}">
    <div class="modal-content">
      <div class="modal-header">
        <h3 class="modal-title">Edit Profile</h3>
        <form method="post" action="/dashboard/profile/close"><button class="modal-close" type="submit">&times;</button></form>
      </div>
      <form method="post" action="/dashboard/profile">
        <div class="modal-body">
{{- range .EditFields}}
          {{.}}
{{- end}}
        </div>
        <div class="modal-footer">
          {{.EditSubmit}}
        </div>
      </form>
    </div>
  </div>

  <script>
    (function() {
      var proto = location.protocol === 'https:' ? 'wss://' : 'ws://';
      var sock = new WebSocket(proto + location.host + '/ws/events');
      sock.onmessage = function(ev) {
        var event = JSON.parse(ev.data);
        if (event.kind === 'signed_out') {
          location.href = {{.LoginPath}};
        }
      };
    })();
  </script>
</body>
</html>`

var templateFuncs = template.FuncMap{
	"orNotSet": func(value string) string {
		if value == "" {
			return "Not set"
		}
		return value
	},
}

var (
	loginTmpl     = template.Must(template.New("login").Parse(loginPageTemplate))
	dashboardTmpl = template.Must(template.New("dashboard").Funcs(templateFuncs).Parse(dashboardPageTemplate))
)

type loginView struct {
	Alerts        []ui.Alert
	EmailField    template.HTML
	PasswordField template.HTML
	SubmitButton  template.HTML
}

type dashboardView struct {
	Title             string
	State             *ui.DashboardState
	WelcomeName       string
	UserEmail         string
	Record            *models.StudentRecord
	RecordMissing     bool
	DOBFormatted      string
	Units             ui.UnitsSummary
	Alerts            []ui.Alert
	PasswordModalOpen bool
	EditModalOpen     bool
	PasswordField     template.HTML
	PasswordSubmit    template.HTML
	EditFields        []template.HTML
	EditSubmit        template.HTML
	LoginPath         string
}

func renderPage(w http.ResponseWriter, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		slog.Error("Failed to render page", "template", tmpl.Name(), "error", err)
	}
}
