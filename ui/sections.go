package ui

import "fmt"

// Dashboard section names
const (
	SectionProfile       = "profile"
	SectionUnits         = "units"
	SectionNotifications = "notifications"
)

// DefaultTitle is shown when no section is selected
const DefaultTitle = "Dashboard"

var sectionTitles = map[string]string{
	SectionProfile:       "My Profile",
	SectionUnits:         "My Units",
	SectionNotifications: "Notifications",
}

// Section is one sidebar entry and its content pane
type Section struct {
	Name    string
	Visible bool
	Active  bool
}

// DashboardState is the visibility state of the dashboard page: which
// section is shown, the page title and the mobile sidebar toggle.
type DashboardState struct {
	Sections    []Section
	Title       string
	SidebarOpen bool
}

// NewDashboardState returns the initial state with the profile section shown
func NewDashboardState() *DashboardState {
	s := &DashboardState{
		Sections: []Section{
			{Name: SectionProfile},
			{Name: SectionUnits},
			{Name: SectionNotifications},
		},
		Title: DefaultTitle,
	}
	s.NavigateToSection(SectionProfile)
	return s
}

// NavigateToSection hides every section, shows the named one and marks its
// link active. An unknown name leaves nothing selected and the title as
// "Dashboard". Navigation is idempotent.
func (s *DashboardState) NavigateToSection(name string) {
	for i := range s.Sections {
		s.Sections[i].Visible = s.Sections[i].Name == name
		s.Sections[i].Active = s.Sections[i].Name == name
	}

	if title, ok := sectionTitles[name]; ok {
		s.Title = title
	} else {
		s.Title = DefaultTitle
	}
}

// ActiveSection returns the name of the visible section, or "" when an
// unknown section was requested.
func (s *DashboardState) ActiveSection() string {
	for _, sec := range s.Sections {
		if sec.Active {
			return sec.Name
		}
	}
	return ""
}

// ToggleSidebar flips the mobile sidebar
func (s *DashboardState) ToggleSidebar() {
	s.SidebarOpen = !s.SidebarOpen
}

// UnitsSummary is the rendered unit-registration panel
type UnitsSummary struct {
	ShowNoUnits   bool
	ShowList      bool
	CurrentText   string
	CurrentClass  string
	PreviousText  string
	PreviousClass string
}

// SummarizeUnits applies the units display rule: both counts zero shows the
// no-units message and hides the list; otherwise each side renders its count
// or a muted placeholder.
func SummarizeUnits(currentUnits, previousUnits int) UnitsSummary {
	if currentUnits == 0 && previousUnits == 0 {
		return UnitsSummary{ShowNoUnits: true}
	}

	summary := UnitsSummary{ShowList: true}
	if currentUnits > 0 {
		summary.CurrentText = fmt.Sprintf("Currently registered for %d unit(s)", currentUnits)
		summary.CurrentClass = "text-success"
	} else {
		summary.CurrentText = "No current units registered"
		summary.CurrentClass = "text-muted"
	}
	if previousUnits > 0 {
		summary.PreviousText = fmt.Sprintf("Previously registered for %d unit(s)", previousUnits)
		summary.PreviousClass = "text-info"
	} else {
		summary.PreviousText = "No previous units"
		summary.PreviousClass = "text-muted"
	}
	return summary
}
